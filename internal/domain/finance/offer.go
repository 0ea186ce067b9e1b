package finance

import "time"

// Offer is a single entry from the partner offers feed. The feed itself is
// heterogeneous JSON; entries are projected into this shape after selection.
type Offer struct {
	ID          string    `json:"offer_id"`
	Title       string    `json:"title"`
	Partner     string    `json:"partner,omitempty"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	ValidTill   time.Time `json:"valid_till,omitzero"`
}
