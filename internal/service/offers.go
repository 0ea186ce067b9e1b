package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// OffersServiceOptions groups dependencies for OffersService.
type OffersServiceOptions struct {
	API    ports.OffersAPI
	Tokens TokenSource

	// Selector is an optional JMESPath expression applied to the raw feed
	// (e.g. "[?category=='credit-card']"). Empty keeps every entry.
	Selector string

	// Evaluator overrides the JMESPath engine (tests).
	Evaluator JMESPathEvaluator
}

// OffersService fetches the partner offers feed. The feed is heterogeneous
// JSON assembled from several partners, so entry selection is expression-
// driven rather than hard-coded per partner.
type OffersService struct {
	api      ports.OffersAPI
	tokens   TokenSource
	selector string
	jems     JMESPathEvaluator
}

// NewOffersService constructs an OffersService, validating the selector.
func NewOffersService(opts OffersServiceOptions) (*OffersService, error) {
	if opts.API == nil {
		return nil, errors.New("offers API is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token source is required")
	}
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	if err := jems.Validate(opts.Selector); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "invalid offers selector %q", opts.Selector)
	}
	return &OffersService{
		api:      opts.API,
		tokens:   opts.Tokens,
		selector: strings.TrimSpace(opts.Selector),
		jems:     jems,
	}, nil
}

// List fetches the feed, applies the configured selector, and projects the
// surviving entries into typed offers. Entries that do not fit the offer
// shape are dropped rather than failing the whole screen.
func (s *OffersService) List(ctx context.Context) ([]finance.Offer, error) {
	token := s.tokens.Token()
	if token == "" {
		return nil, apperrors.Unauthorized("not signed in")
	}

	raw, err := s.api.ListOffers(ctx, token)
	if err != nil {
		return nil, err
	}

	entries := make([]any, len(raw))
	for i, e := range raw {
		entries[i] = e
	}

	selected := any(entries)
	if s.selector != "" {
		selected, err = s.jems.Evaluate(s.selector, entries)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "evaluate offers selector")
		}
	}

	list, ok := selected.([]any)
	if !ok {
		if selected == nil {
			return nil, nil
		}
		list = []any{selected}
	}

	offers := make([]finance.Offer, 0, len(list))
	for _, entry := range list {
		payload, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		var offer finance.Offer
		if err := json.Unmarshal(payload, &offer); err != nil || offer.Title == "" {
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}
