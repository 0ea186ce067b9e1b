package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
	mockclient "github.com/paisawise/pw-mobile-go/internal/mocks/client"
)

func offersFeed() []map[string]any {
	return []map[string]any{
		{"id": "o1", "title": "5% cashback", "partner": "BankCo", "category": "credit-card"},
		{"id": "o2", "title": "Zero-fee demat", "partner": "BrokerCo", "category": "investing"},
		{"id": "o3", "partner": "NoTitleCo", "category": "credit-card"},
		{"id": "o4", "title": "Gold card upgrade", "partner": "BankCo", "category": "credit-card"},
	}
}

func newTestOffersService(t *testing.T, selector string, feed []map[string]any) *OffersService {
	t.Helper()
	backend := &mockclient.MockBackend{
		ListOffersFunc: func(context.Context, string) ([]map[string]any, error) {
			return feed, nil
		},
	}
	svc, err := NewOffersService(OffersServiceOptions{
		API:      backend,
		Tokens:   mockclient.StaticTokenSource("tok-1"),
		Selector: selector,
	})
	require.NoError(t, err)
	return svc
}

func TestOffersService_List_NoSelector(t *testing.T) {
	svc := newTestOffersService(t, "", offersFeed())

	offers, err := svc.List(context.Background())

	require.NoError(t, err)
	// The untitled entry is dropped; the rest project into typed offers.
	require.Len(t, offers, 3)
	assert.Equal(t, "5% cashback", offers[0].Title)
	assert.Equal(t, "BankCo", offers[0].Partner)
}

func TestOffersService_List_WithSelector(t *testing.T) {
	svc := newTestOffersService(t, "[?category=='credit-card']", offersFeed())

	offers, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "5% cashback", offers[0].Title)
	assert.Equal(t, "Gold card upgrade", offers[1].Title)
}

func TestOffersService_List_SelectorMatchesNothing(t *testing.T) {
	svc := newTestOffersService(t, "[?category=='loans']", offersFeed())

	offers, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestNewOffersService_RejectsInvalidSelector(t *testing.T) {
	backend := &mockclient.MockBackend{}

	_, err := NewOffersService(OffersServiceOptions{
		API:      backend,
		Tokens:   mockclient.StaticTokenSource("tok-1"),
		Selector: "[?broken",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestOffersService_List_RequiresToken(t *testing.T) {
	backend := &mockclient.MockBackend{}
	svc, err := NewOffersService(OffersServiceOptions{
		API:    backend,
		Tokens: mockclient.StaticTokenSource(""),
	})
	require.NoError(t, err)

	_, err = svc.List(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Zero(t, backend.CallCount("ListOffers"))
}

func TestOffersService_List_EmptyFeed(t *testing.T) {
	svc := newTestOffersService(t, "", nil)

	offers, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, offers)
}
