package service

import (
	"context"
	"errors"

	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	API    ports.ProfileAPI
	Tokens TokenSource
}

// ProfileService reads and writes the coarse financial profile backing the
// loans, portfolio, and insurance screens.
type ProfileService struct {
	api    ports.ProfileAPI
	tokens TokenSource
}

// NewProfileService constructs a ProfileService.
func NewProfileService(opts ProfileServiceOptions) (*ProfileService, error) {
	if opts.API == nil {
		return nil, errors.New("profile API is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token source is required")
	}
	return &ProfileService{api: opts.API, tokens: opts.Tokens}, nil
}

// Fetch loads the profile document.
func (s *ProfileService) Fetch(ctx context.Context) (finance.Profile, error) {
	token := s.tokens.Token()
	if token == "" {
		return finance.Profile{}, apperrors.Unauthorized("not signed in")
	}
	return s.api.FetchProfile(ctx, token)
}

// Save validates and uploads the profile document.
func (s *ProfileService) Save(ctx context.Context, p finance.Profile) error {
	token := s.tokens.Token()
	if token == "" {
		return apperrors.Unauthorized("not signed in")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.api.SaveProfile(ctx, token, p)
}
