// Package mocks provides generated mock implementations for testing the client core.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// port interfaces. Hand-written doubles for broader surfaces live in mocks/client.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockTokenStore(ctrl)
//	store.EXPECT().Load(gomock.Any()).Return("tok-1", nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_store_mock.go github.com/paisawise/pw-mobile-go/internal/ports TokenStore

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_backend_mock.go github.com/paisawise/pw-mobile-go/internal/ports AuthBackend
