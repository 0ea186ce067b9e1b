package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/paisawise/pw-mobile-go/config"
	"github.com/paisawise/pw-mobile-go/internal/adapters/backend"
	"github.com/paisawise/pw-mobile-go/internal/adapters/browser"
	"github.com/paisawise/pw-mobile-go/internal/adapters/deeplink"
	"github.com/paisawise/pw-mobile-go/internal/adapters/devauth"
	"github.com/paisawise/pw-mobile-go/internal/adapters/hostedauth"
	"github.com/paisawise/pw-mobile-go/internal/adapters/loopback"
	"github.com/paisawise/pw-mobile-go/internal/adapters/oidc"
	redisadapter "github.com/paisawise/pw-mobile-go/internal/adapters/redis"
	"github.com/paisawise/pw-mobile-go/internal/adapters/tokenfile"
	domainauth "github.com/paisawise/pw-mobile-go/internal/domain/auth"
	"github.com/paisawise/pw-mobile-go/internal/observability/statsd"
	"github.com/paisawise/pw-mobile-go/internal/ports"
	"github.com/paisawise/pw-mobile-go/internal/service"
)

// Client bundles the constructed services for the process.
type Client struct {
	Auth         *service.AuthService
	Dashboard    *service.DashboardService
	Transactions *service.TransactionService
	Profile      *service.ProfileService
	Offers       *service.OffersService
	Insights     *service.InsightService

	Metrics     *statsd.Client
	RedisClient *redis.Client // nil unless STORAGE_MODE=redis
}

// Close releases process-wide resources.
func (c *Client) Close() error {
	var firstErr error
	if c.Metrics != nil {
		if err := c.Metrics.Close(); err != nil {
			firstErr = err
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewClient wires config into the full client service graph.
func NewClient(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.IsEnabled(),
		Address: cfg.Observability.StatsdAddress,
		Prefix:  cfg.Observability.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("metrics disabled: statsd unreachable", "error", err)
		metrics = nil
	}
	var sink statsd.Sink
	if metrics != nil {
		sink = metrics
	}

	api, err := backend.NewClient(backend.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Metrics:   sink,
	})
	if err != nil {
		return nil, fmt.Errorf("build backend client: %w", err)
	}

	client := &Client{Metrics: metrics}

	tokens, err := buildTokenStore(cfg, client)
	if err != nil {
		return nil, err
	}

	provider, err := buildLoginProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	auth, err := service.NewAuthService(service.AuthServiceOptions{
		Backend:   api,
		Tokens:    tokens,
		Provider:  provider,
		Navigator: browser.Navigator{},
		Policy: domainauth.RedirectPolicy{
			Scheme:         cfg.Auth.CallbackScheme,
			AllowedOrigins: cfg.Auth.AllowedOrigins,
		},
		Timeout: cfg.API.Timeout,
		Logger:  logger,
		Metrics: sink,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}
	client.Auth = auth

	if client.Dashboard, err = service.NewDashboardService(service.DashboardServiceOptions{
		Transactions: api,
		Categories:   api,
		Analytics:    api,
		Tokens:       auth,
		Logger:       logger,
	}); err != nil {
		return nil, fmt.Errorf("build dashboard service: %w", err)
	}
	if client.Transactions, err = service.NewTransactionService(service.TransactionServiceOptions{
		API:    api,
		Tokens: auth,
	}); err != nil {
		return nil, fmt.Errorf("build transaction service: %w", err)
	}
	if client.Profile, err = service.NewProfileService(service.ProfileServiceOptions{
		API:    api,
		Tokens: auth,
	}); err != nil {
		return nil, fmt.Errorf("build profile service: %w", err)
	}
	if client.Offers, err = service.NewOffersService(service.OffersServiceOptions{
		API:    api,
		Tokens: auth,
	}); err != nil {
		return nil, fmt.Errorf("build offers service: %w", err)
	}
	if client.Insights, err = service.NewInsightService(service.InsightServiceOptions{
		Analytics:    api,
		Transactions: api,
		Tokens:       auth,
		Logger:       logger,
	}); err != nil {
		return nil, fmt.Errorf("build insight service: %w", err)
	}

	return client, nil
}

func buildTokenStore(cfg *config.AppConfig, client *Client) (ports.TokenStore, error) {
	switch cfg.Storage.Mode {
	case config.StorageModeRedis:
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		client.RedisClient = rc
		return redisadapter.NewTokenStoreWithPrefix(rc, cfg.Storage.Redis.KeyPrefix), nil

	case config.StorageModeFile, "":
		store, err := tokenfile.NewStore(cfg.Storage.TokenPath)
		if err != nil {
			return nil, fmt.Errorf("build token store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported storage mode %q", cfg.Storage.Mode)
	}
}

func buildLoginProvider(ctx context.Context, cfg *config.AppConfig) (ports.LoginProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeHosted, "":
		return hostedauth.NewProvider(hostedauth.Config{LoginURL: cfg.Auth.Hosted.LoginURL})

	case config.AuthModeOIDC:
		return oidc.NewProvider(ctx, oidc.ProviderConfig{
			ClientID:     cfg.Auth.OIDC.ClientID,
			ClientSecret: cfg.Auth.OIDC.ClientSecret,
			Scope:        cfg.Auth.OIDC.Scope,
			DiscoveryURL: cfg.Auth.OIDC.DiscoveryURL,
		})

	case config.AuthModeMock:
		return devauth.NewProvider(devauth.Config{SessionID: cfg.Auth.Mock.SessionID}), nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}

// BuildRedirectSource constructs the configured redirect source. The
// deep-link variant drains the process's standard input.
func BuildRedirectSource(cfg *config.AppConfig, logger *slog.Logger) ports.RedirectSource {
	switch cfg.Auth.Redirect {
	case config.RedirectModeDeepLink:
		return deeplink.NewSource(os.Stdin, logger)
	default:
		return loopback.NewSource(cfg.Auth.CallbackPort)
	}
}
