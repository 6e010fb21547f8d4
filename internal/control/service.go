// Package control wires the orchestrator to its concrete collaborators and
// manages service lifecycle.
package control

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minhph/orderflow/internal/core/config"
	"github.com/minhph/orderflow/internal/core/domain"
	"github.com/minhph/orderflow/internal/core/effect"
	"github.com/minhph/orderflow/internal/infra/alerting"
	"github.com/minhph/orderflow/internal/infra/analytics"
	"github.com/minhph/orderflow/internal/infra/mail"
	redisclient "github.com/minhph/orderflow/internal/infra/redis"
	"github.com/minhph/orderflow/internal/infra/storage/memory"
	"github.com/minhph/orderflow/internal/infra/storage/postgres"
	"github.com/minhph/orderflow/internal/orchestrate"
	"github.com/minhph/orderflow/internal/orchestrate/retry"
)

// Service owns the orchestrator and its infrastructure handles.
type Service struct {
	cfg          Config
	orchestrator *orchestrate.Orchestrator
	server       *Server
	db           *postgres.DB
	store        *memory.MemoryStorage
	redisClient  *redisclient.Client
	log          *slog.Logger
}

// Config holds the application configuration.
type Config struct {
	Port     int
	Database postgres.Config
	Redis    redisclient.Config
	Mail     mail.Config
	Alerting alerting.Config
	CacheTTL time.Duration
	Retry    config.RetryConfig
}

// NewService creates a Service with all dependencies initialized. Without a
// database URL it falls back to seeded in-memory storage; without a redis
// URL the cache effect becomes a no-op.
func NewService(cfg Config) (*Service, error) {
	log := slog.Default()
	caps := &orchestrate.Capabilities{}

	// 1. Storage
	var db *postgres.DB
	var store *memory.MemoryStorage
	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}
		caps.Orders = postgres.NewOrderRepo(db)
		caps.Customers = postgres.NewCustomerRepo(db)
		caps.Products = postgres.NewProductRepo(db)
		caps.Pricing = postgres.NewRuleRepo(db)
		log.Info("Using PostgreSQL storage")
	} else {
		store = memory.NewMemoryStorage()
		seedDemoData(store)
		caps.Orders = memory.NewOrderRepo(store)
		caps.Customers = memory.NewCustomerRepo(store)
		caps.Products = memory.NewProductRepo(store)
		caps.Pricing = memory.NewRuleRepo(store)
		log.Info("Using Memory storage with demo data")
	}

	// 2. Cache
	var redisClient *redisclient.Client
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		caps.Cache = redisclient.NewResultCache(redisClient)
	} else {
		caps.Cache = nopCache{}
		log.Warn("No redis configured, cache effect disabled")
	}

	// 3. Remaining collaborators
	caps.Mail = mail.NewSMTPSender(cfg.Mail)
	caps.Alerts = alerting.NewWebhookAlerter(cfg.Alerting)
	caps.Analytics = analytics.NewTracker(log)

	// 4. Orchestrator
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	orchestrator := orchestrate.New(caps,
		orchestrate.WithPolicies(buildPolicies(cfg.Retry)),
		orchestrate.WithSink(orchestrate.ObserveSink{Log: log}),
		orchestrate.WithCacheTTL(cacheTTL),
		orchestrate.WithLogger(log),
	)

	s := &Service{
		cfg:          cfg,
		orchestrator: orchestrator,
		db:           db,
		store:        store,
		redisClient:  redisClient,
		log:          log,
	}
	s.server = NewServer(s, cfg.Port)
	return s, nil
}

// Orchestrator exposes the underlying orchestrator (CLI entry point).
func (s *Service) Orchestrator() *orchestrate.Orchestrator {
	return s.orchestrator
}

// Start launches the HTTP server and background collectors.
func (s *Service) Start(ctx context.Context) error {
	if s.db != nil {
		s.db.StartMetricsCollector(ctx)
	}
	go func() {
		if err := s.server.Start(); err != nil {
			s.log.Error("HTTP server stopped", "error", err)
		}
	}()
	s.log.Info("Service started", "port", s.cfg.Port)
	return nil
}

// Stop drains optional effects and shuts everything down.
func (s *Service) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.orchestrator.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("Shutdown deadline reached with optional effects in flight")
	}

	if err := s.server.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return nil
}

// Health reports reachability of the attached stores.
func (s *Service) Health(ctx context.Context) map[string]string {
	health := map[string]string{"service": "ok"}
	if s.db != nil {
		if err := s.db.Health(ctx); err != nil {
			health["database"] = err.Error()
		} else {
			health["database"] = "ok"
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Health(ctx); err != nil {
			health["redis"] = err.Error()
		} else {
			health["redis"] = "ok"
		}
	}
	return health
}

// buildPolicies applies config overrides on top of the built-in table.
func buildPolicies(cfg config.RetryConfig) retry.Table {
	table := retry.DefaultTable()
	apply := func(group effect.Group, o config.PolicyOverride) {
		p := table[group]
		if o.MaxAttempts > 0 {
			p.MaxAttempts = o.MaxAttempts
		}
		if o.InitialDelay > 0 {
			p.InitialDelay = o.InitialDelay.Std()
		}
		if o.MaxDelay > 0 {
			p.MaxDelay = o.MaxDelay.Std()
		}
		if o.Timeout > 0 {
			p.Timeout = o.Timeout.Std()
		}
		table[group] = p
	}
	apply(effect.GroupStore, cfg.Store)
	apply(effect.GroupExternalAPI, cfg.ExternalAPI)
	apply(effect.GroupCache, cfg.Cache)
	apply(effect.GroupDefault, cfg.Default)
	return table
}

type nopCache struct{}

func (nopCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

// seedDemoData loads a small fixture set so memory mode can process orders
// out of the box.
func seedDemoData(store *memory.MemoryStorage) {
	store.AddCustomer(&domain.Customer{
		ID:    "cust-456",
		Email: "customer@example.com",
		Tier:  domain.TierPremium,
	})
	store.AddProduct(&domain.Product{ID: "prod-1", Name: "Keyboard", Stock: 100, Category: "peripherals"})
	store.AddProduct(&domain.Product{ID: "prod-2", Name: "Mouse", Stock: 200, Category: "peripherals"})
	store.AddOrder(&domain.Order{
		ID:         "order-123",
		CustomerID: "cust-456",
		Items: []domain.Item{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: 25},
			{ProductID: "prod-2", Quantity: 1, UnitPrice: 50},
		},
		CreatedAt: time.Now().UTC(),
	})
	store.SetRules([]domain.DiscountRule{
		{Tier: domain.TierPremium, MinPurchase: 50, Percent: 10},
		{Tier: domain.TierVIP, MinPurchase: 100, Percent: 15},
		{Tier: domain.TierStandard, MinPurchase: 200, Percent: 5},
	})
}
