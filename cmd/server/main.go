package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/application/directory"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/notify"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	registry, err := buildRegistry(cfg.Tenants)
	if err != nil {
		log.Fatal("invalid tenant registry", zap.Error(err))
	}

	blobs, redisClient, err := buildBlobStore(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize persistence backend", zap.Error(err))
	}

	notifier := buildNotifier(cfg, redisClient, log)

	clock := shared.SystemClock()
	vendorStore := persistence.NewPartitionStore[*crm.Vendor](shared.ModuleVendors, blobs, notifier, log)
	enquiryStore := persistence.NewPartitionStore[*crm.Enquiry](shared.ModuleEnquiries, blobs, notifier, log)
	leadStore := persistence.NewPartitionStore[*crm.Lead](shared.ModuleLeads, blobs, notifier, log)
	staffStore := persistence.NewPartitionStore[*crm.StaffMember](shared.ModuleStaff, blobs, notifier, log)
	dialerStore := persistence.NewPartitionStore[*crm.DialerContact](shared.ModuleDialer, blobs, notifier, log)

	vendors := directory.NewVendorService(vendorStore, enquiryStore, registry, clock, log)
	leads := directory.NewLeadService(leadStore, registry, clock, log)
	staff := directory.NewStaffService(staffStore, registry, clock, log)
	dialer := directory.NewDialerService(dialerStore, registry, clock, log)
	exports := directory.NewExportService(vendors, leads, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	engine := router.New(router.Services{
		Vendors: vendors,
		Leads:   leads,
		Staff:   staff,
		Dialer:  dialer,
		Exports: exports,
	}, jwtService, log)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("store", cfg.Store.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info("server stopped")
}

func buildRegistry(entries []config.TenantEntry) (tenant.Registry, error) {
	tenants := make([]tenant.Tenant, 0, len(entries))
	for _, e := range entries {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, fmt.Errorf("tenant %q: invalid id: %w", e.Name, err)
		}
		kind := tenant.KindFranchise
		if e.Kind == string(tenant.KindHead) {
			kind = tenant.KindHead
		}
		tenants = append(tenants, tenant.Tenant{
			ID:     id,
			Name:   e.Name,
			Kind:   kind,
			Active: e.Active,
		})
	}
	return tenant.NewStaticRegistry(tenants)
}

func buildBlobStore(cfg *config.Config, log *zap.Logger) (persistence.BlobStore, *redis.Client, error) {
	switch cfg.Store.Backend {
	case "memory":
		return persistence.NewMemoryBlobStore(), maybeRedisClient(cfg), nil
	case "redis":
		store, err := persistence.NewRedisBlobStore(persistence.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Client(), nil
	case "database":
		db, err := openDatabase(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		store, err := persistence.NewGormBlobStore(db)
		if err != nil {
			return nil, nil, err
		}
		return store, maybeRedisClient(cfg), nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)),
	}
	switch cfg.Database.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.Database.DSN), gormCfg)
	case "postgres":
		return gorm.Open(postgres.Open(cfg.Database.PostgresDSN()), gormCfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// maybeRedisClient opens a redis client only when the notifier needs one
func maybeRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Notify.Backend != "redis" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func buildNotifier(cfg *config.Config, client *redis.Client, log *zap.Logger) notify.Notifier {
	if cfg.Notify.Backend == "redis" && client != nil {
		return notify.NewRedisNotifier(client, log)
	}
	return notify.NewInMemoryNotifier(log)
}
