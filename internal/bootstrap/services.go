package bootstrap

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"github.com/skipflow/skipflow-go/config"
	"github.com/skipflow/skipflow-go/internal/adapters/rediscache"
	"github.com/skipflow/skipflow-go/internal/adapters/xero"
	"github.com/skipflow/skipflow-go/internal/data"
	"github.com/skipflow/skipflow-go/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Jobs       *service.JobService
	Swaps      *service.SwapService
	Payments   *service.PaymentService
	Accounting *service.AccountingService
	DriverRuns *service.DriverRunService
	Tenants    *service.TenantDirectory
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB             *sql.DB
	Redis          redis.UniversalClient
	JobRepo        *data.JobRepo
	EventRepo      *data.JobEventRepo
	TenantRepo     *data.TenantRepo
	SettingsRepo   *data.SettingsRepo
	ConnectionRepo *data.ConnectionRepo
	TenantCache    *rediscache.TenantCache
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(deps *ServiceDeps) *serviceRepositories {
	encryptor := CreateEncryptor(deps.Config.Accounting.EncryptionKey, deps.Logger)

	repos := &serviceRepositories{
		DB:             deps.DB,
		Redis:          deps.RedisClient,
		JobRepo:        data.NewJobRepo(deps.DB),
		EventRepo:      data.NewJobEventRepo(deps.DB),
		TenantRepo:     data.NewTenantRepo(deps.DB),
		SettingsRepo:   data.NewSettingsRepo(deps.DB),
		ConnectionRepo: data.NewConnectionRepo(deps.DB, encryptor),
	}
	if deps.RedisClient != nil {
		repos.TenantCache = rediscache.NewTenantCache(deps.RedisClient)
	}
	return repos
}

// buildAccountingClient wires the OAuth token manager and the accounting API
// client from app-level credentials. Per-tenant refresh tokens come from the
// connection repo.
func buildAccountingClient(
	repos *serviceRepositories,
	cfg config.AccountingConfig,
	logger *slog.Logger,
) *xero.Client {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
	}

	tokens := xero.NewTokenManager(xero.TokenManagerOptions{
		Connections: repos.ConnectionRepo,
		OAuth:       oauthCfg,
		Logger:      logger,
	})
	if cfg.RefreshMargin > 0 {
		tokens.WithMargin(cfg.RefreshMargin)
	}

	return xero.NewClient(xero.Options{
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Tokens:     tokens,
	})
}

// NewServices builds the full service graph.
func NewServices(deps *ServiceDeps) ServiceContainer {
	repos := buildRepositories(deps)

	codes := service.AccountCodeDefaults{
		CardClearingCode: deps.Config.Accounting.Codes.CardClearing,
		BankAccountCode:  deps.Config.Accounting.Codes.Bank,
		SalesAccountCode: deps.Config.Accounting.Codes.Sales,
	}

	client := buildAccountingClient(repos, deps.Config.Accounting, deps.Logger)

	accounting := service.NewAccountingService(service.AccountingServiceOptions{
		Repos: service.AccountingRepos{
			Jobs:     repos.JobRepo,
			Tenants:  repos.TenantRepo,
			Settings: repos.SettingsRepo,
		},
		Client:   client,
		Defaults: codes,
	})

	jobs := service.NewJobService(service.JobServiceOptions{
		Repos:    service.JobRepos{Jobs: repos.JobRepo, Events: repos.EventRepo},
		Invoicer: accounting,
	})

	swaps := service.NewSwapService(service.SwapServiceOptions{
		Jobs:     repos.JobRepo,
		Invoicer: accounting,
	})

	payments := service.NewPaymentService(service.PaymentServiceOptions{
		Repos:    service.PaymentRepos{Jobs: repos.JobRepo, Settings: repos.SettingsRepo},
		Client:   client,
		Defaults: codes,
	})

	runs := service.NewDriverRunService(service.DriverRunServiceOptions{
		Jobs:   repos.JobRepo,
		Events: repos.EventRepo,
	})

	tenantOpts := service.TenantDirectoryOptions{
		Tenants:  repos.TenantRepo,
		CacheTTL: deps.Config.Cache.TenantTTL,
	}
	if repos.TenantCache != nil {
		tenantOpts.Cache = repos.TenantCache
	}
	tenants := service.NewTenantDirectory(tenantOpts)

	return ServiceContainer{
		Jobs:       jobs,
		Swaps:      swaps,
		Payments:   payments,
		Accounting: accounting,
		DriverRuns: runs,
		Tenants:    tenants,
	}
}
