package app

import (
	"context"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"log/slog"
	"net/http"
	"os"
	"time"
	authAPI "tower_backend/internal/api/auth"
	ledgerAPI "tower_backend/internal/api/ledger"
	towerAPI "tower_backend/internal/api/tower"
	walletAPI "tower_backend/internal/api/wallet"
	"tower_backend/internal/config"
	"tower_backend/internal/config/env"
	"tower_backend/internal/events"
	"tower_backend/internal/events/kafka"
	"tower_backend/internal/middleware"
	"tower_backend/internal/repository"
	"tower_backend/internal/repository/auth_repo"
	"tower_backend/internal/repository/ledger_repo"
	"tower_backend/internal/repository/memory"
	"tower_backend/internal/repository/round_repo"
	"tower_backend/internal/repository/stats_repo"
	"tower_backend/internal/repository/user_repo"
	"tower_backend/internal/rng"
	"tower_backend/internal/service"
	"tower_backend/internal/service/auth"
	"tower_backend/internal/service/ledger"
	"tower_backend/internal/service/tower"
	"tower_backend/internal/service/wallet"
	"tower_backend/pkg/logger"
)

const (
	configPath     = "config.yaml"
	requestTimeout = 30 * time.Second
)

type ServiceProvider struct {
	// Configs
	configPath string
	storageCfg config.StorageConfig
	pgConfig   config.PGConfig
	jwtCfg     config.JWTConfig
	kafkaCfg   config.KafkaConfig
	logCfg     config.LogConfig
	towerCfg   config.TowerConfig
	ledgerCfg  config.LedgerConfig
	httpCfg    config.HTTPConfig

	logger *slog.Logger

	// Database
	dbClient  *pgxpool.Pool
	memStore  *memory.Store
	txManager repository.TxManager

	// Repositories
	authRepo   repository.AuthRepository
	userRepo   repository.UserRepository
	ledgerRepo repository.LedgerRepository
	roundRepo  repository.RoundRepository
	statsRepo  repository.StatsRepository

	publisher events.Publisher

	// Services
	authServ   service.AuthService
	walletServ service.WalletService
	ledgerServ service.LedgerService
	towerServ  service.TowerService

	// Handlers
	authHand   *authAPI.Handler
	walletHand *walletAPI.Handler
	ledgerHand *ledgerAPI.Handler
	towerHand  *towerAPI.Handler

	router chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{configPath: configPath}
}

//region Configs

func (sp *ServiceProvider) StorageCfg() config.StorageConfig {
	if sp.storageCfg == nil {
		cfg, err := env.NewStorageConfig()
		if err != nil {
			panic("failed to get storage config: " + err.Error())
		}
		sp.storageCfg = cfg
	}
	return sp.storageCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) KafkaCfg() config.KafkaConfig {
	if sp.kafkaCfg == nil {
		cfg, err := env.NewKafkaConfig()
		if err != nil {
			panic("failed to get kafka config: " + err.Error())
		}
		sp.kafkaCfg = cfg
	}
	return sp.kafkaCfg
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) TowerCfg() config.TowerConfig {
	if sp.towerCfg == nil {
		cfg, err := env.NewTowerConfigFromYAML(sp.configPath)
		if err != nil {
			panic("failed to get tower config: " + err.Error())
		}
		sp.towerCfg = cfg
	}
	return sp.towerCfg
}

func (sp *ServiceProvider) LedgerCfg() config.LedgerConfig {
	if sp.ledgerCfg == nil {
		cfg, err := env.NewLedgerConfigFromYAML(sp.configPath)
		if err != nil {
			panic("failed to get ledger config: " + err.Error())
		}
		sp.ledgerCfg = cfg
	}
	return sp.ledgerCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

//endregion

func (sp *ServiceProvider) Logger() *slog.Logger {
	if sp.logger == nil {
		sp.logger = logger.New(os.Stdout, sp.LogCfg().Level())
	}
	return sp.logger
}

//region Storage

func (sp *ServiceProvider) inMemory() bool {
	return sp.StorageCfg().Driver() == env.StorageMemory
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		poolCfg, err := pgxpool.ParseConfig(sp.PgConfig().DSN())
		if err != nil {
			panic("failed to parse db config: " + err.Error())
		}
		poolCfg.MaxConns = sp.PgConfig().MaxConns()

		dbc, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}

		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

// MemoryStore - хранилище для STORAGE=memory, общее для всех репозиториев
func (sp *ServiceProvider) MemoryStore() *memory.Store {
	if sp.memStore == nil {
		sp.memStore = memory.NewStore()
	}
	return sp.memStore
}

// querier - запросы идут в транзакцию из контекста, если она открыта
func (sp *ServiceProvider) querier(ctx context.Context) repository.QuerierGetter {
	pool := sp.DBClient(ctx)
	return func(ctx context.Context) repository.Querier {
		return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, pool)
	}
}

func (sp *ServiceProvider) TXManager(ctx context.Context) repository.TxManager {
	if sp.txManager == nil {
		if sp.inMemory() {
			sp.txManager = sp.MemoryStore()
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		if sp.inMemory() {
			sp.authRepo = sp.MemoryStore()
		} else {
			sp.authRepo = auth_repo.NewAuthRepository(sp.querier(ctx))
		}
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		if sp.inMemory() {
			sp.userRepo = sp.MemoryStore()
		} else {
			sp.userRepo = user_repo.NewUserRepository(sp.querier(ctx))
		}
	}
	return sp.userRepo
}

func (sp *ServiceProvider) LedgerRepo(ctx context.Context) repository.LedgerRepository {
	if sp.ledgerRepo == nil {
		if sp.inMemory() {
			sp.ledgerRepo = sp.MemoryStore()
		} else {
			sp.ledgerRepo = ledger_repo.NewLedgerRepository(sp.querier(ctx))
		}
	}
	return sp.ledgerRepo
}

func (sp *ServiceProvider) RoundRepo(ctx context.Context) repository.RoundRepository {
	if sp.roundRepo == nil {
		if sp.inMemory() {
			sp.roundRepo = sp.MemoryStore()
		} else {
			sp.roundRepo = round_repo.NewRoundRepository(sp.querier(ctx))
		}
	}
	return sp.roundRepo
}

// StatsRepo - статистика живет в памяти процесса при любом хранилище
func (sp *ServiceProvider) StatsRepo() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(sp.TowerCfg().StatsWindow())
	}
	return sp.statsRepo
}

//endregion

// Publisher - Kafka, если заданы брокеры, иначе события отбрасываются
func (sp *ServiceProvider) Publisher() events.Publisher {
	if sp.publisher == nil {
		cfg := sp.KafkaCfg()
		if cfg.Enabled() {
			sp.publisher = kafka.NewPublisher(cfg.Brokers(), cfg.Topic())
		} else {
			sp.publisher = events.Nop{}
		}
	}
	return sp.publisher
}

//region Services

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.AuthRepo(ctx), sp.JWTCfg())
	}
	return sp.authServ
}

func (sp *ServiceProvider) LedgerService(ctx context.Context) service.LedgerService {
	if sp.ledgerServ == nil {
		sp.ledgerServ = ledger.NewService(sp.LedgerRepo(ctx), sp.LedgerCfg())
	}
	return sp.ledgerServ
}

func (sp *ServiceProvider) WalletService(ctx context.Context) service.WalletService {
	if sp.walletServ == nil {
		sp.walletServ = wallet.NewService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.LedgerService(ctx), sp.Publisher(), sp.Logger())
	}
	return sp.walletServ
}

func (sp *ServiceProvider) TowerService(ctx context.Context) service.TowerService {
	if sp.towerServ == nil {
		sp.towerServ = tower.NewService(tower.Deps{
			TxManager: sp.TXManager(ctx),
			Wallet:    sp.WalletService(ctx),
			Ledger:    sp.LedgerService(ctx),
			RoundRepo: sp.RoundRepo(ctx),
			StatsRepo: sp.StatsRepo(),
			Generator: rng.NewRandom(sp.TowerCfg()),
			Config:    sp.TowerCfg(),
			Publisher: sp.Publisher(),
			Logger:    sp.Logger(),
		})
	}
	return sp.towerServ
}

//endregion

//region Handlers

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:       sp.AuthService(ctx),
			Logger:     sp.Logger(),
			RefreshTTL: sp.JWTCfg().RefreshTokenDuration(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) WalletHandler(ctx context.Context) *walletAPI.Handler {
	if sp.walletHand == nil {
		sp.walletHand = walletAPI.NewHandler(walletAPI.HandlerDeps{
			Serv:   sp.WalletService(ctx),
			Logger: sp.Logger(),
		})
	}
	return sp.walletHand
}

func (sp *ServiceProvider) LedgerHandler(ctx context.Context) *ledgerAPI.Handler {
	if sp.ledgerHand == nil {
		sp.ledgerHand = ledgerAPI.NewHandler(ledgerAPI.HandlerDeps{
			Serv:   sp.LedgerService(ctx),
			Logger: sp.Logger(),
		})
	}
	return sp.ledgerHand
}

func (sp *ServiceProvider) TowerHandler(ctx context.Context) *towerAPI.Handler {
	if sp.towerHand == nil {
		sp.towerHand = towerAPI.NewHandler(towerAPI.HandlerDeps{
			Serv:   sp.TowerService(ctx),
			Logger: sp.Logger(),
		})
	}
	return sp.towerHand
}

//endregion

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.RealIP)
		r.Use(middleware.Logger(sp.Logger()))
		r.Use(chimw.Recoverer)
		r.Use(chimw.Timeout(requestTimeout))

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		authHandler := sp.AuthHandler(ctx)
		walletHandler := sp.WalletHandler(ctx)
		ledgerHandler := sp.LedgerHandler(ctx)
		towerHandler := sp.TowerHandler(ctx)

		r.Route("/api", func(rr chi.Router) {
			// Auth endpoints
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)

			rr.Group(func(pr chi.Router) {
				pr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))

				// Wallet endpoints
				pr.Get("/balance", walletHandler.Balance)
				pr.Post("/cash-in", walletHandler.CashIn)
				pr.Post("/cash-out", walletHandler.CashOut)

				// Ledger endpoints
				pr.Get("/transactions", ledgerHandler.Transactions)
				pr.Get("/game-history", ledgerHandler.GameHistory)

				// Tower endpoints
				pr.Route("/tower", func(tr chi.Router) {
					tr.Post("/advance", towerHandler.Advance)
					tr.Post("/take", towerHandler.Take)
					tr.Post("/abandon", towerHandler.Abandon)
					tr.Get("/state", towerHandler.State)
					tr.Get("/stats", towerHandler.Stats)
				})
			})
		})

		sp.router = r
	}
	return sp.router
}

// Close - освобождает пул и продюсер
func (sp *ServiceProvider) Close() {
	if sp.publisher != nil {
		if err := sp.publisher.Close(); err != nil {
			sp.Logger().Error("failed to close publisher", slog.String("error", err.Error()))
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
