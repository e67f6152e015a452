package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	companyservice "tenure/internal/company/service"
	companystore "tenure/internal/company/store"
	contractservice "tenure/internal/contract/service"
	contractstore "tenure/internal/contract/store"
	credentialservice "tenure/internal/credential/service"
	credentialstore "tenure/internal/credential/store"
	disputeservice "tenure/internal/dispute/service"
	"tenure/internal/events"
	"tenure/internal/payout"
	"tenure/internal/platform/config"
	"tenure/internal/platform/httpserver"
	"tenure/internal/platform/logger"
	"tenure/internal/platform/metrics"
	"tenure/internal/platform/postgres"
	platformredis "tenure/internal/platform/redis"
	"tenure/internal/platform/token"
	reviewservice "tenure/internal/review/service"
	reviewstore "tenure/internal/review/store"
	httptransport "tenure/internal/transport/http"
)

const devTokenTTL = time.Hour

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	tokenService := token.NewService(cfg.JWTSigningKey, "tenure")

	// Stores: PostgreSQL when configured, in-memory otherwise.
	var (
		companies   companyservice.CompanyStore
		credentials credentialservice.CredentialStore
		contracts   contractservice.ContractStore
		reviews     reviewservice.ReviewStore
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return err
		}
		companies = companystore.NewPostgres(db)
		credentials = credentialstore.NewPostgres(db)
		contracts = contractstore.NewPostgres(db)
		reviews = reviewstore.NewPostgres(db)
		log.Info("using postgres storage")
	} else {
		companies = companystore.NewInMemory()
		credentials = credentialstore.NewInMemory()
		contracts = contractstore.NewInMemory()
		reviews = reviewstore.NewInMemory()
		log.Info("using in-memory storage")
	}

	// Event pipeline: always the in-memory log, plus Kafka and the stats
	// cache invalidator when their backends are configured.
	publisher := events.NewPublisher(log)
	eventLog := events.NewInMemoryLog()
	sinks := []events.Sink{eventLog}
	kafkaSink, err := events.NewKafkaSink(cfg.Kafka)
	if err != nil {
		return err
	}
	if kafkaSink != nil {
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
		log.Info("kafka event sink enabled", "topic", cfg.Kafka.Topic)
	}

	companyOpts := []companyservice.Option{
		companyservice.WithLogger(log),
		companyservice.WithEventPublisher(publisher),
		companyservice.WithMetrics(m),
	}
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache := companystore.NewStatsCache(redisClient, cfg.StatsCacheTTL)
		companyOpts = append(companyOpts, companyservice.WithStatsCache(cache))
		sinks = append(sinks, companyservice.NewInvalidationSink(cache))
		log.Info("redis stats cache enabled")
	}
	worker := events.NewWorker(publisher.Inbox(), log, sinks...)

	companySvc := companyservice.New(companies, contracts, reviews, companyOpts...)

	credentialSvc := credentialservice.New(credentials, companies,
		credentialservice.WithLogger(log),
		credentialservice.WithEventPublisher(publisher),
		credentialservice.WithMetrics(m),
	)
	ledger := payout.NewInMemoryLedger()
	contractSvc := contractservice.New(contracts, companies, credentials, ledger,
		contractservice.WithLogger(log),
		contractservice.WithEventPublisher(publisher),
		contractservice.WithMetrics(m),
	)
	disputeSvc := disputeservice.New(contracts, ledger,
		disputeservice.WithLogger(log),
		disputeservice.WithEventPublisher(publisher),
		disputeservice.WithMetrics(m),
	)
	reviewSvc := reviewservice.New(reviews, contracts, companies,
		reviewservice.WithLogger(log),
		reviewservice.WithEventPublisher(publisher),
		reviewservice.WithMetrics(m),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Companies:   httptransport.NewCompanyHandler(companySvc, log),
		Credentials: httptransport.NewCredentialHandler(credentialSvc, log),
		Contracts:   httptransport.NewContractHandler(contractSvc, disputeSvc, log),
		Reviews:     httptransport.NewReviewHandler(reviewSvc, log),
		Events:      httptransport.NewEventsHandler(eventLog),
		Auth:        httptransport.NewAuthHandler(tokenService, devTokenTTL, log),
		Validator:   tokenService,
		Logger:      log,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
