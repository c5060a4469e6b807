package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/healthline/voice-agent/internal/config"
	agentHandler "github.com/healthline/voice-agent/internal/handler/agent"
	healthHandler "github.com/healthline/voice-agent/internal/handler/health"
	toolsHandler "github.com/healthline/voice-agent/internal/handler/tools"
	"github.com/healthline/voice-agent/internal/middleware"
	"github.com/healthline/voice-agent/internal/model"
	"github.com/healthline/voice-agent/internal/notifier"
	"github.com/healthline/voice-agent/internal/repository"
	"github.com/healthline/voice-agent/internal/repository/file"
	"github.com/healthline/voice-agent/internal/repository/memory"
	"github.com/healthline/voice-agent/internal/repository/postgres"
	"github.com/healthline/voice-agent/internal/router"
	bookingService "github.com/healthline/voice-agent/internal/service/booking"
	callService "github.com/healthline/voice-agent/internal/service/call"
	directoryService "github.com/healthline/voice-agent/internal/service/directory"
	refillService "github.com/healthline/voice-agent/internal/service/refill"
	summaryService "github.com/healthline/voice-agent/internal/service/summary"
	"github.com/healthline/voice-agent/internal/telephony"
	"github.com/healthline/voice-agent/internal/tool"
	"github.com/healthline/voice-agent/pkg/ident"
	"github.com/healthline/voice-agent/pkg/logger"
	"github.com/healthline/voice-agent/pkg/messaging"
	redisBroker "github.com/healthline/voice-agent/pkg/messaging/redis"
	"github.com/healthline/voice-agent/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	m := metrics.New("healthline")

	// Storage
	dirRepo, aptLedger, refillLedger, summaryLog, err := buildRepositories(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to initialize storage")
	}
	dirRepo = repository.InstrumentDirectory(dirRepo, m)
	aptLedger = repository.InstrumentAppointmentLedger(aptLedger, m)
	refillLedger = repository.InstrumentRefillLedger(refillLedger, m)
	summaryLog = repository.InstrumentSummaryLog(summaryLog, m)

	// Optional event broker
	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = redisBroker.NewBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to event broker")
		}
		broker = messaging.Instrument(broker, m)
		defer broker.Close()
	}

	// Optional staff notifier
	var notify notifier.Notifier
	if cfg.Notifier.Enabled {
		notify = notifier.NewEmailNotifier(cfg.Notifier)
	}

	// Services
	ids := ident.New()
	dirSvc := directoryService.NewService(dirRepo, cfg.Storage.DirectoryCacheTTL)
	bookingSvc := bookingService.NewService(aptLedger, dirRepo, ids, bookingService.Options{
		Broker:       broker,
		Notifier:     notify,
		AfterRewrite: dirSvc.Invalidate,
	})
	refillSvc := refillService.NewService(refillLedger, ids, broker)
	summarySvc := summaryService.NewService(summaryLog, ids)

	teleClient := telephony.NewHTTPClient(cfg.Telephony)
	callSvc := callService.NewService(teleClient, cfg.Agent.TransferTo)

	// Tool surface
	registry := tool.NewRegistry(m)
	tool.RegisterAll(registry, tool.Services{
		Directory: dirSvc,
		Booking:   bookingSvc,
		Refill:    refillSvc,
		Summary:   summarySvc,
		Call:      callSvc,
	}, validator.New())

	// HTTP surface
	r := router.New(
		router.Config{
			RateLimit: rate.Limit(cfg.Server.RateLimit),
			RateBurst: cfg.Server.RateBurst,
		},
		middleware.NewAuth(cfg.Auth.TokenHash),
		toolsHandler.NewHandler(registry),
		agentHandler.NewHandler(cfg.Agent.Name, registry),
		healthHandler.NewHandler(dirRepo),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("driver", cfg.Storage.Driver).Msg("voice agent backend listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func buildRepositories(cfg *config.Config) (
	repository.DirectoryRepository,
	repository.AppointmentLedger,
	repository.RefillLedger,
	repository.SummaryLog,
	error,
) {
	switch cfg.Storage.Driver {
	case "file", "":
		fc := cfg.Storage.File
		return file.NewDirectoryRepository(fc.DoctorsPath),
			file.NewAppointmentLedger(fc.AppointmentsPath),
			file.NewRefillLedger(fc.RefillsPath),
			file.NewSummaryLog(fc.SummariesPath),
			nil
	case "postgres":
		db, err := postgres.NewDB(cfg.Storage.Postgres)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return postgres.NewDirectoryRepository(db),
			postgres.NewAppointmentLedger(db),
			postgres.NewRefillLedger(db),
			postgres.NewSummaryLog(db),
			nil
	case "memory":
		return memory.NewDirectoryRepository(model.Directory{}),
			memory.NewAppointmentLedger(),
			memory.NewRefillLedger(),
			memory.NewSummaryLog(),
			nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
