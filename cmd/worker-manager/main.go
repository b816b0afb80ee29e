// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"onboarding-workers/internal/common/camunda"
	"onboarding-workers/internal/common/config"
	"onboarding-workers/internal/common/database"
	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/common/observability"
	"onboarding-workers/internal/ledger"

	// Onboarding Workers (5)
	ap "onboarding-workers/internal/workers/onboarding/aggregate-progress"
	ep "onboarding-workers/internal/workers/onboarding/evaluate-profile"
	rdu "onboarding-workers/internal/workers/onboarding/record-document-upload"
	utp "onboarding-workers/internal/workers/onboarding/update-training-progress"
	vd "onboarding-workers/internal/workers/onboarding/verify-document"

	// Data Access Workers (2)
	qo "onboarding-workers/internal/workers/data-access/query-onboarding"
	sr "onboarding-workers/internal/workers/data-access/search-roster"

	// Roster, Reporting & Assistant Workers (3)
	af "onboarding-workers/internal/workers/assistant/answer-faq"
	gcr "onboarding-workers/internal/workers/reporting/generate-completion-report"
	cer "onboarding-workers/internal/workers/roster/create-employee-record"

	// Communication & Session Workers (2)
	ss "onboarding-workers/internal/workers/auth/session-signout"
	sn "onboarding-workers/internal/workers/communication/send-notification"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Shared Stores ---
	documents := ledger.NewPostgresDocumentLedger(pg.DB, log)
	training := ledger.NewPostgresTrainingLedger(pg.DB, log)
	employees := ledger.NewPostgresEmployeeStore(pg.DB, log)

	fleet := camunda.NewFleet(zeebeClient, zapLog, obs)
	register := func(taskType string, handle camunda.HandlerFunc) {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		fleet.Register(taskType, wcfg.MaxJobsActive, time.Duration(wcfg.Timeout)*time.Millisecond, handle)
	}

	// --- START: Register ALL 12 Workers ---

	// --- 1. Onboarding Workers (5) ---
	if config.IsWorkerEnabled(cfg, ep.TaskType) {
		handler := ep.NewHandler(
			&ep.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, ep.TaskType).Timeout),
			},
			log,
		)
		register(ep.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, rdu.TaskType) {
		handler := rdu.NewHandler(
			&rdu.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, rdu.TaskType).Timeout),
			},
			log, documents,
		)
		register(rdu.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, vd.TaskType) {
		handler := vd.NewHandler(
			&vd.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, vd.TaskType).Timeout),
			},
			log, documents,
		)
		register(vd.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, utp.TaskType) {
		handler := utp.NewHandler(
			&utp.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, utp.TaskType).Timeout),
			},
			log, training,
		)
		register(utp.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, ap.TaskType) {
		cacheTTL := 5 * time.Minute
		if cfg.Onboarding.ProgressCacheTTL > 0 {
			cacheTTL = time.Duration(cfg.Onboarding.ProgressCacheTTL) * time.Second
		}
		handler := ap.NewHandler(
			&ap.Config{
				Timeout:  config.GetDuration(config.GetWorkerConfig(cfg, ap.TaskType).Timeout),
				CacheTTL: cacheTTL,
			},
			log, employees, documents, training, redis.Client,
		)
		register(ap.TaskType, handler.Handle)
	}

	// --- 2. Data Access Workers (2) ---
	if config.IsWorkerEnabled(cfg, qo.TaskType) {
		handler := qo.NewHandler(
			&qo.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, qo.TaskType).Timeout),
			},
			pg.DB, log,
		)
		register(qo.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, sr.TaskType) {
		handler := sr.NewHandler(
			&sr.Config{
				Timeout:      config.GetDuration(config.GetWorkerConfig(cfg, sr.TaskType).Timeout),
				DefaultIndex: cfg.Onboarding.RosterIndex,
			},
			esClient.Client, log,
		)
		register(sr.TaskType, handler.Handle)
	}

	// --- 3. Roster, Reporting & Assistant Workers (3) ---
	if config.IsWorkerEnabled(cfg, cer.TaskType) {
		handler := cer.NewHandler(
			&cer.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, cer.TaskType).Timeout),
			},
			pg.DB, log, documents, training,
		)
		register(cer.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, gcr.TaskType) {
		handler := gcr.NewHandler(
			&gcr.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, gcr.TaskType).Timeout),
			},
			log, employees, documents, training,
		)
		register(gcr.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, af.TaskType) {
		handler := af.NewHandler(
			&af.Config{
				Timeout: config.GetDuration(config.GetWorkerConfig(cfg, af.TaskType).Timeout),
			},
			log,
			cfg.Onboarding.HRContactEmail,
			cfg.Onboarding.HRContactPhone,
		)
		register(af.TaskType, handler.Handle)
	}

	// --- 4. Communication & Session Workers (2) ---
	if config.IsWorkerEnabled(cfg, sn.TaskType) {
		handler, err := sn.NewHandler(
			&sn.Config{
				EmailEnabled:     cfg.Notifications.Email.Enabled,
				SMSEnabled:       cfg.Notifications.SMS.Enabled,
				FromEmail:        cfg.Notifications.Email.FromEmail,
				AWSRegion:        cfg.Notifications.AWS.Region,
				TemplateRegistry: cfg.Registry.TemplatesPath,
				Timeout:          config.GetDuration(config.GetWorkerConfig(cfg, sn.TaskType).Timeout),
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		register(sn.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, ss.TaskType) {
		handler, err := ss.NewHandler(ss.HandlerOptions{
			AppConfig: cfg,
			Camunda:   camundaClient,
			Logger:    log,
		})
		if err != nil {
			zapLog.Fatal("failed to create session-signout handler", zap.Error(err))
		}
		register(ss.TaskType, handler.Handle)
	}

	zapLog.Info("workers registered", zap.Int("count", fleet.Size()))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fleet.Close(shutdownCtx)

	zapLog.Info("Worker manager stopped gracefully")
}
