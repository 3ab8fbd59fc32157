package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/craftlink/platform-api/internal/config"
	"github.com/craftlink/platform-api/internal/email"
	"github.com/craftlink/platform-api/internal/repository/postgres"
	membershipservice "github.com/craftlink/platform-api/internal/service/membership"
	notificationservice "github.com/craftlink/platform-api/internal/service/notification"
	"github.com/craftlink/platform-api/pkg/logger"
	redisbroker "github.com/craftlink/platform-api/pkg/messaging/redis"
	"github.com/craftlink/platform-api/pkg/metrics"
)

// The worker runs the membership sweep on a fixed interval: it expires
// lapsed memberships and sends the tiered expiry warnings.
func main() {
	cfg, err := config.LoadWorker()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:   level,
		Console: cfg.Log.Console,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.ZL)
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}
	defer broker.Close()

	emailSvc := email.NewSMTPService(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	base := postgres.NewBaseRepository(db)
	companyRepo := postgres.NewCompanyRepository(base)
	membershipRepo := postgres.NewMembershipRepository(base)
	notificationRepo := postgres.NewNotificationRepository(base)
	userRepo := postgres.NewUserRepository(base)

	notificationSvc := notificationservice.NewService(notificationRepo, userRepo, companyRepo, emailSvc, broker, log)
	membershipSvc := membershipservice.NewService(membershipRepo, companyRepo, notificationSvc, emailSvc, log)

	m := metrics.New("platform_worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	healthSrv := startHealthServer(cfg.Worker.HealthPort, db)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = healthSrv.Shutdown(shutdownCtx)
	}()

	log.WithFields(map[string]interface{}{
		"interval": cfg.Worker.SweepInterval.String(),
	}).Info("starting membership sweep worker")

	runSweep(ctx, membershipSvc, m, log)

	ticker := time.NewTicker(cfg.Worker.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return
		case <-ticker.C:
			runSweep(ctx, membershipSvc, m, log)
		}
	}
}

func runSweep(ctx context.Context, svc membershipservice.Servicer, m *metrics.Metrics, log *logger.Logger) {
	start := time.Now()
	m.SweepRuns.Inc()

	result, err := svc.Sweep(ctx, time.Now())
	m.SweepDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.SweepFailures.Inc()
		log.Error(err, "membership sweep failed")
		return
	}

	m.MembershipsExpired.Add(float64(result.Expired))
	totalWarned := 0
	for threshold, count := range result.Warned {
		m.WarningsSent.WithLabelValues(strconv.Itoa(threshold)).Add(float64(count))
		totalWarned += count
	}

	log.WithFields(map[string]interface{}{
		"expired":  result.Expired,
		"warned":   totalWarned,
		"duration": time.Since(start).String(),
	}).Info("membership sweep completed")
}

func startHealthServer(port int, db interface{ PingContext(context.Context) error }) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()
	return srv
}
