package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/craftlink/platform-api/internal/config"
	"github.com/craftlink/platform-api/internal/email"
	"github.com/craftlink/platform-api/internal/model"
	authhandler "github.com/craftlink/platform-api/internal/handler/auth"
	companyhandler "github.com/craftlink/platform-api/internal/handler/company"
	contracthandler "github.com/craftlink/platform-api/internal/handler/contract"
	directoryhandler "github.com/craftlink/platform-api/internal/handler/directory"
	faqhandler "github.com/craftlink/platform-api/internal/handler/faq"
	healthhandler "github.com/craftlink/platform-api/internal/handler/health"
	membershiphandler "github.com/craftlink/platform-api/internal/handler/membership"
	notificationhandler "github.com/craftlink/platform-api/internal/handler/notification"
	reviewhandler "github.com/craftlink/platform-api/internal/handler/review"
	supporthandler "github.com/craftlink/platform-api/internal/handler/support"
	userhandler "github.com/craftlink/platform-api/internal/handler/user"
	"github.com/craftlink/platform-api/internal/repository/postgres"
	"github.com/craftlink/platform-api/internal/router"
	authservice "github.com/craftlink/platform-api/internal/service/auth"
	companyservice "github.com/craftlink/platform-api/internal/service/company"
	contractservice "github.com/craftlink/platform-api/internal/service/contract"
	directoryservice "github.com/craftlink/platform-api/internal/service/directory"
	faqservice "github.com/craftlink/platform-api/internal/service/faq"
	membershipservice "github.com/craftlink/platform-api/internal/service/membership"
	notificationservice "github.com/craftlink/platform-api/internal/service/notification"
	reviewservice "github.com/craftlink/platform-api/internal/service/review"
	supportservice "github.com/craftlink/platform-api/internal/service/support"
	userservice "github.com/craftlink/platform-api/internal/service/user"
	pkgauth "github.com/craftlink/platform-api/pkg/auth"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
	"github.com/craftlink/platform-api/pkg/logger"
	"github.com/craftlink/platform-api/pkg/messaging"
	redisbroker "github.com/craftlink/platform-api/pkg/messaging/redis"
	"github.com/craftlink/platform-api/pkg/metrics"
	"github.com/craftlink/platform-api/pkg/security"
)

func main() {
	cfg, err := config.Load()
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

	tokens := pkgauth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	hasher := security.NewBcryptHasher(0)

	if cfg.Bootstrap.AdminEmail != "" {
		seedAdmin(cfg, db, tokens, hasher, log)
	}

	engine := buildRouter(cfg, db, broker, emailSvc, tokens, hasher, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{"port": cfg.Server.Port}).Info("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
}

// seedAdmin creates the configured bootstrap admin on startup. An
// account that already exists is left alone.
func seedAdmin(cfg *config.Config, db *sqlx.DB, tokens *pkgauth.TokenManager, hasher security.PasswordHasher, log *logger.Logger) {
	repo := postgres.NewAdminRepository(postgres.NewBaseRepository(db))
	svc := authservice.NewService(repo, tokens, hasher)

	admin := &model.Admin{
		Name:  cfg.Bootstrap.AdminName,
		Email: cfg.Bootstrap.AdminEmail,
		Role:  "admin",
	}
	err := svc.Register(context.Background(), admin, cfg.Bootstrap.AdminPassword)
	switch {
	case err == nil:
		log.WithFields(map[string]interface{}{"email": admin.Email}).Info("bootstrap admin created")
	case apperrors.IsConflict(err):
		log.Debug("bootstrap admin already exists")
	default:
		log.Fatal(err, "failed to create bootstrap admin")
	}
}

func buildRouter(
	cfg *config.Config,
	db *sqlx.DB,
	broker messaging.Broker,
	emailSvc email.Service,
	tokens *pkgauth.TokenManager,
	hasher security.PasswordHasher,
	log *logger.Logger,
) http.Handler {
	base := postgres.NewBaseRepository(db)

	companyRepo := postgres.NewCompanyRepository(base)
	membershipRepo := postgres.NewMembershipRepository(base)
	contractRepo := postgres.NewContractEventRepository(base)
	notificationRepo := postgres.NewNotificationRepository(base)
	userRepo := postgres.NewUserRepository(base)
	directoryRepo := postgres.NewDirectoryRepository(base)
	reviewRepo := postgres.NewReviewRepository(base)
	faqRepo := postgres.NewFAQRepository(base)
	supportRepo := postgres.NewSupportTicketRepository(base)
	adminRepo := postgres.NewAdminRepository(base)

	notificationSvc := notificationservice.NewService(notificationRepo, userRepo, companyRepo, emailSvc, broker, log)
	membershipSvc := membershipservice.NewService(membershipRepo, companyRepo, notificationSvc, emailSvc, log)
	contractSvc := contractservice.NewService(contractRepo, notificationSvc, log)
	directorySvc := directoryservice.NewService(directoryRepo)
	companySvc := companyservice.NewService(companyRepo)
	userSvc := userservice.NewService(userRepo, hasher)
	reviewSvc := reviewservice.NewService(reviewRepo)
	faqSvc := faqservice.NewService(faqRepo)
	supportSvc := supportservice.NewService(supportRepo, notificationSvc, emailSvc, log)
	authSvc := authservice.NewService(adminRepo, tokens, hasher)

	handlers := router.Handlers{
		Auth:         authhandler.NewHandler(authSvc),
		Membership:   membershiphandler.NewHandler(membershipSvc),
		Contract:     contracthandler.NewHandler(contractSvc),
		Notification: notificationhandler.NewHandler(notificationSvc),
		Directory:    directoryhandler.NewHandler(directorySvc),
		Company:      companyhandler.NewHandler(companySvc),
		User:         userhandler.NewHandler(userSvc),
		Review:       reviewhandler.NewHandler(reviewSvc),
		FAQ:          faqhandler.NewHandler(faqSvc),
		Support:      supporthandler.NewHandler(supportSvc),
		Health:       healthhandler.NewHandler(db),
	}

	return router.New(cfg, handlers, tokens, metrics.NewHTTP("platform_api"))
}
