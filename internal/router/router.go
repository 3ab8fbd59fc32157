package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/craftlink/platform-api/internal/config"
	"github.com/craftlink/platform-api/internal/handler/auth"
	"github.com/craftlink/platform-api/internal/handler/company"
	"github.com/craftlink/platform-api/internal/handler/contract"
	"github.com/craftlink/platform-api/internal/handler/directory"
	"github.com/craftlink/platform-api/internal/handler/faq"
	"github.com/craftlink/platform-api/internal/handler/health"
	"github.com/craftlink/platform-api/internal/handler/membership"
	"github.com/craftlink/platform-api/internal/handler/notification"
	"github.com/craftlink/platform-api/internal/handler/review"
	"github.com/craftlink/platform-api/internal/handler/support"
	"github.com/craftlink/platform-api/internal/handler/user"
	"github.com/craftlink/platform-api/internal/middleware"
	pkgauth "github.com/craftlink/platform-api/pkg/auth"
	"github.com/craftlink/platform-api/pkg/metrics"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Membership   *membership.Handler
	Contract     *contract.Handler
	Notification *notification.Handler
	Directory    *directory.Handler
	Company      *company.Handler
	User         *user.Handler
	Review       *review.Handler
	FAQ          *faq.Handler
	Support      *support.Handler
	Health       *health.Handler
}

// New assembles the gin engine with the full middleware chain and all routes.
func New(cfg *config.Config, h Handlers, tokens *pkgauth.TokenManager, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handler())
	r.Use(httpMetrics.Middleware())

	r.GET("/health/live", h.Health.Liveness)
	r.GET("/health/ready", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public surface.
	r.POST("/membership/renew", h.Membership.Renew)
	r.POST("/contracts", h.Contract.Create)

	r.POST("/notifications/create", h.Notification.Create)
	r.GET("/notifications", h.Notification.List)
	r.POST("/notifications/mark-read", h.Notification.MarkRead)
	r.POST("/notifications/mark-all-read", h.Notification.MarkAllRead)
	r.POST("/notifications/delete", h.Notification.Delete)

	r.GET("/cities", h.Directory.ListCities)
	r.GET("/sectors", h.Directory.ListSectors)
	r.GET("/services", h.Directory.ListServices)
	r.GET("/faqs", h.FAQ.List)

	r.GET("/companies", h.Company.List)
	r.GET("/companies/:id", h.Company.Get)
	r.GET("/companies/:id/reviews", h.Review.ListForCompany)

	r.POST("/users", h.User.Create)
	r.POST("/reviews", h.Review.Create)
	r.POST("/reviews/:id/delete", h.Review.Delete)
	r.POST("/support", h.Support.Open)

	r.POST("/admin/login", h.Auth.Login)

	// Admin surface, behind token auth.
	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuth(tokens))
	{
		admin.POST("/memberships/extend", h.Membership.Extend)
		admin.POST("/memberships/toggle", h.Membership.Toggle)
		admin.GET("/memberships", h.Membership.List)
		admin.GET("/memberships/:id/history", h.Membership.History)

		admin.GET("/contracts", h.Contract.List)
		admin.PATCH("/contracts", h.Contract.UpdateStatus)
		admin.HEAD("/contracts", h.Contract.PendingCount)

		admin.POST("/cities", h.Directory.CreateCity)
		admin.PUT("/cities/:id", h.Directory.UpdateCity)
		admin.DELETE("/cities/:id", h.Directory.DeleteCity)

		admin.POST("/sectors", h.Directory.CreateSector)
		admin.PUT("/sectors/:id", h.Directory.UpdateSector)
		admin.DELETE("/sectors/:id", h.Directory.DeleteSector)

		admin.POST("/services", h.Directory.CreateService)
		admin.PUT("/services/:id", h.Directory.UpdateService)
		admin.DELETE("/services/:id", h.Directory.DeleteService)

		admin.POST("/companies", h.Company.Create)
		admin.PUT("/companies/:id", h.Company.Update)
		admin.DELETE("/companies/:id", h.Company.Delete)

		admin.GET("/users", h.User.List)
		admin.GET("/users/:id", h.User.Get)
		admin.PUT("/users/:id", h.User.Update)
		admin.DELETE("/users/:id", h.User.Delete)

		admin.POST("/faqs", h.FAQ.Create)
		admin.PUT("/faqs/:id", h.FAQ.Update)
		admin.DELETE("/faqs/:id", h.FAQ.Delete)

		admin.GET("/support", h.Support.List)
		admin.GET("/support/:id", h.Support.Get)
		admin.POST("/support/:id/answer", h.Support.Answer)
		admin.POST("/support/:id/close", h.Support.Close)
	}

	return r
}
