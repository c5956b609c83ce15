package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"crafty-kid/internal/domain/user"
	"crafty-kid/internal/handler/api"
	"crafty-kid/internal/handler/middleware"
	"crafty-kid/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	webhookHandler *api.WebhookHandler,
	reviewHandler *api.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, paymentHandler, webhookHandler, reviewHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	paymentHandler *api.PaymentHandler,
	webhookHandler *api.WebhookHandler,
	reviewHandler *api.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
			})
		}

		payments := apiGroup.Group("/payments")
		{
			// The webhook authenticates itself by signature, never by session
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/webhook", Handler: webhookHandler.Handle},
				{Method: http.MethodPost, Path: "/intent", Handler: paymentHandler.CreateIntent,
					Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
			})
		}

		reviews := apiGroup.Group("/reviews")
		{
			addRoutes(reviews, []route{
				{Method: http.MethodGet, Path: "", Handler: reviewHandler.ListByTarget},
				{Method: http.MethodPost, Path: "", Handler: reviewHandler.Submit,
					Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/instructors/:id/rating-stats", Handler: reviewHandler.InstructorRatingStats},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/reviews/:id/flag", Handler: reviewHandler.Flag},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
