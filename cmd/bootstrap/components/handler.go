package components

import (
	"crafty-kid/internal/handler"
	"crafty-kid/internal/handler/api"
	"crafty-kid/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewWebhookHandler,
		api.NewReviewHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
