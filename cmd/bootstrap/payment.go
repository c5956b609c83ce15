package bootstrap

import (
	"log/slog"

	"crafty-kid/internal/infra/payment"
	"crafty-kid/internal/pkg/config"
	"crafty-kid/internal/usecase/shared"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewPaymentGateway,
		NewWebhookVerifier,
	),
)

// NewPaymentGateway returns nil when Stripe keys are absent; payment
// endpoints then answer 503 while the rest of the API keeps working.
func NewPaymentGateway(cfg config.Config) shared.PaymentGateway {
	if !cfg.Stripe.Configured() {
		slog.Warn("Stripe is not configured; payment endpoints are disabled")
		return nil
	}
	return payment.NewStripeGateway(cfg.Stripe)
}

func NewWebhookVerifier(cfg config.Config) shared.WebhookVerifier {
	if !cfg.Stripe.Configured() {
		return nil
	}
	return payment.NewStripeWebhookVerifier(cfg.Stripe)
}
