package response

import "crafty-kid/internal/usecase/commands"

type PaymentIntentResponse struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
	AmountCents  int64  `json:"amountCents"`
	Reused       bool   `json:"reused"`
}

func FromEnsureIntentResult(r *commands.EnsureIntentResult) *PaymentIntentResponse {
	return &PaymentIntentResponse{
		IntentID:     r.IntentID,
		ClientSecret: r.ClientSecret,
		Status:       r.Status,
		AmountCents:  r.AmountCents,
		Reused:       r.Reused,
	}
}
