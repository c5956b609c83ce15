package bootstrap

import (
	"crafty-kid/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	PaymentModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
