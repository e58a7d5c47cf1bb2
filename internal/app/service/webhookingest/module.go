package webhookingest

import "go.uber.org/fx"

// Module exposes the webhook ingestion service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
