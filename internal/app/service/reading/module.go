package reading

import "go.uber.org/fx"

// Module exposes the reading service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
