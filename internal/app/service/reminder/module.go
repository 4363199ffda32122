package reminder

import "go.uber.org/fx"

// Module exposes the reminder sweep via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
