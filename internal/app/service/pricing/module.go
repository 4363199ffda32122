package pricing

import "go.uber.org/fx"

// Module exposes the pricing calculator via Fx.
var Module = fx.Options(
	fx.Provide(NewCalculator),
)
