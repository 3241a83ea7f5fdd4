package access

import "go.uber.org/fx"

// Module provides the access gate.
var Module = fx.Provide(NewGate)
