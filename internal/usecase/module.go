package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/pharmadash/internal/relay"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newDefaults,
	NewAuthUseCase,
	NewOrderUseCase,
	NewMedicineUseCase,
	func(r *relay.Relay) OrderNotifier { return r },
)
