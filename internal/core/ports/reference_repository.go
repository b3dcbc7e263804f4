package ports

import (
	"context"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/reference"
)

// ReferenceRepository defines the persistence contract for the lookup entities
// orders refer to: order types, care settings, and order frequencies.
//
// The engine reads this data; mutation is limited to the simple
// save/retire/unretire/purge operations, each guarded by a reject-if-in-use
// check where deletion would orphan orders. Single-object lookups return
// (nil, nil) when nothing matches.
type ReferenceRepository interface {
	// Order types.

	// SaveOrderType creates or updates an order type.
	SaveOrderType(ctx context.Context, orderType *reference.OrderType) error

	// GetOrderType retrieves an order type by id.
	GetOrderType(ctx context.Context, id kernel.UUID) (*reference.OrderType, error)

	// GetOrderTypeByName retrieves an order type by its exact name.
	GetOrderTypeByName(ctx context.Context, name string) (*reference.OrderType, error)

	// GetOrderTypes retrieves all order types, including retired ones when requested.
	GetOrderTypes(ctx context.Context, includeRetired bool) ([]*reference.OrderType, error)

	// GetSubtypes retrieves all transitive descendants of the given order type.
	// The type itself is not included in the result.
	GetSubtypes(ctx context.Context, id kernel.UUID, includeRetired bool) ([]*reference.OrderType, error)

	// OrderTypeForConcept resolves the order type associated with the concept's
	// class. Returns (nil, nil) when the concept has no mapping.
	OrderTypeForConcept(ctx context.Context, conceptID kernel.UUID) (*reference.OrderType, error)

	// PurgeOrderType irreversibly removes an order type.
	// Fails while orders or subtypes reference it.
	PurgeOrderType(ctx context.Context, id kernel.UUID) error

	// Care settings.

	// SaveCareSetting creates or updates a care setting.
	SaveCareSetting(ctx context.Context, careSetting *reference.CareSetting) error

	// GetCareSetting retrieves a care setting by id.
	GetCareSetting(ctx context.Context, id kernel.UUID) (*reference.CareSetting, error)

	// GetCareSettingByName retrieves a care setting by its exact name.
	GetCareSettingByName(ctx context.Context, name string) (*reference.CareSetting, error)

	// GetCareSettings retrieves all care settings, including retired ones when requested.
	GetCareSettings(ctx context.Context, includeRetired bool) ([]*reference.CareSetting, error)

	// Order frequencies.

	// SaveOrderFrequency creates or updates an order frequency.
	// Editing a frequency already referenced by orders is rejected.
	SaveOrderFrequency(ctx context.Context, frequency *reference.OrderFrequency) error

	// GetOrderFrequency retrieves an order frequency by id.
	GetOrderFrequency(ctx context.Context, id kernel.UUID) (*reference.OrderFrequency, error)

	// GetOrderFrequencyByConcept retrieves the frequency backed by the given concept.
	GetOrderFrequencyByConcept(ctx context.Context, conceptID kernel.UUID) (*reference.OrderFrequency, error)

	// GetOrderFrequencies retrieves all frequencies, including retired ones when requested.
	GetOrderFrequencies(ctx context.Context, includeRetired bool) ([]*reference.OrderFrequency, error)

	// PurgeOrderFrequency irreversibly removes a frequency.
	// Fails while orders reference it.
	PurgeOrderFrequency(ctx context.Context, id kernel.UUID) error
}
