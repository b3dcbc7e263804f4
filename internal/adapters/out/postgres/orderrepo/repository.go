package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/core/ports"
	"clinicalorders/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
// A duplicate id or order number surfaces as a conflict error.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("order", aggregate.ID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID. Returns (nil, nil) when no order matches.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderNumber retrieves an order by its order number.
// Returns (nil, nil) when no order matches.
func (r *GormOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByPatient retrieves a patient's orders matching the filter,
// sorted by start date descending.
func (r *GormOrderRepository) FindByPatient(
	ctx context.Context,
	patientID kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	if err := patientID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("patient_id = ?", patientID.Bytes())

	if filter.ConceptID != nil {
		query = query.Where("concept_id = ?", filter.ConceptID.Bytes())
	}
	if filter.CareSettingID != nil {
		query = query.Where("care_setting_id = ?", filter.CareSettingID.Bytes())
	}
	if len(filter.OrderTypeIDs) > 0 {
		typeIDs := make([]uuid.UUID, 0, len(filter.OrderTypeIDs))
		for _, id := range filter.OrderTypeIDs {
			typeIDs = append(typeIDs, id.Bytes())
		}
		query = query.Where("order_type_id IN ?", typeIDs)
	}
	if !filter.IncludeVoided {
		query = query.Where("voided = false")
	}
	if filter.ExcludeDiscontinuations {
		query = query.Where("action != ?", order.ActionDiscontinue.String())
	}

	var dtos []OrderDTO
	if err := query.Order("start_date DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Stop sets the stop date on the order, but only while it is still current.
// The conditional update makes racing writers resolve to exactly one winner;
// losers receive a conflict error.
func (r *GormOrderRepository) Stop(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND date_stopped IS NULL AND voided = false", id.Bytes()).
		Update("date_stopped", at.UTC())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", id.String())
	}

	return nil
}

// HasDiscontinuation reports whether a non-voided discontinuation order
// already references the given order as its previous order.
func (r *GormOrderRepository) HasDiscontinuation(ctx context.Context, previousOrderID kernel.UUID) (bool, error) {
	if err := previousOrderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("previous_order_id = ? AND action = ? AND voided = false",
			previousOrderID.Bytes(), order.ActionDiscontinue.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Delete irreversibly removes the order. With cascade, dependent observations
// go with it; without it, the delete fails while dependents exist.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order, cascade bool) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rawID := aggregate.ID().Bytes()

	var dependents int64
	err := r.db.WithContext(ctx).
		Model(&ObservationDTO{}).
		Where("order_id = ?", rawID).
		Count(&dependents).Error
	if err != nil {
		return err
	}

	if dependents > 0 {
		if !cascade {
			return errs.NewDataIntegrityError("order has dependent observations")
		}
		err = r.db.WithContext(ctx).
			Where("order_id = ?", rawID).
			Delete(&ObservationDTO{}).Error
		if err != nil {
			return err
		}
	}

	result := r.db.WithContext(ctx).Where("id = ?", rawID).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return nil
}
