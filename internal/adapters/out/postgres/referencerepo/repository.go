package referencerepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/reference"
	"clinicalorders/internal/pkg/errs"
)

// GormReferenceRepository implements ReferenceRepository using GORM.
type GormReferenceRepository struct {
	db *gorm.DB
}

// NewGormReferenceRepository creates a new GORM reference-data repository.
func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

// SaveOrderType creates or updates an order type along with its
// concept-class associations.
func (r *GormReferenceRepository) SaveOrderType(ctx context.Context, orderType *reference.OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	dto := orderTypeFromDomain(orderType)

	tx := r.db.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Omit("ConceptClasses").Create(&dto).Error; err != nil {
		return err
	}

	if err := tx.Where("order_type_id = ?", dto.ID).Delete(&OrderTypeConceptClassDTO{}).Error; err != nil {
		return err
	}
	if len(dto.ConceptClasses) > 0 {
		if err := tx.Create(&dto.ConceptClasses).Error; err != nil {
			return err
		}
	}

	return nil
}

// GetOrderType retrieves an order type by id.
// Returns (nil, nil) when no order type matches.
func (r *GormReferenceRepository) GetOrderType(ctx context.Context, id kernel.UUID) (*reference.OrderType, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderTypeDTO
	err := r.db.WithContext(ctx).
		Preload("ConceptClasses").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return orderTypeToDomain(dto)
}

// GetOrderTypeByName retrieves an order type by its exact name.
// Returns (nil, nil) when no order type matches.
func (r *GormReferenceRepository) GetOrderTypeByName(ctx context.Context, name string) (*reference.OrderType, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto OrderTypeDTO
	err := r.db.WithContext(ctx).
		Preload("ConceptClasses").
		First(&dto, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return orderTypeToDomain(dto)
}

// GetOrderTypes retrieves all order types, including retired ones when requested.
func (r *GormReferenceRepository) GetOrderTypes(
	ctx context.Context,
	includeRetired bool,
) ([]*reference.OrderType, error) {
	query := r.db.WithContext(ctx).Preload("ConceptClasses")
	if !includeRetired {
		query = query.Where("retired = false")
	}

	var dtos []OrderTypeDTO
	if err := query.Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return orderTypesToDomain(dtos)
}

// GetSubtypes retrieves all transitive descendants of the given order type.
// The type itself is not included in the result.
func (r *GormReferenceRepository) GetSubtypes(
	ctx context.Context,
	id kernel.UUID,
	includeRetired bool,
) ([]*reference.OrderType, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		WITH RECURSIVE subtypes AS (
			SELECT id FROM order_types WHERE parent_id = ?
			UNION ALL
			SELECT t.id FROM order_types t
			JOIN subtypes s ON t.parent_id = s.id
		)
		SELECT id FROM subtypes
	`, id.Bytes()).Scan(&ids).Error
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*reference.OrderType{}, nil
	}

	query := r.db.WithContext(ctx).Preload("ConceptClasses").Where("id IN ?", ids)
	if !includeRetired {
		query = query.Where("retired = false")
	}

	var dtos []OrderTypeDTO
	if err = query.Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return orderTypesToDomain(dtos)
}

// OrderTypeForConcept resolves the order type mapped to the concept's class.
// Returns (nil, nil) when the concept has no mapping.
func (r *GormReferenceRepository) OrderTypeForConcept(
	ctx context.Context,
	conceptID kernel.UUID,
) (*reference.OrderType, error) {
	if err := conceptID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderTypeDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT ot.*
		FROM order_types ot
		JOIN order_type_concept_classes m ON m.order_type_id = ot.id
		JOIN concept_class_members c ON c.concept_class_id = m.concept_class_id
		WHERE c.concept_id = ? AND ot.retired = false
		ORDER BY ot.name
		LIMIT 1
	`, conceptID.Bytes()).Scan(&dto).Error
	if err != nil {
		return nil, err
	}

	if dto.ID == uuid.Nil {
		return nil, nil
	}

	return orderTypeToDomain(dto)
}

// PurgeOrderType irreversibly removes an order type.
// Fails while orders or subtypes reference it.
func (r *GormReferenceRepository) PurgeOrderType(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	rawID := id.Bytes()
	tx := r.db.WithContext(ctx)

	var subtypes int64
	if err := tx.Model(&OrderTypeDTO{}).Where("parent_id = ?", rawID).Count(&subtypes).Error; err != nil {
		return err
	}
	if subtypes > 0 {
		return errs.NewDataIntegrityError("order type has subtypes")
	}

	var inUse int64
	if err := tx.Table("orders").Where("order_type_id = ?", rawID).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return errs.NewDataIntegrityError("order type is referenced by orders")
	}

	if err := tx.Where("order_type_id = ?", rawID).Delete(&OrderTypeConceptClassDTO{}).Error; err != nil {
		return err
	}

	result := tx.Where("id = ?", rawID).Delete(&OrderTypeDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderType", id.String())
	}

	return nil
}

// SaveCareSetting creates or updates a care setting.
func (r *GormReferenceRepository) SaveCareSetting(ctx context.Context, careSetting *reference.CareSetting) error {
	if err := careSetting.Validate(); err != nil {
		return err
	}

	dto := careSettingFromDomain(careSetting)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}

// GetCareSetting retrieves a care setting by id.
// Returns (nil, nil) when no care setting matches.
func (r *GormReferenceRepository) GetCareSetting(ctx context.Context, id kernel.UUID) (*reference.CareSetting, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CareSettingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return careSettingToDomain(dto)
}

// GetCareSettingByName retrieves a care setting by its exact name.
// Returns (nil, nil) when no care setting matches.
func (r *GormReferenceRepository) GetCareSettingByName(
	ctx context.Context,
	name string,
) (*reference.CareSetting, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto CareSettingDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return careSettingToDomain(dto)
}

// GetCareSettings retrieves all care settings, including retired ones when requested.
func (r *GormReferenceRepository) GetCareSettings(
	ctx context.Context,
	includeRetired bool,
) ([]*reference.CareSetting, error) {
	query := r.db.WithContext(ctx)
	if !includeRetired {
		query = query.Where("retired = false")
	}

	var dtos []CareSettingDTO
	if err := query.Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	settings := make([]*reference.CareSetting, 0, len(dtos))
	for _, dto := range dtos {
		setting, err := careSettingToDomain(dto)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	return settings, nil
}

// SaveOrderFrequency creates or updates an order frequency.
// Editing a frequency already referenced by orders is rejected.
func (r *GormReferenceRepository) SaveOrderFrequency(
	ctx context.Context,
	frequency *reference.OrderFrequency,
) error {
	if err := frequency.Validate(); err != nil {
		return err
	}

	dto := frequencyFromDomain(frequency)
	tx := r.db.WithContext(ctx)

	var existing int64
	if err := tx.Model(&OrderFrequencyDTO{}).Where("id = ?", dto.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		var inUse int64
		if err := tx.Table("orders").Where("frequency_id = ?", dto.ID).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return errs.NewIllegalTransitionError("an order frequency referenced by orders cannot be edited")
		}
	}

	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}

// GetOrderFrequency retrieves an order frequency by id.
// Returns (nil, nil) when no frequency matches.
func (r *GormReferenceRepository) GetOrderFrequency(
	ctx context.Context,
	id kernel.UUID,
) (*reference.OrderFrequency, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderFrequencyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return frequencyToDomain(dto)
}

// GetOrderFrequencyByConcept retrieves the frequency backed by the given concept.
// Returns (nil, nil) when no frequency matches.
func (r *GormReferenceRepository) GetOrderFrequencyByConcept(
	ctx context.Context,
	conceptID kernel.UUID,
) (*reference.OrderFrequency, error) {
	if err := conceptID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderFrequencyDTO
	if err := r.db.WithContext(ctx).First(&dto, "concept_id = ?", conceptID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return frequencyToDomain(dto)
}

// GetOrderFrequencies retrieves all frequencies, including retired ones when requested.
func (r *GormReferenceRepository) GetOrderFrequencies(
	ctx context.Context,
	includeRetired bool,
) ([]*reference.OrderFrequency, error) {
	query := r.db.WithContext(ctx)
	if !includeRetired {
		query = query.Where("retired = false")
	}

	var dtos []OrderFrequencyDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	frequencies := make([]*reference.OrderFrequency, 0, len(dtos))
	for _, dto := range dtos {
		frequency, err := frequencyToDomain(dto)
		if err != nil {
			return nil, err
		}
		frequencies = append(frequencies, frequency)
	}

	return frequencies, nil
}

// PurgeOrderFrequency irreversibly removes a frequency.
// Fails while orders reference it.
func (r *GormReferenceRepository) PurgeOrderFrequency(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	rawID := id.Bytes()
	tx := r.db.WithContext(ctx)

	var inUse int64
	if err := tx.Table("orders").Where("frequency_id = ?", rawID).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return errs.NewDataIntegrityError("order frequency is referenced by orders")
	}

	result := tx.Where("id = ?", rawID).Delete(&OrderFrequencyDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderFrequency", id.String())
	}

	return nil
}

func orderTypesToDomain(dtos []OrderTypeDTO) ([]*reference.OrderType, error) {
	types := make([]*reference.OrderType, 0, len(dtos))
	for _, dto := range dtos {
		orderType, err := orderTypeToDomain(dto)
		if err != nil {
			return nil, err
		}
		types = append(types, orderType)
	}
	return types, nil
}
