// Package referencerepo persists the lookup entities orders refer to:
// order types with their parent hierarchy and concept-class associations,
// care settings, and order frequencies.
package referencerepo

import (
	"github.com/google/uuid"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/reference"
)

// OrderTypeDTO represents the database structure for order types.
type OrderTypeDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"uniqueIndex"`
	Description  string
	ParentID     *uuid.UUID `gorm:"type:uuid;index"`
	Retired      bool
	RetireReason string

	ConceptClasses []OrderTypeConceptClassDTO `gorm:"foreignKey:OrderTypeID"`
}

// TableName specifies the database table name for order types.
func (OrderTypeDTO) TableName() string {
	return "order_types"
}

// OrderTypeConceptClassDTO associates an order type with a concept class.
// The lifecycle engine resolves an order's default type through this mapping.
type OrderTypeConceptClassDTO struct {
	OrderTypeID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConceptClassID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for the type/class mapping.
func (OrderTypeConceptClassDTO) TableName() string {
	return "order_type_concept_classes"
}

// ConceptClassMemberDTO records which concept class a concept belongs to.
// The concept dictionary itself lives outside this system; this projection is
// loaded alongside the reference data.
type ConceptClassMemberDTO struct {
	ConceptID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConceptClassID uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for concept class membership.
func (ConceptClassMemberDTO) TableName() string {
	return "concept_class_members"
}

// CareSettingDTO represents the database structure for care settings.
type CareSettingDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"uniqueIndex"`
	SettingType  int
	Retired      bool
	RetireReason string
}

// TableName specifies the database table name for care settings.
func (CareSettingDTO) TableName() string {
	return "care_settings"
}

// OrderFrequencyDTO represents the database structure for order frequencies.
type OrderFrequencyDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConceptID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	FrequencyPerDay float64
	Retired         bool
	RetireReason    string
}

// TableName specifies the database table name for order frequencies.
func (OrderFrequencyDTO) TableName() string {
	return "order_frequencies"
}

func orderTypeFromDomain(orderType *reference.OrderType) OrderTypeDTO {
	var parentID *uuid.UUID
	if id := orderType.ParentID(); id != nil {
		raw := id.Bytes()
		parentID = &raw
	}

	classes := make([]OrderTypeConceptClassDTO, 0, len(orderType.ConceptClasses()))
	for _, classID := range orderType.ConceptClasses() {
		classes = append(classes, OrderTypeConceptClassDTO{
			OrderTypeID:    orderType.ID().Bytes(),
			ConceptClassID: classID.Bytes(),
		})
	}

	return OrderTypeDTO{
		ID:             orderType.ID().Bytes(),
		Name:           orderType.Name(),
		Description:    orderType.Description(),
		ParentID:       parentID,
		Retired:        orderType.IsRetired(),
		RetireReason:   orderType.RetireReason(),
		ConceptClasses: classes,
	}
}

func orderTypeToDomain(dto OrderTypeDTO) (*reference.OrderType, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		pid, parentErr := kernel.UUIDFromBytes((*dto.ParentID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pid
	}

	classes := make([]kernel.UUID, 0, len(dto.ConceptClasses))
	for _, class := range dto.ConceptClasses {
		classID, classErr := kernel.UUIDFromBytes(class.ConceptClassID[:])
		if classErr != nil {
			return nil, classErr
		}
		classes = append(classes, classID)
	}

	return reference.RestoreOrderType(id, dto.Name, dto.Description, parentID, classes, dto.Retired, dto.RetireReason)
}

func careSettingFromDomain(careSetting *reference.CareSetting) CareSettingDTO {
	return CareSettingDTO{
		ID:           careSetting.ID().Bytes(),
		Name:         careSetting.Name(),
		SettingType:  int(careSetting.SettingType()),
		Retired:      careSetting.IsRetired(),
		RetireReason: careSetting.RetireReason(),
	}
}

func careSettingToDomain(dto CareSettingDTO) (*reference.CareSetting, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return reference.RestoreCareSetting(
		id, dto.Name, reference.SettingType(dto.SettingType), dto.Retired, dto.RetireReason,
	)
}

func frequencyFromDomain(frequency *reference.OrderFrequency) OrderFrequencyDTO {
	return OrderFrequencyDTO{
		ID:              frequency.ID().Bytes(),
		ConceptID:       frequency.ConceptID().Bytes(),
		FrequencyPerDay: frequency.FrequencyPerDay(),
		Retired:         frequency.IsRetired(),
		RetireReason:    frequency.RetireReason(),
	}
}

func frequencyToDomain(dto OrderFrequencyDTO) (*reference.OrderFrequency, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	conceptID, err := kernel.UUIDFromBytes(dto.ConceptID[:])
	if err != nil {
		return nil, err
	}

	return reference.RestoreOrderFrequency(id, conceptID, dto.FrequencyPerDay, dto.Retired, dto.RetireReason)
}
