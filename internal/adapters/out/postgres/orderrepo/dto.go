// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number carries a unique index: it is the system-wide human-facing
// identity and the final arbiter against duplicate allocation. Patient and
// previous-order columns are indexed for listing and lineage walks.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber        string     `gorm:"uniqueIndex"`
	PatientID          uuid.UUID  `gorm:"type:uuid;index"`
	ConceptID          uuid.UUID  `gorm:"type:uuid;index"`
	Kind               string     `gorm:"type:varchar(16)"`
	DrugID             *uuid.UUID `gorm:"type:uuid"`
	OrderTypeID        *uuid.UUID `gorm:"type:uuid;index"`
	CareSettingID      *uuid.UUID `gorm:"type:uuid"`
	FrequencyID        *uuid.UUID `gorm:"type:uuid"`
	Action             string     `gorm:"type:varchar(16)"`
	PreviousOrderID    *uuid.UUID `gorm:"type:uuid;index"`
	OrdererID          uuid.UUID  `gorm:"type:uuid"`
	EncounterID        *uuid.UUID `gorm:"type:uuid"`
	OrderReasonCodedID *uuid.UUID `gorm:"type:uuid"`
	OrderReason        string
	StartDate          time.Time
	DateActivated      time.Time
	DateStopped        *time.Time
	AutoExpireDate     *time.Time
	Voided             bool `gorm:"index"`
	VoidReason         string
	VoidedByID         *uuid.UUID `gorm:"type:uuid"`
	DateVoided         *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ObservationDTO represents a clinical observation referencing an order.
// Observations block a non-cascading purge of their order.
type ObservationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ConceptID   uuid.UUID `gorm:"type:uuid"`
	Value       string
	ObsDatetime time.Time
}

// TableName specifies the database table name for observation entities.
func (ObservationDTO) TableName() string {
	return "observations"
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	kid, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &kid, nil
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	return OrderDTO{
		ID:                 s.ID.Bytes(),
		OrderNumber:        s.OrderNumber,
		PatientID:          s.PatientID.Bytes(),
		ConceptID:          s.ConceptID.Bytes(),
		Kind:               s.Kind.String(),
		DrugID:             optionalUUID(s.DrugID),
		OrderTypeID:        optionalUUID(s.OrderTypeID),
		CareSettingID:      optionalUUID(s.CareSettingID),
		FrequencyID:        optionalUUID(s.FrequencyID),
		Action:             s.Action.String(),
		PreviousOrderID:    optionalUUID(s.PreviousOrderID),
		OrdererID:          s.OrdererID.Bytes(),
		EncounterID:        optionalUUID(s.EncounterID),
		OrderReasonCodedID: optionalUUID(s.OrderReasonCodedID),
		OrderReason:        s.OrderReason,
		StartDate:          s.StartDate,
		DateActivated:      s.DateActivated,
		DateStopped:        s.DateStopped,
		AutoExpireDate:     s.AutoExpireDate,
		Voided:             s.Voided,
		VoidReason:         s.VoidReason,
		VoidedByID:         optionalUUID(s.VoidedByID),
		DateVoided:         s.DateVoided,
	}
}

// toDomain converts a database DTO back into an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	patientID, err := kernel.UUIDFromBytes(dto.PatientID[:])
	if err != nil {
		return nil, err
	}
	conceptID, err := kernel.UUIDFromBytes(dto.ConceptID[:])
	if err != nil {
		return nil, err
	}
	ordererID, err := kernel.UUIDFromBytes(dto.OrdererID[:])
	if err != nil {
		return nil, err
	}

	kind, err := order.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}
	action, err := order.ActionFromString(dto.Action)
	if err != nil {
		return nil, err
	}

	drugID, err := optionalKernelUUID(dto.DrugID)
	if err != nil {
		return nil, err
	}
	orderTypeID, err := optionalKernelUUID(dto.OrderTypeID)
	if err != nil {
		return nil, err
	}
	careSettingID, err := optionalKernelUUID(dto.CareSettingID)
	if err != nil {
		return nil, err
	}
	frequencyID, err := optionalKernelUUID(dto.FrequencyID)
	if err != nil {
		return nil, err
	}
	previousOrderID, err := optionalKernelUUID(dto.PreviousOrderID)
	if err != nil {
		return nil, err
	}
	encounterID, err := optionalKernelUUID(dto.EncounterID)
	if err != nil {
		return nil, err
	}
	orderReasonCodedID, err := optionalKernelUUID(dto.OrderReasonCodedID)
	if err != nil {
		return nil, err
	}
	voidedByID, err := optionalKernelUUID(dto.VoidedByID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                 id,
		OrderNumber:        dto.OrderNumber,
		PatientID:          patientID,
		ConceptID:          conceptID,
		Kind:               kind,
		DrugID:             drugID,
		OrderTypeID:        orderTypeID,
		CareSettingID:      careSettingID,
		FrequencyID:        frequencyID,
		Action:             action,
		PreviousOrderID:    previousOrderID,
		OrdererID:          ordererID,
		EncounterID:        encounterID,
		OrderReasonCodedID: orderReasonCodedID,
		OrderReason:        dto.OrderReason,
		StartDate:          dto.StartDate.UTC(),
		DateActivated:      dto.DateActivated.UTC(),
		DateStopped:        utcOptional(dto.DateStopped),
		AutoExpireDate:     utcOptional(dto.AutoExpireDate),
		Voided:             dto.Voided,
		VoidReason:         dto.VoidReason,
		VoidedByID:         voidedByID,
		DateVoided:         utcOptional(dto.DateVoided),
	})
}

func utcOptional(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
