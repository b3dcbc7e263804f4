// Package queries contains read-only operations implementing the query side
// of the CQRS architecture. Handlers read directly from the database with raw
// SQL and map rows into read models; the temporal activity rule is applied
// through the domain model so the read side never re-implements it.
package queries

import (
	"time"

	"github.com/google/uuid"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
)

// orderRow mirrors the orders table for raw SQL scans.
type orderRow struct {
	ID                 uuid.UUID
	OrderNumber        string
	PatientID          uuid.UUID
	ConceptID          uuid.UUID
	Kind               string
	DrugID             *uuid.UUID
	OrderTypeID        *uuid.UUID
	CareSettingID      *uuid.UUID
	FrequencyID        *uuid.UUID
	Action             string
	PreviousOrderID    *uuid.UUID
	OrdererID          uuid.UUID
	EncounterID        *uuid.UUID
	OrderReasonCodedID *uuid.UUID
	OrderReason        string
	StartDate          time.Time
	DateActivated      time.Time
	DateStopped        *time.Time
	AutoExpireDate     *time.Time
	Voided             bool
	VoidReason         string
	VoidedByID         *uuid.UUID
	DateVoided         *time.Time
}

// OrderResponse is the read model returned by the order queries.
type OrderResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	PatientID       kernel.UUID
	ConceptID       kernel.UUID
	Kind            order.Kind
	DrugID          *kernel.UUID
	OrderTypeID     *kernel.UUID
	CareSettingID   *kernel.UUID
	FrequencyID     *kernel.UUID
	Action          order.Action
	PreviousOrderID *kernel.UUID
	OrdererID       kernel.UUID
	OrderReason     string
	StartDate       time.Time
	DateStopped     *time.Time
	AutoExpireDate  *time.Time
	Voided          bool
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

func utcOptional(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// rowToOrder rehydrates the domain aggregate from a scanned row. Queries that
// apply the temporal activity rule go through the aggregate rather than
// duplicating the algorithm in SQL.
func rowToOrder(row orderRow) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	patientID, err := kernel.UUIDFromBytes(row.PatientID[:])
	if err != nil {
		return nil, err
	}
	conceptID, err := kernel.UUIDFromBytes(row.ConceptID[:])
	if err != nil {
		return nil, err
	}
	ordererID, err := kernel.UUIDFromBytes(row.OrdererID[:])
	if err != nil {
		return nil, err
	}

	kind, err := order.KindFromString(row.Kind)
	if err != nil {
		return nil, err
	}
	action, err := order.ActionFromString(row.Action)
	if err != nil {
		return nil, err
	}

	drugID, err := optionalKernelUUID(row.DrugID)
	if err != nil {
		return nil, err
	}
	orderTypeID, err := optionalKernelUUID(row.OrderTypeID)
	if err != nil {
		return nil, err
	}
	careSettingID, err := optionalKernelUUID(row.CareSettingID)
	if err != nil {
		return nil, err
	}
	frequencyID, err := optionalKernelUUID(row.FrequencyID)
	if err != nil {
		return nil, err
	}
	previousOrderID, err := optionalKernelUUID(row.PreviousOrderID)
	if err != nil {
		return nil, err
	}
	encounterID, err := optionalKernelUUID(row.EncounterID)
	if err != nil {
		return nil, err
	}
	orderReasonCodedID, err := optionalKernelUUID(row.OrderReasonCodedID)
	if err != nil {
		return nil, err
	}
	voidedByID, err := optionalKernelUUID(row.VoidedByID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                 id,
		OrderNumber:        row.OrderNumber,
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
		OrderReason:        row.OrderReason,
		StartDate:          row.StartDate.UTC(),
		DateActivated:      row.DateActivated.UTC(),
		DateStopped:        utcOptional(row.DateStopped),
		AutoExpireDate:     utcOptional(row.AutoExpireDate),
		Voided:             row.Voided,
		VoidReason:         row.VoidReason,
		VoidedByID:         voidedByID,
		DateVoided:         utcOptional(row.DateVoided),
	})
}

// orderToResponse flattens an aggregate into the query read model.
func orderToResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID(),
		OrderNumber:     o.OrderNumber(),
		PatientID:       o.PatientID(),
		ConceptID:       o.ConceptID(),
		Kind:            o.Kind(),
		DrugID:          o.DrugID(),
		OrderTypeID:     o.OrderTypeID(),
		CareSettingID:   o.CareSettingID(),
		FrequencyID:     o.FrequencyID(),
		Action:          o.Action(),
		PreviousOrderID: o.PreviousOrderID(),
		OrdererID:       o.OrdererID(),
		OrderReason:     o.OrderReason(),
		StartDate:       o.StartDate(),
		DateStopped:     o.DateStopped(),
		AutoExpireDate:  o.AutoExpireDate(),
		Voided:          o.IsVoided(),
	}
}
