package order

import (
	"errors"
	"time"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderNumberAlreadyAssigned is returned when assigning an order number to an
	// order that already carries one. Order numbers are immutable once assigned.
	ErrOrderNumberAlreadyAssigned = errors.New("order number is immutable once assigned")
)

// Order represents a clinical order placed against a patient. It is the
// aggregate root managing the order's identity, clinical references, lineage
// links, and temporal lifecycle.
//
// Order follows these invariants:
//   - Must have a valid identifier, patient, concept, orderer, action, kind,
//     and start date
//   - A drug-kind order must carry a drug reference
//   - A Revise or Discontinue order must reference a previous order
//   - The order number, once assigned, never changes
//   - Voiding requires a reason; unvoiding clears void metadata but leaves a
//     stop date imposed by a later order untouched
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; corrections to
// persisted orders happen by creating a Revise order, never by mutating the
// original row.
type Order struct {
	// id is the externally stable unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-facing unique number; empty until allocated at save time
	orderNumber string

	// patientID references the patient the order is placed against
	patientID kernel.UUID

	// conceptID references what is ordered
	conceptID kernel.UUID

	// kind is the clinical subtype tag driving revise-matching rules
	kind Kind

	// drugID is the drug reference; required when kind is KindDrug, nil otherwise
	drugID *kernel.UUID

	// orderTypeID is the effective order type; resolved before persistence, never nil after save
	orderTypeID *kernel.UUID

	// careSettingID is the effective care setting; resolved before persistence
	careSettingID *kernel.UUID

	// frequencyID optionally references an order frequency
	frequencyID *kernel.UUID

	// action is the lineage role of this order (New, Revise, Discontinue)
	action Action

	// previousOrderID references the order this one revises or discontinues.
	// It is a back-reference for lookup, never an ownership relation.
	previousOrderID *kernel.UUID

	// ordererID references the provider who placed the order
	ordererID kernel.UUID

	// encounterID optionally references the encounter the order was placed in
	encounterID *kernel.UUID

	// orderReasonCodedID and orderReason carry the coded and free-text reason,
	// populated for discontinuation orders
	orderReasonCodedID *kernel.UUID
	orderReason        string

	// startDate is the instant the order takes effect
	startDate time.Time

	// dateActivated records when the order was entered
	dateActivated time.Time

	// dateStopped is set when a later order stops this one; nil until then
	dateStopped *time.Time

	// autoExpireDate is the planned natural expiry; nil for open-ended orders
	autoExpireDate *time.Time

	// void metadata
	voided     bool
	voidReason string
	voidedByID *kernel.UUID
	dateVoided *time.Time

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new Order draft with validation. This is the only way to
// create a valid order for the save path; persistence-side rehydration goes
// through RestoreOrder.
//
// Parameters:
//   - id: unique identifier for the order
//   - patientID: the patient the order is placed against
//   - conceptID: what is being ordered
//   - ordererID: the provider placing the order
//   - action: lineage role (New, Revise, Discontinue)
//   - kind: clinical subtype; drug-kind orders must also supply drugID
//   - drugID: the drug reference for drug-kind orders, nil otherwise
//   - startDate: when the order takes effect
//
// The optional attributes (previous order, encounter, frequency, auto-expiry,
// reasons, resolved type and care setting) are set through the dedicated
// setters before the order is handed to the lifecycle engine.
func NewOrder(
	id, patientID, conceptID, ordererID kernel.UUID,
	action Action,
	kind Kind,
	drugID *kernel.UUID,
	startDate time.Time,
) (*Order, error) {
	o := &Order{
		action:        action,
		kind:          kind,
		dateActivated: time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPatientID(patientID),
		o.setConceptID(conceptID),
		o.setOrdererID(ordererID),
		action.Validate(),
		kind.Validate(),
		o.setDrugID(kind, drugID),
		o.setStartDate(startDate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the full flattened state of an order, used to rehydrate
// aggregates from persistence and to map them back into storage rows.
type Snapshot struct {
	ID                 kernel.UUID
	OrderNumber        string
	PatientID          kernel.UUID
	ConceptID          kernel.UUID
	Kind               Kind
	DrugID             *kernel.UUID
	OrderTypeID        *kernel.UUID
	CareSettingID      *kernel.UUID
	FrequencyID        *kernel.UUID
	Action             Action
	PreviousOrderID    *kernel.UUID
	OrdererID          kernel.UUID
	EncounterID        *kernel.UUID
	OrderReasonCodedID *kernel.UUID
	OrderReason        string
	StartDate          time.Time
	DateActivated      time.Time
	DateStopped        *time.Time
	AutoExpireDate     *time.Time
	Voided             bool
	VoidReason         string
	VoidedByID         *kernel.UUID
	DateVoided         *time.Time
}

// RestoreOrder reconstructs an order from its persisted snapshot.
// Unlike NewOrder it accepts already-stopped, voided, and numbered orders,
// but it still rejects snapshots violating structural invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		orderNumber:        s.OrderNumber,
		kind:               s.Kind,
		orderTypeID:        s.OrderTypeID,
		careSettingID:      s.CareSettingID,
		frequencyID:        s.FrequencyID,
		action:             s.Action,
		previousOrderID:    s.PreviousOrderID,
		encounterID:        s.EncounterID,
		orderReasonCodedID: s.OrderReasonCodedID,
		orderReason:        s.OrderReason,
		dateActivated:      s.DateActivated,
		dateStopped:        s.DateStopped,
		autoExpireDate:     s.AutoExpireDate,
		voided:             s.Voided,
		voidReason:         s.VoidReason,
		voidedByID:         s.VoidedByID,
		dateVoided:         s.DateVoided,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setPatientID(s.PatientID),
		o.setConceptID(s.ConceptID),
		o.setOrdererID(s.OrdererID),
		s.Action.Validate(),
		s.Kind.Validate(),
		o.setDrugID(s.Kind, s.DrugID),
		o.setStartDate(s.StartDate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot returns the flattened state of the order for persistence mapping.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                 o.id,
		OrderNumber:        o.orderNumber,
		PatientID:          o.patientID,
		ConceptID:          o.conceptID,
		Kind:               o.kind,
		DrugID:             o.drugID,
		OrderTypeID:        o.orderTypeID,
		CareSettingID:      o.careSettingID,
		FrequencyID:        o.frequencyID,
		Action:             o.action,
		PreviousOrderID:    o.previousOrderID,
		OrdererID:          o.ordererID,
		EncounterID:        o.encounterID,
		OrderReasonCodedID: o.orderReasonCodedID,
		OrderReason:        o.orderReason,
		StartDate:          o.startDate,
		DateActivated:      o.dateActivated,
		DateStopped:        o.dateStopped,
		AutoExpireDate:     o.autoExpireDate,
		Voided:             o.voided,
		VoidReason:         o.voidReason,
		VoidedByID:         o.voidedByID,
		DateVoided:         o.dateVoided,
	}
}

// Validate ensures the Order instance was properly constructed through a factory function.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order number, or "" if not yet assigned.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// PatientID returns the patient the order is placed against.
func (o *Order) PatientID() kernel.UUID {
	return o.patientID
}

// ConceptID returns the concept being ordered.
func (o *Order) ConceptID() kernel.UUID {
	return o.conceptID
}

// Kind returns the clinical subtype tag of the order.
func (o *Order) Kind() Kind {
	return o.kind
}

// DrugID returns the drug reference for drug-kind orders, nil otherwise.
func (o *Order) DrugID() *kernel.UUID {
	return o.drugID
}

// OrderTypeID returns the effective order type, nil until resolved.
func (o *Order) OrderTypeID() *kernel.UUID {
	return o.orderTypeID
}

// CareSettingID returns the effective care setting, nil until resolved.
func (o *Order) CareSettingID() *kernel.UUID {
	return o.careSettingID
}

// FrequencyID returns the optional order frequency reference.
func (o *Order) FrequencyID() *kernel.UUID {
	return o.frequencyID
}

// Action returns the lineage role of the order.
func (o *Order) Action() Action {
	return o.action
}

// PreviousOrderID returns the order this one revises or discontinues, nil for ActionNew.
func (o *Order) PreviousOrderID() *kernel.UUID {
	return o.previousOrderID
}

// OrdererID returns the provider who placed the order.
func (o *Order) OrdererID() kernel.UUID {
	return o.ordererID
}

// EncounterID returns the optional encounter reference.
func (o *Order) EncounterID() *kernel.UUID {
	return o.encounterID
}

// OrderReasonCodedID returns the coded reason reference, nil when absent.
func (o *Order) OrderReasonCodedID() *kernel.UUID {
	return o.orderReasonCodedID
}

// OrderReason returns the free-text reason, "" when absent.
func (o *Order) OrderReason() string {
	return o.orderReason
}

// StartDate returns the instant the order takes effect.
func (o *Order) StartDate() time.Time {
	return o.startDate
}

// DateActivated returns when the order was entered.
func (o *Order) DateActivated() time.Time {
	return o.dateActivated
}

// DateStopped returns the stop date imposed by a later order, nil while unstopped.
func (o *Order) DateStopped() *time.Time {
	return o.dateStopped
}

// AutoExpireDate returns the planned natural expiry, nil for open-ended orders.
func (o *Order) AutoExpireDate() *time.Time {
	return o.autoExpireDate
}

// IsVoided reports whether the order is currently voided.
func (o *Order) IsVoided() bool {
	return o.voided
}

// VoidReason returns the reason recorded at void time.
func (o *Order) VoidReason() string {
	return o.voidReason
}

// VoidedByID returns who voided the order, nil while unvoided.
func (o *Order) VoidedByID() *kernel.UUID {
	return o.voidedByID
}

// DateVoided returns when the order was voided, nil while unvoided.
func (o *Order) DateVoided() *time.Time {
	return o.dateVoided
}

// IsStopped reports whether a later order has stopped this one.
func (o *Order) IsStopped() bool {
	return o.dateStopped != nil
}

// IsExpiredAsOf reports whether the order's auto-expiry date has passed as of
// the given instant. Orders without an auto-expiry date never expire.
func (o *Order) IsExpiredAsOf(asOf time.Time) bool {
	return o.autoExpireDate != nil && !o.autoExpireDate.After(asOf)
}

// SetPreviousOrder records the order this one revises or discontinues.
// Only meaningful for Revise and Discontinue actions.
func (o *Order) SetPreviousOrder(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.previousOrderID = &id
	return nil
}

// SetEncounter records the encounter the order was placed in.
func (o *Order) SetEncounter(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.encounterID = &id
	return nil
}

// SetFrequency records the order frequency reference.
func (o *Order) SetFrequency(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.frequencyID = &id
	return nil
}

// SetAutoExpireDate records the planned natural expiry of the order.
func (o *Order) SetAutoExpireDate(t time.Time) {
	utc := t.UTC()
	o.autoExpireDate = &utc
}

// SetOrderReason records the coded and/or free-text reason for the order.
// Either part may be absent; discontinuation orders carry at least one.
func (o *Order) SetOrderReason(codedID *kernel.UUID, text string) {
	o.orderReasonCodedID = codedID
	o.orderReason = text
}

// ResolveOrderType sets the effective order type. Called by the lifecycle
// engine after resolution; an order must have a non-nil type before persistence.
func (o *Order) ResolveOrderType(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.orderTypeID = &id
	return nil
}

// ResolveCareSetting sets the effective care setting. Called by the lifecycle
// engine after resolution.
func (o *Order) ResolveCareSetting(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.careSettingID = &id
	return nil
}

// AssignOrderNumber assigns the unique human-facing order number.
// Returns ErrOrderNumberAlreadyAssigned if the order already carries one:
// order numbers are immutable once assigned.
func (o *Order) AssignOrderNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if o.orderNumber != "" {
		return ErrOrderNumberAlreadyAssigned
	}
	o.orderNumber = number
	return nil
}

// MarkStopped records that a later order stopped this one at the given instant.
// Rejects voided and already-stopped orders; the first stop date is authoritative.
func (o *Order) MarkStopped(at time.Time) error {
	if o.voided {
		return errs.NewIllegalTransitionError("cannot stop a voided order")
	}
	if o.dateStopped != nil {
		return errs.NewIllegalTransitionError("order is already stopped")
	}
	utc := at.UTC()
	o.dateStopped = &utc
	return nil
}

// Void marks the order as voided. The reason is mandatory.
// Voiding is reversible via Unvoid; purging is the only irreversible removal.
func (o *Order) Void(reason string, by kernel.UUID, at time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("voidReason")
	}
	if err := by.Validate(); err != nil {
		return err
	}
	utc := at.UTC()
	o.voided = true
	o.voidReason = reason
	o.voidedByID = &by
	o.dateVoided = &utc
	return nil
}

// Unvoid reverses a previous Void, clearing the void metadata.
// It does not re-derive stop dates imposed by other orders in the interim;
// those remain authoritative.
func (o *Order) Unvoid() {
	o.voided = false
	o.voidReason = ""
	o.voidedByID = nil
	o.dateVoided = nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPatientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("patient", err)
	}
	o.patientID = id
	return nil
}

func (o *Order) setConceptID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("concept", err)
	}
	o.conceptID = id
	return nil
}

func (o *Order) setOrdererID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderer", err)
	}
	o.ordererID = id
	return nil
}

func (o *Order) setDrugID(kind Kind, drugID *kernel.UUID) error {
	if kind == KindDrug {
		if drugID == nil {
			return errs.NewValueIsRequiredError("drug is required for drug orders")
		}
		if err := drugID.Validate(); err != nil {
			return err
		}
	}
	o.drugID = drugID
	return nil
}

func (o *Order) setStartDate(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("startDate")
	}
	o.startDate = t.UTC()
	return nil
}
