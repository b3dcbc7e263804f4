package reference

import (
	"errors"
	"fmt"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/pkg/errs"
)

// ErrCareSettingIsNotConstructed is returned when a CareSetting was not created
// through NewCareSetting or RestoreCareSetting.
var ErrCareSettingIsNotConstructed = errors.New("CareSetting must be created via NewCareSetting or RestoreCareSetting")

// SettingType distinguishes inpatient from outpatient care settings.
type SettingType int

const (
	SettingUnknown SettingType = iota
	SettingInpatient
	SettingOutpatient
)

// Validate checks if the SettingType value is valid.
func (s SettingType) Validate() error {
	if s != SettingInpatient && s != SettingOutpatient {
		return errs.NewValueIsInvalidErrorWithCause("settingType is invalid",
			fmt.Errorf("%d is not a valid setting type", s))
	}
	return nil
}

// String returns the human-readable name of the setting type.
func (s SettingType) String() string {
	switch s {
	case SettingInpatient:
		return "Inpatient"
	case SettingOutpatient:
		return "Outpatient"
	default:
		return "Unknown"
	}
}

// CareSetting is the context an order is placed in, such as an inpatient ward
// or an outpatient clinic. Orders resolve their care setting explicitly or
// through the order context's default.
type CareSetting struct {
	id            kernel.UUID
	name          string
	settingType   SettingType
	retired       bool
	retireReason  string
	isConstructed bool
}

// NewCareSetting creates a care setting with the given name and type.
func NewCareSetting(id kernel.UUID, name string, settingType SettingType) (*CareSetting, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := settingType.Validate(); err != nil {
		return nil, err
	}

	return &CareSetting{
		id:            id,
		name:          name,
		settingType:   settingType,
		isConstructed: true,
	}, nil
}

// RestoreCareSetting reconstructs a care setting from persistence.
func RestoreCareSetting(
	id kernel.UUID, name string, settingType SettingType, retired bool, retireReason string,
) (*CareSetting, error) {
	cs, err := NewCareSetting(id, name, settingType)
	if err != nil {
		return nil, err
	}
	cs.retired = retired
	cs.retireReason = retireReason
	return cs, nil
}

// Validate ensures the care setting was created through a factory function.
func (c *CareSetting) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCareSettingIsNotConstructed
	}
	return nil
}

// ID returns the care setting's unique identifier.
func (c *CareSetting) ID() kernel.UUID {
	return c.id
}

// Name returns the care setting's name.
func (c *CareSetting) Name() string {
	return c.name
}

// SettingType returns whether the setting is inpatient or outpatient.
func (c *CareSetting) SettingType() SettingType {
	return c.settingType
}

// IsRetired reports whether the care setting is retired.
func (c *CareSetting) IsRetired() bool {
	return c.retired
}

// RetireReason returns the reason recorded when the setting was retired.
func (c *CareSetting) RetireReason() string {
	return c.retireReason
}

// Retire marks the care setting retired. The reason is mandatory.
func (c *CareSetting) Retire(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("retireReason")
	}
	c.retired = true
	c.retireReason = reason
	return nil
}

// Unretire restores a previously retired care setting.
func (c *CareSetting) Unretire() {
	c.retired = false
	c.retireReason = ""
}
