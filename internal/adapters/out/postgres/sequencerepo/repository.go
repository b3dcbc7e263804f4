// Package sequencerepo persists the single-row seed sequence behind the
// default order number generator.
package sequencerepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"clinicalorders/internal/pkg/errs"
)

// sequenceRowID is the fixed identity of the only row in the sequence table.
const sequenceRowID = 1

// SequenceDTO is the single persisted row holding the order number seed.
type SequenceDTO struct {
	ID        int `gorm:"primaryKey"`
	NextValue int64
}

// TableName specifies the database table name for the seed sequence.
func (SequenceDTO) TableName() string {
	return "order_number_sequence"
}

// GormOrderNumberSequence implements the seed sequence on top of a single
// database row. NextValue increments atomically via UPDATE ... RETURNING, so
// concurrent transactions never observe the same value.
type GormOrderNumberSequence struct {
	db *gorm.DB
}

// NewGormOrderNumberSequence creates a sequence backed by the given database.
func NewGormOrderNumberSequence(db *gorm.DB) *GormOrderNumberSequence {
	return &GormOrderNumberSequence{db: db}
}

// Seed ensures the sequence row exists, starting at zero. Safe to call on
// every startup.
func (s *GormOrderNumberSequence) Seed(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO order_number_sequence (id, next_value)
		VALUES (?, 0)
		ON CONFLICT (id) DO NOTHING
	`, sequenceRowID).Error
}

// NextValue atomically increments the sequence and returns the new value.
func (s *GormOrderNumberSequence) NextValue(ctx context.Context) (int64, error) {
	var value int64
	err := s.db.WithContext(ctx).Raw(`
		UPDATE order_number_sequence
		SET next_value = next_value + 1
		WHERE id = ?
		RETURNING next_value
	`, sequenceRowID).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	if value == 0 {
		return 0, errs.NewDataIntegrityError("order number sequence row is missing")
	}

	return value, nil
}

// CurrentValue returns the sequence's current value without incrementing.
func (s *GormOrderNumberSequence) CurrentValue(ctx context.Context) (int64, error) {
	var dto SequenceDTO
	if err := s.db.WithContext(ctx).First(&dto, "id = ?", sequenceRowID).Error; err != nil {
		return 0, err
	}

	return dto.NextValue, nil
}

// SequentialOrderNumberGenerator formats the shared sequence's next value as
// the default human-facing order number.
type SequentialOrderNumberGenerator struct {
	sequence *GormOrderNumberSequence
}

// NewSequentialOrderNumberGenerator creates the default generator over the
// given sequence.
func NewSequentialOrderNumberGenerator(sequence *GormOrderNumberSequence) *SequentialOrderNumberGenerator {
	return &SequentialOrderNumberGenerator{sequence: sequence}
}

// NextOrderNumber returns the next order number in the form "ORD-<n>".
func (g *SequentialOrderNumberGenerator) NextOrderNumber(ctx context.Context) (string, error) {
	value, err := g.sequence.NextValue(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("ORD-%d", value), nil
}
