package ports

import "context"

// OrderNumberGenerator produces the next human-facing order number.
// The default implementation formats the shared sequence's next value;
// callers may substitute their own strategy per save through the order
// context. Generated numbers must be unique across the system; the
// repository's unique constraint is the final arbiter.
type OrderNumberGenerator interface {
	NextOrderNumber(ctx context.Context) (string, error)
}

// OrderNumberSequence is the persisted, globally monotonic seed behind the
// default generator. NextValue increments and returns the seed atomically:
// no two calls observe the same value, even from concurrent transactions.
// Gaps are acceptable, duplicates are not.
type OrderNumberSequence interface {
	// NextValue atomically increments the sequence and returns the new value.
	NextValue(ctx context.Context) (int64, error)

	// CurrentValue returns the sequence's current value without incrementing.
	CurrentValue(ctx context.Context) (int64, error)
}
