package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicalorders/internal/core/domain/model/kernel"
	"clinicalorders/internal/core/domain/model/order"
	"clinicalorders/internal/core/domain/services"
	"clinicalorders/internal/pkg/errs"
)

type stubOrderReader struct {
	byID     map[kernel.UUID]*order.Order
	byNumber map[string]*order.Order
}

func (s *stubOrderReader) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	return s.byID[id], nil
}

func (s *stubOrderReader) GetByOrderNumber(_ context.Context, orderNumber string) (*order.Order, error) {
	return s.byNumber[orderNumber], nil
}

func chainMember(t *testing.T, action order.Action, orderNumber string, previous *order.Order) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		action, order.KindGeneral, nil,
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.NoError(t, o.AssignOrderNumber(orderNumber))
	if previous != nil {
		require.NoError(t, o.SetPreviousOrder(previous.ID()))
	}
	return o
}

func Test_NewChainResolver(t *testing.T) {
	t.Run("requires a reader", func(t *testing.T) {
		resolver, err := services.NewChainResolver(nil)

		assert.Nil(t, resolver)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("constructs with a reader", func(t *testing.T) {
		resolver, err := services.NewChainResolver(&stubOrderReader{})

		require.NoError(t, err)
		assert.NotNil(t, resolver)
	})
}

func Test_ChainResolver_HistoryByOrderNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty order number", func(t *testing.T) {
		resolver, err := services.NewChainResolver(&stubOrderReader{})
		require.NoError(t, err)

		history, err := resolver.HistoryByOrderNumber(ctx, "")

		assert.Nil(t, history)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown order number yields an empty history", func(t *testing.T) {
		resolver, err := services.NewChainResolver(&stubOrderReader{
			byNumber: map[string]*order.Order{},
		})
		require.NoError(t, err)

		history, err := resolver.HistoryByOrderNumber(ctx, "ORD-404")

		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("walks the chain most recent first", func(t *testing.T) {
		original := chainMember(t, order.ActionNew, "ORD-1", nil)
		revision := chainMember(t, order.ActionRevise, "ORD-2", original)
		discontinuation := chainMember(t, order.ActionDiscontinue, "ORD-3", revision)

		reader := &stubOrderReader{
			byID: map[kernel.UUID]*order.Order{
				original.ID(): original,
				revision.ID(): revision,
			},
			byNumber: map[string]*order.Order{"ORD-3": discontinuation},
		}
		resolver, err := services.NewChainResolver(reader)
		require.NoError(t, err)

		history, err := resolver.HistoryByOrderNumber(ctx, "ORD-3")

		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, discontinuation.ID(), history[0].ID())
		assert.Equal(t, revision.ID(), history[1].ID())
		assert.Equal(t, original.ID(), history[2].ID())
	})

	t.Run("broken link yields a data integrity error", func(t *testing.T) {
		original := chainMember(t, order.ActionNew, "ORD-1", nil)
		revision := chainMember(t, order.ActionRevise, "ORD-2", original)

		reader := &stubOrderReader{
			byID:     map[kernel.UUID]*order.Order{},
			byNumber: map[string]*order.Order{"ORD-2": revision},
		}
		resolver, err := services.NewChainResolver(reader)
		require.NoError(t, err)

		history, err := resolver.HistoryByOrderNumber(ctx, "ORD-2")

		assert.Nil(t, history)
		assert.ErrorIs(t, err, errs.ErrDataIntegrity)
	})

	t.Run("cycle yields a data integrity error", func(t *testing.T) {
		first := chainMember(t, order.ActionNew, "ORD-1", nil)
		second := chainMember(t, order.ActionRevise, "ORD-2", first)
		require.NoError(t, first.SetPreviousOrder(second.ID()))

		reader := &stubOrderReader{
			byID: map[kernel.UUID]*order.Order{
				first.ID():  first,
				second.ID(): second,
			},
			byNumber: map[string]*order.Order{"ORD-2": second},
		}
		resolver, err := services.NewChainResolver(reader)
		require.NoError(t, err)

		history, err := resolver.HistoryByOrderNumber(ctx, "ORD-2")

		assert.Nil(t, history)
		assert.ErrorIs(t, err, errs.ErrDataIntegrity)
	})
}
