package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle/internal/models"
)

func TestSlotBoard_New(t *testing.T) {
	b := NewSlotBoard()
	assert.Equal(t, 100, b.Size())

	for id := 0; id <= 99; id++ {
		occupied, err := b.IsOccupied(id)
		require.NoError(t, err)
		assert.False(t, occupied, "slot %d", id)
	}

	slots := b.Slots()
	require.Len(t, slots, 100)
	for i, s := range slots {
		assert.Equal(t, i, s.ID)
	}
	assert.Len(t, b.FreeSlots(), 100)
	assert.Empty(t, b.OccupiedSlots())
}

func TestSlotBoard_OutOfRange(t *testing.T) {
	b := NewSlotBoard()
	p := &models.Participant{ID: 1, Name: "Ana", Email: "ana@example.com"}

	for _, id := range []int{-1, 100, 1000, -100} {
		assert.ErrorIs(t, b.Reserve(id, p), models.ErrOutOfRange)
		assert.ErrorIs(t, b.Release(id), models.ErrOutOfRange)
		_, err := b.Get(id)
		assert.ErrorIs(t, err, models.ErrOutOfRange)
		_, err = b.IsOccupied(id)
		assert.ErrorIs(t, err, models.ErrOutOfRange)
	}
}

func TestSlotBoard_ReserveRelease(t *testing.T) {
	b := NewSlotBoard()
	juan := &models.Participant{ID: 1, Name: "Juan", Email: "juan@example.com"}
	ana := &models.Participant{ID: 2, Name: "Ana", Email: "ana@example.com"}

	require.NoError(t, b.Reserve(42, juan))
	slot, err := b.Get(42)
	require.NoError(t, err)
	assert.True(t, slot.Occupied())
	assert.Same(t, juan, slot.Occupant)

	t.Run("occupied slot reports occupant", func(t *testing.T) {
		err := b.Reserve(42, ana)
		require.ErrorIs(t, err, models.ErrSlotOccupied)
		assert.Contains(t, err.Error(), "Juan")

		slot, _ := b.Get(42)
		assert.Same(t, juan, slot.Occupant)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, b.Release(42))
		occupied, err := b.IsOccupied(42)
		require.NoError(t, err)
		assert.False(t, occupied)

		slot, _ := b.Get(42)
		assert.Nil(t, slot.Occupant)

		require.NoError(t, b.Reserve(42, ana))
		slot, _ = b.Get(42)
		assert.Same(t, ana, slot.Occupant)
	})

	t.Run("release free slot", func(t *testing.T) {
		assert.ErrorIs(t, b.Release(7), models.ErrSlotAlreadyFree)
	})

	t.Run("nil participant", func(t *testing.T) {
		assert.ErrorIs(t, b.Reserve(8, nil), models.ErrParticipantNotFound)
		occupied, _ := b.IsOccupied(8)
		assert.False(t, occupied)
	})
}

func TestSlotBoard_QueriesReturnCopies(t *testing.T) {
	b := NewSlotBoard()
	p := &models.Participant{ID: 1, Name: "Ana", Email: "ana@example.com"}

	slot, err := b.Get(5)
	require.NoError(t, err)
	slot.Occupant = p

	occupied, _ := b.IsOccupied(5)
	assert.False(t, occupied)

	require.NoError(t, b.Reserve(30, p))
	require.NoError(t, b.Reserve(10, p))
	require.NoError(t, b.Reserve(20, p))

	occ := b.OccupiedSlots()
	require.Len(t, occ, 3)
	assert.Equal(t, []int{10, 20, 30}, []int{occ[0].ID, occ[1].ID, occ[2].ID})
	assert.Len(t, b.FreeSlots(), 97)

	occ[0].Occupant = nil
	occupied, _ = b.IsOccupied(10)
	assert.True(t, occupied)
}
