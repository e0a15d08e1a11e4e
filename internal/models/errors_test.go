package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := &Error{Kind: KindSlotOccupied, Slot: 15, Occupant: "María García"}

	assert.ErrorIs(t, err, ErrSlotOccupied)
	assert.NotErrorIs(t, err, ErrSlotAlreadyFree)
	assert.ErrorIs(t, fmt.Errorf("reserve: %w", err), ErrSlotOccupied)
	assert.Equal(t, "slot 15 is already occupied by María García", err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindOutOfRange, KindOf(fmt.Errorf("wrapped: %w", &Error{Kind: KindOutOfRange, Slot: 100})))
	assert.Equal(t, KindUnknown, KindOf(fmt.Errorf("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "duplicate_participant", KindDuplicateParticipant.String())
	assert.Equal(t, "error.invalid_slot_number", KindInvalidSlotNumber.MessageID())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestTemplateData(t *testing.T) {
	data := (&Error{Kind: KindSlotAlreadyFree, Slot: 3}).TemplateData()
	assert.Equal(t, "03", data["Slot"])
	assert.Equal(t, "00", data["Min"])
	assert.Equal(t, "99", data["Max"])
}
