package services

import (
	"raffle/internal/models"
)

// SlotBoard holds the fixed set of 100 slots. Slots change only through
// Reserve and Release; every query returns copies.
type SlotBoard struct {
	slots [models.BoardSize]models.Slot
}

// NewSlotBoard creates a board with every slot free.
func NewSlotBoard() *SlotBoard {
	b := &SlotBoard{}
	for i := range b.slots {
		b.slots[i] = models.Slot{ID: i}
	}
	return b
}

// Size is always models.BoardSize.
func (b *SlotBoard) Size() int {
	return len(b.slots)
}

// Reserve assigns a free slot to p.
func (b *SlotBoard) Reserve(id int, p *models.Participant) error {
	if err := checkRange(id); err != nil {
		return err
	}
	if p == nil {
		return &models.Error{Kind: models.KindParticipantNotFound}
	}

	slot := &b.slots[id]
	if slot.Occupied() {
		return &models.Error{Kind: models.KindSlotOccupied, Slot: id, Occupant: slot.Occupant.Name}
	}
	slot.Occupant = p
	return nil
}

// Release frees an occupied slot.
func (b *SlotBoard) Release(id int) error {
	if err := checkRange(id); err != nil {
		return err
	}

	slot := &b.slots[id]
	if !slot.Occupied() {
		return &models.Error{Kind: models.KindSlotAlreadyFree, Slot: id}
	}
	slot.Occupant = nil
	return nil
}

// Get returns a copy of the slot.
func (b *SlotBoard) Get(id int) (models.Slot, error) {
	if err := checkRange(id); err != nil {
		return models.Slot{}, err
	}
	return b.slots[id], nil
}

// IsOccupied reports whether the slot is taken. It never mutates the board.
func (b *SlotBoard) IsOccupied(id int) (bool, error) {
	if err := checkRange(id); err != nil {
		return false, err
	}
	return b.slots[id].Occupied(), nil
}

// Slots returns every slot in ascending order.
func (b *SlotBoard) Slots() []models.Slot {
	return b.filter(func(models.Slot) bool { return true })
}

// OccupiedSlots returns the occupied slots in ascending order.
func (b *SlotBoard) OccupiedSlots() []models.Slot {
	return b.filter(models.Slot.Occupied)
}

// FreeSlots returns the free slots in ascending order.
func (b *SlotBoard) FreeSlots() []models.Slot {
	return b.filter(func(s models.Slot) bool { return !s.Occupied() })
}

func (b *SlotBoard) filter(keep func(models.Slot) bool) []models.Slot {
	out := make([]models.Slot, 0, len(b.slots))
	for _, s := range b.slots {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func checkRange(id int) error {
	if !models.ValidSlot(id) {
		return &models.Error{Kind: models.KindOutOfRange, Slot: id}
	}
	return nil
}
