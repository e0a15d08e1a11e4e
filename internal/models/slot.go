package models

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// BoardSize is the number of slots on every board.
	BoardSize = 100
	MinSlot   = 0
	MaxSlot   = BoardSize - 1
)

// Slot is one numbered position on the board. A slot is occupied exactly when
// it has an occupant.
type Slot struct {
	ID       int          `json:"id"`
	Occupant *Participant `json:"occupant,omitempty"`
}

// Occupied reports whether a participant holds the slot.
func (s Slot) Occupied() bool {
	return s.Occupant != nil
}

// Label renders the slot number the way it is shown on the board, e.g. "07".
func (s Slot) Label() string {
	return FormatSlot(s.ID)
}

// FormatSlot zero-pads a slot number to two digits.
func FormatSlot(id int) string {
	return fmt.Sprintf("%02d", id)
}

// ValidSlot reports whether id is inside [MinSlot, MaxSlot].
func ValidSlot(id int) bool {
	return id >= MinSlot && id <= MaxSlot
}

// ParseSlotNumber parses a slot number typed by a user. Anything that is not
// an integer in range is an InvalidSlotNumber error.
func ParseSlotNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err != nil || !ValidSlot(id) {
		return 0, &Error{Kind: KindInvalidSlotNumber, Input: s}
	}
	return id, nil
}
