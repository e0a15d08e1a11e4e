package models

import (
	"errors"
	"fmt"
)

// Kind identifies a class of raffle error. Callers branch on the kind, never
// on the message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyField
	KindInvalidEmailFormat
	KindDuplicateParticipant
	KindParticipantNotFound
	KindOutOfRange
	KindSlotOccupied
	KindSlotAlreadyFree
	KindInvalidSlotNumber
)

var kindNames = map[Kind]string{
	KindUnknown:              "unknown",
	KindEmptyField:           "empty_field",
	KindInvalidEmailFormat:   "invalid_email_format",
	KindDuplicateParticipant: "duplicate_participant",
	KindParticipantNotFound:  "participant_not_found",
	KindOutOfRange:           "out_of_range",
	KindSlotOccupied:         "slot_occupied",
	KindSlotAlreadyFree:      "slot_already_free",
	KindInvalidSlotNumber:    "invalid_slot_number",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MessageID is the catalogue key of the user-facing message for this kind.
func (k Kind) MessageID() string {
	return "error." + k.String()
}

// Field names reported by EmptyField errors.
const (
	FieldName  = "name"
	FieldEmail = "email"
)

// Error is the single error type returned by the raffle core. Only the
// attributes relevant to Kind are set.
type Error struct {
	Kind     Kind
	Field    string
	Email    string
	Slot     int
	Occupant string
	Input    string
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrEmptyField           = &Error{Kind: KindEmptyField}
	ErrInvalidEmailFormat   = &Error{Kind: KindInvalidEmailFormat}
	ErrDuplicateParticipant = &Error{Kind: KindDuplicateParticipant}
	ErrParticipantNotFound  = &Error{Kind: KindParticipantNotFound}
	ErrOutOfRange           = &Error{Kind: KindOutOfRange}
	ErrSlotOccupied         = &Error{Kind: KindSlotOccupied}
	ErrSlotAlreadyFree      = &Error{Kind: KindSlotAlreadyFree}
	ErrInvalidSlotNumber    = &Error{Kind: KindInvalidSlotNumber}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyField:
		return fmt.Sprintf("%s must not be empty", e.Field)
	case KindInvalidEmailFormat:
		return fmt.Sprintf("email %q has an invalid format", e.Email)
	case KindDuplicateParticipant:
		return fmt.Sprintf("a participant with email %q is already registered", e.Email)
	case KindParticipantNotFound:
		return fmt.Sprintf("no participant found with email %q", e.Email)
	case KindOutOfRange:
		return fmt.Sprintf("slot %d is out of range [%02d, %02d]", e.Slot, MinSlot, MaxSlot)
	case KindSlotOccupied:
		return fmt.Sprintf("slot %02d is already occupied by %s", e.Slot, e.Occupant)
	case KindSlotAlreadyFree:
		return fmt.Sprintf("slot %02d is already free", e.Slot)
	case KindInvalidSlotNumber:
		if e.Input != "" {
			return fmt.Sprintf("winning number %q must be an integer between %d and %d", e.Input, MinSlot, MaxSlot)
		}
		return fmt.Sprintf("winning number %d must be an integer between %d and %d", e.Slot, MinSlot, MaxSlot)
	default:
		return "raffle error"
	}
}

// Is matches errors of the same kind, so errors.Is(err, ErrSlotOccupied)
// holds for every occupied-slot error regardless of its details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// TemplateData exposes the error attributes to message templates.
func (e *Error) TemplateData() map[string]any {
	return map[string]any{
		"Field":    e.Field,
		"Email":    e.Email,
		"Slot":     FormatSlot(e.Slot),
		"Occupant": e.Occupant,
		"Input":    e.Input,
		"Min":      FormatSlot(MinSlot),
		"Max":      FormatSlot(MaxSlot),
	}
}

// KindOf returns the kind of err, or KindUnknown for errors outside the core.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
