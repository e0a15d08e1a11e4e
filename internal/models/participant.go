package models

import (
	"regexp"
	"strings"
)

// emailPattern accepts local@domain.tld addresses.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Participant represents a person registered in the raffle.
// Values handed out by the registry are shared with the board and must be
// treated as read-only.
type Participant struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// NewParticipant trims and validates the given fields and builds a Participant.
// Phone is optional and is only trimmed.
func NewParticipant(id int, name, email, phone string) (*Participant, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return nil, &Error{Kind: KindEmptyField, Field: FieldName}
	}
	if email == "" {
		return nil, &Error{Kind: KindEmptyField, Field: FieldEmail}
	}
	if !ValidEmail(email) {
		return nil, &Error{Kind: KindInvalidEmailFormat, Email: email}
	}

	return &Participant{ID: id, Name: name, Email: email, Phone: phone}, nil
}

// Key returns the identity of the participant: the normalized email.
func (p *Participant) Key() string {
	return NormalizeEmail(p.Email)
}

// Equal reports whether both participants share the same identity.
func (p *Participant) Equal(other *Participant) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Key() == other.Key()
}

// NormalizeEmail returns the lookup key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
