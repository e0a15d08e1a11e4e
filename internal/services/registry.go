package services

import (
	"raffle/internal/models"
)

// ParticipantRegistry owns the registered participants, keyed by normalized
// email. It is not safe for concurrent use; RaffleService serializes access.
type ParticipantRegistry struct {
	byKey  map[string]*models.Participant
	order  []*models.Participant
	nextID int
}

// NewParticipantRegistry creates an empty registry. IDs start at 1.
func NewParticipantRegistry() *ParticipantRegistry {
	return &ParticipantRegistry{
		byKey:  make(map[string]*models.Participant),
		order:  make([]*models.Participant, 0),
		nextID: 1,
	}
}

// Register validates the fields and stores a new participant. A failed
// registration leaves the registry untouched and does not consume an ID.
func (r *ParticipantRegistry) Register(name, email, phone string) (*models.Participant, error) {
	p, err := models.NewParticipant(r.nextID, name, email, phone)
	if err != nil {
		return nil, err
	}

	key := p.Key()
	if _, exists := r.byKey[key]; exists {
		return nil, &models.Error{Kind: models.KindDuplicateParticipant, Email: p.Email}
	}

	r.byKey[key] = p
	r.order = append(r.order, p)
	r.nextID++
	return p, nil
}

// FindByEmail looks a participant up ignoring case.
func (r *ParticipantRegistry) FindByEmail(email string) (*models.Participant, bool) {
	p, ok := r.byKey[models.NormalizeEmail(email)]
	return p, ok
}

// Exists reports whether email is registered.
func (r *ParticipantRegistry) Exists(email string) bool {
	_, ok := r.FindByEmail(email)
	return ok
}

// All returns the participants in registration order. The slice is a copy.
func (r *ParticipantRegistry) All() []*models.Participant {
	out := make([]*models.Participant, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of registered participants.
func (r *ParticipantRegistry) Count() int {
	return len(r.order)
}
