package services

import (
	"sync"
	"time"

	"github.com/google/logger"

	"raffle/internal/i18n"
	"raffle/internal/metrics"
	"raffle/internal/models"
)

// DefaultSessionTTL is how long an untouched session survives the janitor.
const DefaultSessionTTL = time.Hour

// Session holds the raffle of a single user/tenant. Every operation on a
// session runs under its mutex; the core components themselves do not lock.
type Session struct {
	mu           sync.Mutex
	Registry     *ParticipantRegistry
	Board        *SlotBoard
	Engine       *DrawEngine
	Reporter     *StatsReporter
	History      []models.DrawRecord
	LastActivity time.Time
}

// RaffleService manages multiple raffle sessions.
type RaffleService struct {
	mu         sync.RWMutex
	sessions   map[string]*Session // Key: tenantID
	source     Source
	translator Translator
	now        func() time.Time
	ttl        time.Duration
}

// Option configures a RaffleService.
type Option func(*RaffleService)

// WithSource sets the randomness used by random draws in new sessions.
func WithSource(src Source) Option {
	return func(s *RaffleService) { s.source = src }
}

// WithTranslator sets the message catalogue used for summaries and CSV headers.
func WithTranslator(t Translator) Option {
	return func(s *RaffleService) { s.translator = t }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *RaffleService) { s.now = now }
}

// WithSessionTTL sets the idle time after which sessions are dropped.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *RaffleService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRaffleService creates and initializes a new RaffleService.
func NewRaffleService(opts ...Option) *RaffleService {
	s := &RaffleService{
		sessions: make(map[string]*Session),
		now:      time.Now,
		ttl:      DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.translator == nil {
		s.translator = i18n.NewTranslator("es")
	}
	return s
}

// Translator returns the catalogue the service renders text with.
func (s *RaffleService) Translator() Translator {
	return s.translator
}

func (s *RaffleService) newSession() *Session {
	registry := NewParticipantRegistry()
	board := NewSlotBoard()
	engine := NewDrawEngine(board, registry, s.source)
	return &Session{
		Registry: registry,
		Board:    board,
		Engine:   engine,
		Reporter: NewStatsReporter(board, registry, engine, s.translator),
		History:  make([]models.DrawRecord, 0),
	}
}

// getSession returns a session for a tenant, creating one if it doesn't exist.
func (s *RaffleService) getSession(tenantID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[tenantID]
	if !exists {
		session = s.newSession()
		s.sessions[tenantID] = session
		metrics.SetActiveSessions(len(s.sessions))
	}
	session.LastActivity = s.now()
	return session
}

// withSession runs fn with the tenant's session locked.
func (s *RaffleService) withSession(tenantID string, fn func(*Session) error) error {
	session := s.getSession(tenantID)
	session.mu.Lock()
	defer session.mu.Unlock()
	return fn(session)
}

// Register adds a participant to a tenant's raffle.
func (s *RaffleService) Register(tenantID, name, email, phone string) (*models.Participant, error) {
	var p *models.Participant
	err := s.withSession(tenantID, func(session *Session) error {
		var err error
		p, err = session.Registry.Register(name, email, phone)
		return err
	})
	metrics.RecordRegistration(err)
	if err != nil {
		return nil, err
	}
	logger.Infof("tenant %s: registered participant #%d <%s>", tenantID, p.ID, p.Email)
	return p, nil
}

// Participants returns the participants for a specific tenant.
func (s *RaffleService) Participants(tenantID string) []*models.Participant {
	var out []*models.Participant
	_ = s.withSession(tenantID, func(session *Session) error {
		out = session.Registry.All()
		return nil
	})
	return out
}

// FindParticipant looks a participant up by email.
func (s *RaffleService) FindParticipant(tenantID, email string) (*models.Participant, error) {
	var p *models.Participant
	err := s.withSession(tenantID, func(session *Session) error {
		found, ok := session.Registry.FindByEmail(email)
		if !ok {
			return &models.Error{Kind: models.KindParticipantNotFound, Email: email}
		}
		p = found
		return nil
	})
	return p, err
}

// Reserve assigns a slot to an already registered participant.
func (s *RaffleService) Reserve(tenantID string, slotID int, email string) error {
	err := s.withSession(tenantID, func(session *Session) error {
		p, ok := session.Registry.FindByEmail(email)
		if !ok {
			return &models.Error{Kind: models.KindParticipantNotFound, Email: email}
		}
		return session.Board.Reserve(slotID, p)
	})
	metrics.RecordSlotOperation("reserve", err)
	if err != nil {
		return err
	}
	logger.Infof("tenant %s: slot %s reserved for <%s>", tenantID, models.FormatSlot(slotID), email)
	return nil
}

// Release frees a slot.
func (s *RaffleService) Release(tenantID string, slotID int) error {
	err := s.withSession(tenantID, func(session *Session) error {
		return session.Board.Release(slotID)
	})
	metrics.RecordSlotOperation("release", err)
	if err != nil {
		return err
	}
	logger.Infof("tenant %s: slot %s released", tenantID, models.FormatSlot(slotID))
	return nil
}

// Slot returns one slot of the tenant's board.
func (s *RaffleService) Slot(tenantID string, slotID int) (models.Slot, error) {
	var slot models.Slot
	err := s.withSession(tenantID, func(session *Session) error {
		var err error
		slot, err = session.Board.Get(slotID)
		return err
	})
	return slot, err
}

// Board returns all 100 slots.
func (s *RaffleService) Board(tenantID string) []models.Slot {
	return s.slots(tenantID, (*SlotBoard).Slots)
}

// FreeSlots returns the slots nobody holds.
func (s *RaffleService) FreeSlots(tenantID string) []models.Slot {
	return s.slots(tenantID, (*SlotBoard).FreeSlots)
}

// OccupiedSlots returns the reserved slots.
func (s *RaffleService) OccupiedSlots(tenantID string) []models.Slot {
	return s.slots(tenantID, (*SlotBoard).OccupiedSlots)
}

func (s *RaffleService) slots(tenantID string, list func(*SlotBoard) []models.Slot) []models.Slot {
	var out []models.Slot
	_ = s.withSession(tenantID, func(session *Session) error {
		out = list(session.Board)
		return nil
	})
	return out
}

// DrawBySlot resolves a manually entered winning number.
func (s *RaffleService) DrawBySlot(tenantID string, slotID int) (models.DrawResult, error) {
	var result models.DrawResult
	err := s.withSession(tenantID, func(session *Session) error {
		var err error
		result, err = session.Engine.DrawBySlot(slotID)
		if err != nil {
			return err
		}
		s.record(session, result, nil)
		return nil
	})
	if err != nil {
		return models.DrawResult{}, err
	}
	metrics.RecordDraw("manual", result.Void)
	s.logDraw(tenantID, result)
	return result, nil
}

// DrawRandom runs a random draw.
func (s *RaffleService) DrawRandom(tenantID string) (models.RandomDraw, error) {
	var draw models.RandomDraw
	err := s.withSession(tenantID, func(session *Session) error {
		var err error
		draw, err = session.Engine.DrawRandom()
		if err != nil {
			return err
		}
		s.record(session, draw.Result, draw.Generated)
		return nil
	})
	if err != nil {
		return models.RandomDraw{}, err
	}
	metrics.RecordDraw("random", draw.Result.Void)
	s.logDraw(tenantID, draw.Result)
	return draw, nil
}

func (s *RaffleService) record(session *Session, result models.DrawResult, generated []int) {
	var numbers []int
	if generated != nil {
		numbers = append([]int(nil), generated...)
	}
	session.History = append(session.History, models.DrawRecord{
		Sequence:  len(session.History) + 1,
		Result:    result,
		Generated: numbers,
		DrawnAt:   s.now(),
	})
}

func (s *RaffleService) logDraw(tenantID string, result models.DrawResult) {
	if result.Void {
		logger.Infof("tenant %s: draw on %s is void", tenantID, models.FormatSlot(result.WinningSlot))
		return
	}
	logger.Infof("tenant %s: draw on %s won by <%s>", tenantID, models.FormatSlot(result.WinningSlot), result.Winner.Email)
}

// LastResult returns the retained outcome of the latest draw.
func (s *RaffleService) LastResult(tenantID string) models.LastResult {
	var last models.LastResult
	_ = s.withSession(tenantID, func(session *Session) error {
		last = session.Engine.LastResult()
		return nil
	})
	return last
}

// ResetDraw forgets the latest draw. Participants, slots and history stay.
func (s *RaffleService) ResetDraw(tenantID string) {
	_ = s.withSession(tenantID, func(session *Session) error {
		session.Engine.Reset()
		return nil
	})
}

// History returns every draw of the session, oldest first.
func (s *RaffleService) History(tenantID string) []models.DrawRecord {
	var out []models.DrawRecord
	_ = s.withSession(tenantID, func(session *Session) error {
		out = make([]models.DrawRecord, len(session.History))
		copy(out, session.History)
		return nil
	})
	return out
}

// Snapshot returns the tenant's statistics.
func (s *RaffleService) Snapshot(tenantID string) models.Snapshot {
	var snap models.Snapshot
	_ = s.withSession(tenantID, func(session *Session) error {
		snap = session.Reporter.Snapshot()
		return nil
	})
	return snap
}

// SlotsForParticipant lists the slots a participant holds.
func (s *RaffleService) SlotsForParticipant(tenantID, email string) ([]models.Slot, error) {
	var out []models.Slot
	err := s.withSession(tenantID, func(session *Session) error {
		var err error
		out, err = session.Reporter.SlotsForParticipant(email)
		return err
	})
	return out, err
}

// Summary renders the plain-text report in the given locale.
func (s *RaffleService) Summary(tenantID, locale string) string {
	var text string
	_ = s.withSession(tenantID, func(session *Session) error {
		text = session.Reporter.SummaryText(locale)
		return nil
	})
	return text
}

// SessionCount returns the number of sessions held in memory.
func (s *RaffleService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CleanUpInactiveSessions removes sessions that have been idle for longer
// than the TTL and returns how many were dropped.
func (s *RaffleService) CleanUpInactiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for tenantID, session := range s.sessions {
		if s.now().Sub(session.LastActivity) > s.ttl {
			logger.Infof("Dropping inactive session for tenant: %s", tenantID)
			delete(s.sessions, tenantID)
			removed++
		}
	}
	metrics.SetActiveSessions(len(s.sessions))
	return removed
}

// ClearSession removes all data associated with a specific tenant.
func (s *RaffleService) ClearSession(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tenantID)
	metrics.SetActiveSessions(len(s.sessions))
	logger.Infof("Cleared session for tenant: %s", tenantID)
}
