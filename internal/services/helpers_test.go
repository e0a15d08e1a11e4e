package services

import (
	"time"

	"raffle/internal/i18n"
)

// sequenceSource replays values in order and records the bounds it was asked for.
type sequenceSource struct {
	values []int
	calls  int
	bounds []int
}

func (s *sequenceSource) Intn(n int) int {
	s.bounds = append(s.bounds, n)
	v := s.values[s.calls%len(s.values)]
	s.calls++
	return v
}

// fakeClock is a settable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var testTranslator = i18n.NewTranslator("es")

type fixture struct {
	registry *ParticipantRegistry
	board    *SlotBoard
	engine   *DrawEngine
	reporter *StatsReporter
}

func newFixture(src Source) *fixture {
	registry := NewParticipantRegistry()
	board := NewSlotBoard()
	engine := NewDrawEngine(board, registry, src)
	return &fixture{
		registry: registry,
		board:    board,
		engine:   engine,
		reporter: NewStatsReporter(board, registry, engine, testTranslator),
	}
}
