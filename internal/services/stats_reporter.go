package services

import (
	"strings"

	"raffle/internal/models"
)

// Translator renders catalogue messages for a locale.
type Translator interface {
	T(locale, key string, data map[string]any) string
}

// StatsReporter derives read-only figures from the board, the registry and
// the last draw.
type StatsReporter struct {
	board      *SlotBoard
	registry   *ParticipantRegistry
	engine     *DrawEngine
	translator Translator
}

func NewStatsReporter(board *SlotBoard, registry *ParticipantRegistry, engine *DrawEngine, translator Translator) *StatsReporter {
	return &StatsReporter{
		board:      board,
		registry:   registry,
		engine:     engine,
		translator: translator,
	}
}

// Snapshot counts occupied and free slots and registered participants.
func (s *StatsReporter) Snapshot() models.Snapshot {
	occupied := len(s.board.OccupiedSlots())
	return models.Snapshot{
		TotalSlots:       models.BoardSize,
		OccupiedCount:    occupied,
		FreeCount:        models.BoardSize - occupied,
		ParticipantCount: s.registry.Count(),
		OccupancyPercent: float64(occupied) / float64(models.BoardSize) * 100,
	}
}

// SlotsForParticipant lists the slots held by email in ascending order.
func (s *StatsReporter) SlotsForParticipant(email string) ([]models.Slot, error) {
	p, ok := s.registry.FindByEmail(email)
	if !ok {
		return nil, &models.Error{Kind: models.KindParticipantNotFound, Email: strings.TrimSpace(email)}
	}

	key := p.Key()
	out := make([]models.Slot, 0)
	for _, slot := range s.board.OccupiedSlots() {
		if slot.Occupant.Key() == key {
			out = append(out, slot)
		}
	}
	return out, nil
}

// SummaryText renders the statistics and the draw state as plain text.
func (s *StatsReporter) SummaryText(locale string) string {
	stats := s.Snapshot()
	last := s.engine.LastResult()

	var b strings.Builder
	line := func(key string, data map[string]any) {
		b.WriteString(s.translator.T(locale, key, data))
		b.WriteByte('\n')
	}

	line("summary.header", nil)
	line("summary.participants", map[string]any{"Count": stats.ParticipantCount})
	line("summary.occupied", map[string]any{"Count": stats.OccupiedCount})
	line("summary.free", map[string]any{"Count": stats.FreeCount})
	line("summary.separator", nil)

	if !last.Drawn {
		line("summary.pending", nil)
		return b.String()
	}

	line("summary.drawn", nil)
	slot := map[string]any{"Slot": models.FormatSlot(last.WinningSlot)}
	if last.Winner == nil {
		line("summary.winning_number_void", slot)
		return b.String()
	}

	line("summary.winning_number", slot)
	line("summary.winner_name", map[string]any{"Name": last.Winner.Name})
	line("summary.winner_email", map[string]any{"Email": last.Winner.Email})
	if last.Winner.Phone != "" {
		line("summary.winner_phone", map[string]any{"Phone": last.Winner.Phone})
	}
	return b.String()
}
