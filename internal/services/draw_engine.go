package services

import (
	"math/rand"

	"raffle/internal/models"
)

// Source is the randomness provider for random draws.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

type mathSource struct{}

func (mathSource) Intn(n int) int { return rand.Intn(n) }

// DrawEngine resolves winning slots against the board and remembers the last
// outcome. It reads the registry but never changes it.
type DrawEngine struct {
	board    *SlotBoard
	registry *ParticipantRegistry
	rng      Source
	last     models.LastResult
}

// NewDrawEngine wires an engine to a board and registry. A nil src falls back
// to math/rand.
func NewDrawEngine(board *SlotBoard, registry *ParticipantRegistry, src Source) *DrawEngine {
	if src == nil {
		src = mathSource{}
	}
	return &DrawEngine{
		board:    board,
		registry: registry,
		rng:      src,
	}
}

// DrawBySlot resolves slotID to its occupant, or to a void result when the
// slot is free. The board is never modified; the retained result always is.
func (e *DrawEngine) DrawBySlot(slotID int) (models.DrawResult, error) {
	if !models.ValidSlot(slotID) {
		return models.DrawResult{}, &models.Error{Kind: models.KindInvalidSlotNumber, Slot: slotID}
	}

	slot, err := e.board.Get(slotID)
	if err != nil {
		return models.DrawResult{}, err
	}

	result := models.DrawResult{WinningSlot: slotID, Void: !slot.Occupied()}
	if slot.Occupied() {
		result.Winner = slot.Occupant
		if p, ok := e.registry.FindByEmail(slot.Occupant.Email); ok {
			result.Winner = p
		}
	}

	e.last = models.LastResult{Drawn: true, WinningSlot: slotID, Winner: result.Winner}
	return result, nil
}

// DrawRandom generates models.DrawRounds numbers and resolves the last one
// with DrawBySlot. The earlier numbers are only for show.
func (e *DrawEngine) DrawRandom() (models.RandomDraw, error) {
	generated := make([]int, models.DrawRounds)
	for i := range generated {
		generated[i] = e.rng.Intn(models.BoardSize)
	}

	result, err := e.DrawBySlot(generated[len(generated)-1])
	if err != nil {
		return models.RandomDraw{}, err
	}
	return models.RandomDraw{Generated: generated, Result: result}, nil
}

// LastResult returns the outcome of the most recent draw.
func (e *DrawEngine) LastResult() models.LastResult {
	return e.last
}

// Reset forgets the last draw. Participants and slots are untouched.
func (e *DrawEngine) Reset() {
	e.last = models.LastResult{}
}
