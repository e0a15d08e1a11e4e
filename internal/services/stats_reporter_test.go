package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle/internal/models"
)

func TestStatsReporter_Snapshot(t *testing.T) {
	f := newFixture(nil)
	assert.Equal(t, models.Snapshot{TotalSlots: 100, FreeCount: 100}, f.reporter.Snapshot())

	juan, err := f.registry.Register("Juan Pérez", "juan@example.com", "")
	require.NoError(t, err)
	for _, id := range []int{30, 10, 20} {
		require.NoError(t, f.board.Reserve(id, juan))
	}

	snap := f.reporter.Snapshot()
	assert.Equal(t, 3, snap.OccupiedCount)
	assert.Equal(t, 97, snap.FreeCount)
	assert.Equal(t, 100, snap.OccupiedCount+snap.FreeCount)
	assert.Equal(t, 1, snap.ParticipantCount)
	assert.InDelta(t, 3.0, snap.OccupancyPercent, 1e-9)
}

func TestStatsReporter_SlotsForParticipant(t *testing.T) {
	f := newFixture(nil)
	juan, err := f.registry.Register("Juan Pérez", "juan@example.com", "")
	require.NoError(t, err)
	ana, err := f.registry.Register("Ana", "ana@example.com", "")
	require.NoError(t, err)
	_, err = f.registry.Register("Luis", "luis@example.com", "")
	require.NoError(t, err)

	for _, id := range []int{30, 10, 20} {
		require.NoError(t, f.board.Reserve(id, juan))
	}
	require.NoError(t, f.board.Reserve(15, ana))

	slots, err := f.reporter.SlotsForParticipant("juan@example.com")
	require.NoError(t, err)
	ids := make([]int, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}
	assert.Equal(t, []int{10, 20, 30}, ids)

	slots, err = f.reporter.SlotsForParticipant("JUAN@example.com")
	require.NoError(t, err)
	assert.Len(t, slots, 3)

	slots, err = f.reporter.SlotsForParticipant("luis@example.com")
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = f.reporter.SlotsForParticipant("nobody@example.com")
	assert.ErrorIs(t, err, models.ErrParticipantNotFound)
}

func TestStatsReporter_SummaryText(t *testing.T) {
	f := newFixture(nil)
	const header = "--- Resumen del Sorteo de Navidad ---\n"
	const separator = "--------------------------------------\n"

	assert.Equal(t, header+
		"Participantes Registrados: 0\n"+
		"Números Ocupados: 0\n"+
		"Números Libres: 100\n"+
		separator+
		"Sorteo pendiente de celebración.\n", f.reporter.SummaryText("es"))

	maria, err := f.registry.Register("María García", "maria@example.com", "600111222")
	require.NoError(t, err)
	require.NoError(t, f.board.Reserve(15, maria))

	_, err = f.engine.DrawBySlot(15)
	require.NoError(t, err)
	assert.Equal(t, header+
		"Participantes Registrados: 1\n"+
		"Números Ocupados: 1\n"+
		"Números Libres: 99\n"+
		separator+
		"¡SORTEO REALIZADO!\n"+
		"Número Premiado: 15\n"+
		"Ganador: María García\n"+
		"Email: maria@example.com\n"+
		"Teléfono: 600111222\n", f.reporter.SummaryText("es"))

	_, err = f.engine.DrawBySlot(4)
	require.NoError(t, err)
	summary := f.reporter.SummaryText("es")
	assert.Contains(t, summary, "Número Premiado: 04 (DESIERTO)\n")
	assert.NotContains(t, summary, "Ganador")

	english := f.reporter.SummaryText("en")
	assert.Contains(t, english, "--- Christmas Raffle Summary ---\n")
	assert.Contains(t, english, "Winning number: 04 (VOID)\n")
}
