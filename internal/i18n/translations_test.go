package i18n

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"raffle/internal/models"
)

func TestNewTranslator_Locales(t *testing.T) {
	tr := NewTranslator("es")
	assert.ElementsMatch(t, []string{"es", "en"}, tr.Locales())
}

func TestTranslator_T(t *testing.T) {
	tr := NewTranslator("es")

	assert.Equal(t, "Participantes Registrados: 3", tr.T("es", "summary.participants", map[string]any{"Count": 3}))
	assert.Equal(t, "Registered participants: 3", tr.T("en", "summary.participants", map[string]any{"Count": 3}))
	assert.Equal(t, "Número Premiado: 07 (DESIERTO)", tr.T("es", "summary.winning_number_void", map[string]any{"Slot": "07"}))

	t.Run("unknown locale uses the default", func(t *testing.T) {
		assert.Equal(t, "Sorteo pendiente de celebración.", tr.T("fr", "summary.pending", nil))
	})

	t.Run("unknown key falls back to the key", func(t *testing.T) {
		assert.Equal(t, "no.such.key", tr.T("es", "no.such.key", nil))
		assert.Equal(t, "", tr.T("es", "", nil))
	})
}

func TestTranslator_DefaultLocale(t *testing.T) {
	assert.Equal(t, "Draw pending.", NewTranslator("en").T("", "summary.pending", nil))
	assert.Equal(t, "Sorteo pendiente de celebración.", NewTranslator("not a tag").T("", "summary.pending", nil))
}

func TestTranslator_Match(t *testing.T) {
	tr := NewTranslator("es")

	tests := []struct {
		accept string
		want   string
	}{
		{"", "es"},
		{"en", "en"},
		{"en-US,en;q=0.9", "en"},
		{"es-ES", "es"},
		{"fr-FR", "es"},
		{";;;", "es"},
	}
	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.accept))
		})
	}
}

func TestTranslator_Error(t *testing.T) {
	tr := NewTranslator("es")

	tests := []struct {
		name   string
		locale string
		err    error
		want   string
	}{
		{
			name:   "empty name",
			locale: "es",
			err:    &models.Error{Kind: models.KindEmptyField, Field: models.FieldName},
			want:   "El nombre no puede estar vacío",
		},
		{
			name:   "empty name in english",
			locale: "en",
			err:    &models.Error{Kind: models.KindEmptyField, Field: models.FieldName},
			want:   "The name must not be empty",
		},
		{
			name:   "slot occupied",
			locale: "es",
			err:    &models.Error{Kind: models.KindSlotOccupied, Slot: 15, Occupant: "María García"},
			want:   "El número 15 ya está ocupado por María García",
		},
		{
			name:   "out of range",
			locale: "es",
			err:    &models.Error{Kind: models.KindOutOfRange, Slot: 100},
			want:   "El número debe estar entre 00 y 99",
		},
		{
			name:   "wrapped",
			locale: "en",
			err:    errors.Join(errors.New("import"), &models.Error{Kind: models.KindSlotAlreadyFree, Slot: 3}),
			want:   "Number 03 is already free",
		},
		{
			name:   "foreign error",
			locale: "es",
			err:    errors.New("disk full"),
			want:   "disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Error(tt.locale, tt.err))
		})
	}

	assert.Equal(t, "", tr.Error("es", nil))
}
