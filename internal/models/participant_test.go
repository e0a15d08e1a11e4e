package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParticipant(t *testing.T) {
	t.Run("trims fields", func(t *testing.T) {
		p, err := NewParticipant(1, "  Juan Pérez ", " juan@example.com ", " 600123456 ")
		require.NoError(t, err)
		assert.Equal(t, &Participant{ID: 1, Name: "Juan Pérez", Email: "juan@example.com", Phone: "600123456"}, p)
	})

	t.Run("phone is optional", func(t *testing.T) {
		p, err := NewParticipant(2, "Ana", "ana@example.com", "")
		require.NoError(t, err)
		assert.Empty(t, p.Phone)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := NewParticipant(1, "   ", "a@b.com", "")
		require.ErrorIs(t, err, ErrEmptyField)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, FieldName, e.Field)
	})

	t.Run("blank email", func(t *testing.T) {
		_, err := NewParticipant(1, "Ana", "", "")
		require.ErrorIs(t, err, ErrEmptyField)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, FieldEmail, e.Field)
	})

	t.Run("invalid email", func(t *testing.T) {
		for _, email := range []string{"not-an-email", "a@b", "a@b.c", "@example.com", "a b@example.com"} {
			_, err := NewParticipant(1, "Ana", email, "")
			assert.ErrorIs(t, err, ErrInvalidEmailFormat, email)
		}
	})
}

func TestParticipantKey(t *testing.T) {
	p := &Participant{Email: "María.García@Example.COM"}
	assert.Equal(t, "maría.garcía@example.com", p.Key())

	assert.True(t, (&Participant{Email: "A@B.com"}).Equal(&Participant{Email: "a@b.com"}))
	assert.False(t, (&Participant{Email: "a@b.com"}).Equal(&Participant{Email: "c@b.com"}))
	assert.False(t, (&Participant{Email: "a@b.com"}).Equal(nil))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("juan@example.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.org"))
	assert.False(t, ValidEmail("juan@example"))
	assert.False(t, ValidEmail("juan.example.com"))
}
