package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHabit() *Habit {
	return &Habit{
		ID:         "11111111-2222-3333-4444-555555555555",
		Name:       "Read",
		Cadence:    CadenceDaily,
		Goal:       5,
		Difficulty: DifficultyMedium,
		Unit:       "pages",
		Status:     HabitActive,
	}
}

func TestHabitValidate(t *testing.T) {
	require.NoError(t, validHabit().Validate())

	h := validHabit()
	h.Name = ""
	assert.Error(t, h.Validate())

	h = validHabit()
	h.Cadence = "fortnightly"
	assert.Error(t, h.Validate())

	h = validHabit()
	h.Difficulty = "brutal"
	assert.Error(t, h.Validate())

	h = validHabit()
	h.Goal = 0
	assert.Error(t, h.Validate())
}

func TestHabitDisplayID(t *testing.T) {
	h := validHabit()
	assert.Equal(t, "11111111", h.DisplayID())

	h.ID = "short"
	assert.Equal(t, "short", h.DisplayID())
}
