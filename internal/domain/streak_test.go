package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var streakNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func streakExtendedAgo(d time.Duration) *Streak {
	anchor := streakNow.Add(-d)
	return &Streak{
		ID:           "s1",
		ProgressID:   "p1",
		StartedAt:    anchor,
		LastExtended: anchor,
		Count:        1,
		Active:       true,
	}
}

func TestStreakExpired_Daily(t *testing.T) {
	assert.False(t, streakExtendedAgo(10*time.Hour).Expired(CadenceDaily, streakNow))
	assert.False(t, streakExtendedAgo(23*time.Hour).Expired(CadenceDaily, streakNow))
	assert.True(t, streakExtendedAgo(25*time.Hour).Expired(CadenceDaily, streakNow))
}

func TestStreakExpired_Weekly(t *testing.T) {
	assert.False(t, streakExtendedAgo(6*24*time.Hour).Expired(CadenceWeekly, streakNow))
	assert.True(t, streakExtendedAgo(8*24*time.Hour).Expired(CadenceWeekly, streakNow))
}

func TestStreakExpired_Monthly(t *testing.T) {
	assert.False(t, streakExtendedAgo(30*24*time.Hour).Expired(CadenceMonthly, streakNow))
	assert.True(t, streakExtendedAgo(32*24*time.Hour).Expired(CadenceMonthly, streakNow))
}

func TestStreakInGrace(t *testing.T) {
	// Daily window opens at 20h and closes at 24h.
	assert.False(t, streakExtendedAgo(19*time.Hour).InGrace(CadenceDaily, streakNow))
	assert.True(t, streakExtendedAgo(21*time.Hour).InGrace(CadenceDaily, streakNow))
	assert.False(t, streakExtendedAgo(25*time.Hour).InGrace(CadenceDaily, streakNow))

	// Weekly window is 6 to 7 days.
	assert.True(t, streakExtendedAgo(6*24*time.Hour+time.Hour).InGrace(CadenceWeekly, streakNow))
	assert.False(t, streakExtendedAgo(5*24*time.Hour).InGrace(CadenceWeekly, streakNow))

	// Monthly window is 29 to 31 days.
	assert.True(t, streakExtendedAgo(30*24*time.Hour).InGrace(CadenceMonthly, streakNow))
	assert.False(t, streakExtendedAgo(28*24*time.Hour).InGrace(CadenceMonthly, streakNow))
}

func TestStreakExtend(t *testing.T) {
	s := streakExtendedAgo(23 * time.Hour)
	s.Extend(streakNow)

	assert.Equal(t, 2, s.Count)
	assert.Equal(t, streakNow, s.LastExtended)
	assert.True(t, s.Active)
}

func TestStreakRescue_DoesNotCreditPeriod(t *testing.T) {
	s := streakExtendedAgo(21 * time.Hour)
	s.Rescue(streakNow)

	assert.Equal(t, 1, s.Count, "rescue must not increment the count")
	assert.Equal(t, streakNow, s.LastExtended)
	assert.False(t, s.Expired(CadenceDaily, streakNow.Add(23*time.Hour)))
}
