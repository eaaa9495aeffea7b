package domain

import "time"

// UserProfile carries the per-user counters this engine mutates: the point
// balance (only ever credited here) and the stock of streak protectors.
type UserProfile struct {
	ID            string
	Points        int
	Protectors    int
	LongestStreak int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
