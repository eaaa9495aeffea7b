package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/arozanski/cadence/internal/domain"
)

// resolveHabit matches a user-supplied reference against stored habits:
// exact id, id prefix, or case-insensitive name.
func resolveHabit(ctx context.Context, app *App, ref string) (*domain.Habit, error) {
	if ref == "" {
		return nil, fmt.Errorf("habit reference is required")
	}

	habits, err := app.Habits.List(ctx, true)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Habit
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
		if strings.HasPrefix(h.ID, ref) || strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no habit matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q is ambiguous: %d habits match", ref, len(matches))
	}
}
