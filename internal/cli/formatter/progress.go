package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a period progress bar like [████░░░░] 2/5.
// The bar is colored by how close the habit is to its goal.
func RenderProgress(progress, goal, width int) string {
	if goal < 1 {
		goal = 1
	}
	if progress < 0 {
		progress = 0
	}
	if progress > goal {
		progress = goal
	}
	if width < 2 {
		width = 2
	}

	pct := float64(progress) / float64(goal)
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.34 {
		style = StyleRed
	} else if pct < 1 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), progress, goal)
}
