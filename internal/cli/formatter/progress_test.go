package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress_ClampsAndLabels(t *testing.T) {
	DisableColor()

	assert.Equal(t, "[░░░░] 0/5", RenderProgress(0, 5, 4))
	assert.Equal(t, "[████] 5/5", RenderProgress(5, 5, 4))
	assert.Equal(t, "[████] 5/5", RenderProgress(9, 5, 4), "over-goal input clamps to the goal")
	assert.Equal(t, "[██░░] 1/2", RenderProgress(1, 2, 4))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	DisableColor()

	out := RenderTable([]string{"ID", "NAME"}, [][]string{
		{"a1", "Read"},
		{"b2", "Meditate"},
	})

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Meditate")
	// Every data row pads the first column to the same width.
	assert.Contains(t, out, "a1  Read")
	assert.Contains(t, out, "b2  Meditate")
}
