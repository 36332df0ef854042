package toast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowSchedulesDismiss(t *testing.T) {
	m := New()
	cmd := m.ShowSuccess("Saved export.csv")
	require.NotNil(t, cmd)
	assert.True(t, m.Visible())

	m, _ = m.Update(dismissMsg{seq: 1})
	assert.False(t, m.Visible())
}

func TestStaleDismissIgnored(t *testing.T) {
	m := New()
	_ = m.ShowSuccess("first")
	_ = m.ShowError("second")

	// The first toast's timer must not dismiss the second toast.
	m, _ = m.Update(dismissMsg{seq: 1})
	assert.True(t, m.Visible())

	m, _ = m.Update(dismissMsg{seq: 2})
	assert.False(t, m.Visible())
}
