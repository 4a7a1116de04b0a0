package controller

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "helix.dev/pkg/helix/internal/model"
)

func press(t *testing.T, model tea.Model, keys ...tea.KeyMsg) traceModel {
	t.Helper()

	for _, k := range keys {
		model, _ = model.Update(k)
	}

	tm, ok := model.(traceModel)
	require.True(t, ok)

	return tm
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestTraceModel_Navigation(t *testing.T) {
	model := newTraceModel(circleExecution())

	tm := press(t, model, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, tm.cursor)

	tm = press(t, tm, runeKey("l"), runeKey("l"), runeKey("l"), runeKey("l"))
	assert.Equal(t, 3, tm.cursor, "cursor stops at the last snapshot")

	tm = press(t, tm, runeKey("g"))
	assert.Equal(t, 0, tm.cursor)

	tm = press(t, tm, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, tm.cursor)

	tm = press(t, tm, runeKey("G"))
	assert.Equal(t, 3, tm.cursor)

	tm = press(t, tm, runeKey("u"))
	assert.Equal(t, 0, tm.cursor)
}

func TestTraceModel_Quit(t *testing.T) {
	model := newTraceModel(circleExecution())

	updated, cmd := model.Update(runeKey("q"))
	require.NotNil(t, cmd)

	tm, ok := updated.(traceModel)
	require.True(t, ok)
	assert.True(t, tm.quitting)
	assert.Empty(t, tm.View())
}

func TestTraceModel_View(t *testing.T) {
	model := newTraceModel(circleExecution())
	tm := press(t, model, tea.KeyMsg{Type: tea.KeyRight})

	view := tm.View()
	assert.Contains(t, view, "Helix - Trace Stepper")
	assert.Contains(t, view, "circle.genome")
	assert.Contains(t, view, "Step 2/4")
	assert.Contains(t, view, "GAA PUSH")
	assert.Contains(t, view, "[21]")

	last := press(t, tm, runeKey("G"))
	assert.Contains(t, last.View(), "halted: stop")
}

func TestTraceModel_WindowSizeAndHelp(t *testing.T) {
	model := newTraceModel(circleExecution())

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	tm := press(t, updated, runeKey("?"))

	assert.Equal(t, 100, tm.width)
	assert.True(t, tm.help.ShowAll)
}

func TestTraceModel_RenderTokensWindow(t *testing.T) {
	execution := circleExecution()
	for range 30 {
		execution.Tokens = append(execution.Tokens, m.Token{Codon: "CTA", Opcode: m.OpNop})
	}

	strip := newTraceModel(execution).renderTokens(20)
	assert.Contains(t, strip, "…")
	assert.Contains(t, strip, "CTA")
}

func TestTUI_DisplayTrace_EmptyFallsBackToTable(t *testing.T) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, NewTUI(cmd).DisplayTrace(context.Background(), m.Execution{Halt: m.HaltEnd}))
	assert.Contains(t, out.String(), "Halted on end after 0 instruction(s)")
}

func TestTraceModel_WindowFollowsWidth(t *testing.T) {
	model := newTraceModel(circleExecution())
	assert.Equal(t, tokenWindow, model.window())

	assert.Equal(t, 24, model.resize(100, 40).window())
	assert.Equal(t, 4, model.resize(10, 40).window())
}
