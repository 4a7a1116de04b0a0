package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "helix.dev/pkg/helix/internal/model"
)

const (
	tokenWindow = 16
	pageStep    = 10
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	currentStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	literalStyle = lipgloss.NewStyle().Faint(true)
	haltStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// TUI implements UI using Bubble Tea for the interactive trace stepper and
// the plain tables for everything else.
type TUI struct {
	*SimpleUI
	input  io.Reader
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		SimpleUI: NewSimpleUI(cmd),
		input:    cmd.InOrStdin(),
		output:   cmd.OutOrStdout(),
	}
}

// DisplayTrace opens the stepper and blocks until the user quits.
func (t *TUI) DisplayTrace(ctx context.Context, execution m.Execution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(execution.Trace) == 0 {
		return t.SimpleUI.DisplayTrace(ctx, execution)
	}

	model := newTraceModel(execution)

	// Get initial terminal size
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	program := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithInput(t.input),
		tea.WithOutput(t.output),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("trace stepper: %w", err)
	}

	return nil
}

type traceKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	First    key.Binding
	Last     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newTraceKeyMap() traceKeyMap {
	return traceKeyMap{
		Next:     key.NewBinding(key.WithKeys("right", "l", "n", " "), key.WithHelp("→/l", "next")),
		Prev:     key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h", "prev")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "d"), key.WithHelp("d", "+10")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "u"), key.WithHelp("u", "-10")),
		First:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Last:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k traceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Help, k.Quit}
}

func (k traceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.PageDown, k.PageUp},
		{k.First, k.Last, k.Help, k.Quit},
	}
}

// traceModel is the Bubble Tea model for stepping through snapshots.
type traceModel struct {
	execution m.Execution
	cursor    int
	width     int
	height    int
	keys      traceKeyMap
	help      help.Model
	quitting  bool
}

func newTraceModel(execution m.Execution) traceModel {
	return traceModel{
		execution: execution,
		keys:      newTraceKeyMap(),
		help:      help.New(),
	}
}

func (tm traceModel) Init() tea.Cmd {
	return nil
}

func (tm traceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return tm.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return tm.handleKeyPress(msg)
	}

	return tm, nil
}

func (tm traceModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, tm.keys.Quit):
		tm.quitting = true
		return tm, tea.Quit
	case key.Matches(msg, tm.keys.Next):
		tm.cursor = tm.clamp(tm.cursor + 1)
	case key.Matches(msg, tm.keys.Prev):
		tm.cursor = tm.clamp(tm.cursor - 1)
	case key.Matches(msg, tm.keys.PageDown):
		tm.cursor = tm.clamp(tm.cursor + pageStep)
	case key.Matches(msg, tm.keys.PageUp):
		tm.cursor = tm.clamp(tm.cursor - pageStep)
	case key.Matches(msg, tm.keys.First):
		tm.cursor = 0
	case key.Matches(msg, tm.keys.Last):
		tm.cursor = tm.clamp(len(tm.execution.Trace) - 1)
	case key.Matches(msg, tm.keys.Help):
		tm.help.ShowAll = !tm.help.ShowAll
	}

	return tm, nil
}

func (tm traceModel) resize(width, height int) traceModel {
	tm.width = width
	tm.height = height
	tm.help.Width = width

	return tm
}

// window is how many codons fit on one line, four columns each.
func (tm traceModel) window() int {
	if tm.width <= 0 {
		return tokenWindow
	}

	return max(4, (tm.width-4)/4)
}

func (tm traceModel) clamp(i int) int {
	return max(0, min(i, len(tm.execution.Trace)-1))
}

func (tm traceModel) View() string {
	if tm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Helix - Trace Stepper"))
	b.WriteString("\n\n")

	if len(tm.execution.Trace) == 0 {
		b.WriteString("  No instructions executed\n")
		return b.String()
	}

	state := tm.execution.Trace[tm.cursor]
	codon, instruction := describeInstruction(tm.execution.Tokens, state.InstructionPointer)

	fmt.Fprintf(&b, "  %s\n", tm.execution.Genome.Path)
	fmt.Fprintf(&b, "  Step %d/%d · ip %d · %s %s\n\n",
		tm.cursor+1, len(tm.execution.Trace), state.InstructionPointer, codon, instruction)

	b.WriteString("  " + tm.renderTokens(state.InstructionPointer) + "\n\n")

	tm.renderState(&b, state)

	if tm.cursor == len(tm.execution.Trace)-1 {
		b.WriteString("\n  " + haltStyle.Render(fmt.Sprintf("halted: %s", tm.execution.Halt)) + "\n")
	}

	b.WriteString("\n  " + tm.help.View(tm.keys) + "\n")

	return b.String()
}

// renderTokens shows the codons around ip with the current one highlighted.
func (tm traceModel) renderTokens(ip int) string {
	tokens := tm.execution.Tokens
	window := tm.window()
	start := max(0, ip-window/2)
	end := min(len(tokens), start+window)

	parts := make([]string, 0, end-start+2)
	if start > 0 {
		parts = append(parts, "…")
	}

	for i := start; i < end; i++ {
		codon := string(tokens[i].Codon)

		switch {
		case i == ip:
			parts = append(parts, currentStyle.Render(codon))
		case tokens[i].Literal:
			parts = append(parts, literalStyle.Render(codon))
		default:
			parts = append(parts, codon)
		}
	}

	if end < len(tokens) {
		parts = append(parts, "…")
	}

	return strings.Join(parts, " ")
}

func (tm traceModel) renderState(b *strings.Builder, state m.VMState) {
	rows := [][2]string{
		{"position", fmt.Sprintf("(%g, %g)", state.Position.X, state.Position.Y)},
		{"rotation", fmt.Sprintf("%g°", state.Rotation)},
		{"scale", fmt.Sprintf("%g", state.Scale)},
		{"color", formatColor(state.Color)},
		{"stack", formatStack(state.Stack)},
		{"saved", fmt.Sprintf("%d state(s)", len(state.StateStack))},
		{"executed", fmt.Sprintf("%d", state.InstructionCount)},
	}

	for _, row := range rows {
		b.WriteString("  " + labelStyle.Render(row[0]) + row[1] + "\n")
	}
}
