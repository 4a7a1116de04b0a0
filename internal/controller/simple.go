package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "helix.dev/pkg/helix/internal/model"
)

// SimpleUI implements UI by printing tables to the command's output.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
	cfg StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, cfg: newStartConfig(nil)}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cfg = newStartConfig(options)

	if s.cfg.mode == ModeRun && s.cfg.workers > 1 {
		s.printf("Running with %d worker(s)\n", s.cfg.workers)
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayTokens prints one row per token.
func (s *SimpleUI) DisplayTokens(ctx context.Context, genome m.Genome, tokens []m.Token) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s: %d codon(s)\n%s", genome.Path, len(tokens), renderTokensTable(tokens))
}

func renderTokensTable(tokens []m.Token) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"#", "Codon", "Instruction", "Value", "Line"})

	for i, token := range tokens {
		instruction, value := token.Opcode.String(), ""
		if token.Literal {
			instruction, value = "literal", strconv.Itoa(token.Value)
		}

		table.Append([]string{strconv.Itoa(i), string(token.Codon), instruction, value, strconv.Itoa(token.Line)})
	}

	table.Render()

	return buf.String()
}

// DisplayDiagnostics prints errors and warnings, or a confirmation when
// there are none.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, genome m.Genome, diagnostics []m.Diagnostic) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(diagnostics) == 0 {
		s.printf("%s: ok\n", genome.Path)
		return
	}

	var buf bytes.Buffer

	table := newTable(&buf, []string{"Severity", "Position", "Message"})
	for _, d := range diagnostics {
		table.Append([]string{string(d.Severity), strconv.Itoa(d.Position), d.Message})
	}

	table.Render()

	s.printf("%s:\n%s", genome.Path, buf.String())
}

// DisplayCalls prints the renderer calls a run made.
func (s *SimpleUI) DisplayCalls(ctx context.Context, calls []m.RenderCall) {
	if err := ctx.Err(); err != nil {
		return
	}

	var b strings.Builder
	for i, call := range calls {
		fmt.Fprintf(&b, "%4d  %s\n", i, call)
	}

	s.printf("%s", b.String())
}

// DisplayRunReport prints one line as each genome finishes.
func (s *SimpleUI) DisplayRunReport(ctx context.Context, report m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	if report.Err != nil {
		s.printf("✗ %s: %v\n", report.Genome.Path, report.Err)
		return
	}

	s.printf("✓ %s: %d instruction(s), halted on %s\n", report.Genome.Path, report.Instructions, report.Halt)
}

// DisplayRunSummary prints the batch table.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, reports []m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderRunSummaryTable(reports))
}

func renderRunSummaryTable(reports []m.RunReport) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Genome", "Instructions", "Halt", "Warnings", "Image", "Status"})

	failed := 0

	for _, report := range reports {
		status := "ok"
		if report.Err != nil {
			status = "failed"
			failed++
		}

		table.Append([]string{
			string(report.Genome.Path),
			strconv.Itoa(report.Instructions),
			string(report.Halt),
			strconv.Itoa(report.Warnings),
			string(report.Artifacts.Image),
			status,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Genomes %d", len(reports)), "", "", "", "",
		fmt.Sprintf("%d failed", failed),
	})
	table.Render()

	return buf.String()
}

// DisplayMutation prints the mutation, a unified diff and its effect on the run.
func (s *SimpleUI) DisplayMutation(ctx context.Context, impact m.MutationImpact) {
	if err := ctx.Err(); err != nil {
		return
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", impact.Mutation.Description)
	fmt.Fprintf(&b, "%s\n", impact.Mutation.Mutated)
	b.WriteString(codonDiff(impact.Mutation.Original, impact.Mutation.Mutated))
	b.WriteString("\n")

	var buf bytes.Buffer

	table := newTable(&buf, []string{"", "Original", "Mutated"})
	table.Append([]string{"instructions", strconv.Itoa(impact.OriginalInstructions), strconv.Itoa(impact.MutatedInstructions)})
	table.Append([]string{"halt", string(impact.OriginalHalt), string(impact.MutatedHalt)})
	table.Render()
	b.WriteString(buf.String())

	visibility := "invisible"
	if impact.Visible() {
		visibility = "visible"
	}

	fmt.Fprintf(&b, "\nChanged draw calls: %d (%s)\n", impact.ChangedDrawCalls, visibility)

	for _, d := range impact.MutatedDiagnostics {
		fmt.Fprintf(&b, "  %s\n", d)
	}

	s.printf("%s", b.String())
}

// DisplayMutationSummary prints how many mutations of a batch were visible.
func (s *SimpleUI) DisplayMutationSummary(ctx context.Context, summary m.MutationSummary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\nMutation score: %.1f%% (%d of %d mutation(s) visible)\n",
		summary.Score()*100, summary.Visible, summary.Total)
}

// codonDiff renders a unified diff with one codon per line.
func codonDiff(original, mutated string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        codonLines(original),
		B:        codonLines(mutated),
		FromFile: "original",
		ToFile:   "mutated",
		Context:  2,
	})
	if err != nil {
		return ""
	}

	return diff
}

func codonLines(genome string) []string {
	fields := strings.Fields(genome)
	lines := make([]string, 0, len(fields))

	for _, f := range fields {
		lines = append(lines, f+"\n")
	}

	return lines
}

// DisplayDifferences prints codon differences between two genomes.
func (s *SimpleUI) DisplayDifferences(ctx context.Context, differences []m.Difference) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(differences) == 0 {
		s.printf("Genomes are identical\n")
		return
	}

	var buf bytes.Buffer

	table := newTable(&buf, []string{"Position", "Original", "Mutated"})
	for _, d := range differences {
		table.Append([]string{strconv.Itoa(d.Position), orDash(d.Original), orDash(d.Mutated)})
	}

	table.SetFooter([]string{fmt.Sprintf("%d difference(s)", len(differences)), "", ""})
	table.Render()

	s.printf("%s", buf.String())
}

// DisplayTrace prints every snapshot of the execution.
func (s *SimpleUI) DisplayTrace(ctx context.Context, execution m.Execution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := newTable(&buf, []string{"Step", "IP", "Codon", "Instruction", "Stack", "Position", "Rotation", "Scale", "Color"})

	for i, state := range execution.Trace {
		codon, instruction := describeInstruction(execution.Tokens, state.InstructionPointer)
		table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(state.InstructionPointer),
			codon,
			instruction,
			formatStack(state.Stack),
			fmt.Sprintf("(%g, %g)", state.Position.X, state.Position.Y),
			fmt.Sprintf("%g", state.Rotation),
			fmt.Sprintf("%g", state.Scale),
			formatColor(state.Color),
		})
	}

	table.Render()

	s.printf("%s\nHalted on %s after %d instruction(s)\n", buf.String(), execution.Halt, execution.Instructions())

	return nil
}

func describeInstruction(tokens []m.Token, ip int) (codon, instruction string) {
	if ip < 0 || ip >= len(tokens) {
		return "", ""
	}

	token := tokens[ip]
	if token.Literal {
		return string(token.Codon), "literal"
	}

	return string(token.Codon), token.Opcode.String()
}

func formatStack(stack []float64) string {
	parts := make([]string, 0, len(stack))
	for _, v := range stack {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}

	return "[" + strings.Join(parts, " ") + "]"
}

func formatColor(c m.HSL) string {
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", c.H, c.S, c.L)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
