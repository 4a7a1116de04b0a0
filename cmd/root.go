// Package cmd provides the root command and CLI setup for helix.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"helix.dev/pkg/helix/internal/adapter"
	"helix.dev/pkg/helix/internal/controller"
	"helix.dev/pkg/helix/internal/domain"
	m "helix.dev/pkg/helix/internal/model"
)

var fsAdapter adapter.GenomeFSAdapter
var traceStore adapter.TraceStore
var lexer domain.Lexer
var executor domain.Executor
var mutagen domain.Mutagen
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that write artifacts.
var outputDirFlag string

// verboseFlag enables debug logging mirrored to stderr.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalGenomeFSAdapter()
	traceStore = adapter.NewTraceStore(fsAdapter, configuredTraceFormat())
	lexer = domain.NewLexer()
	executor = domain.NewExecutor(lexer, configuredVMOptions()...)
	mutagen = domain.NewMutagen(configuredMutagenOptions()...)
	workflow = domain.NewWorkflow(
		fsAdapter,
		traceStore,
		ui,
		executor,
		mutagen,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...              recursively scan current directory for .genome/.dna files
  - ./genomes/...      recursively scan the genomes directory
  - a.genome b.dna     explicit files`

const rootLongDescription = `Helix runs small programs written as DNA-like genomes. Every codon
(three bases of A, T, G, C or U) maps to an instruction of a stack machine
that draws shapes, and genomes can be mutated to see how a change in the
code changes the drawing.

` + pathPatternsHelp

const runLongDescription = `Execute genomes and write a PNG image and an execution trace for each
one to the output directory (default: every genome under the current
directory).

` + pathPatternsHelp

const checkLongDescription = `Tokenize and validate genomes without drawing anything.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "helix",
		Short:        "Codon-based genome programming language",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for images and traces",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level and mirror logs to stderr")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func configuredTraceFormat() adapter.TraceFormat {
	format, err := adapter.ParseTraceFormat(viper.GetString(traceFormatKey))
	if err != nil {
		slog.Warn("falling back to json traces", "error", err)
		return adapter.TraceJSON
	}

	return format
}

func configuredVMOptions() []domain.VMOption {
	return []domain.VMOption{
		domain.WithMaxInstructions(viper.GetInt(vmMaxInstructionsKey)),
		domain.WithSeed(viper.GetInt64(vmSeedKey)),
	}
}

// configuredMutagenOptions seeds the mutation engine when mutate.seed is set,
// so mutations can be reproduced.
func configuredMutagenOptions() []domain.MutagenOption {
	seed := viper.GetUint64(mutateSeedKey)
	if seed == 0 {
		return nil
	}

	return []domain.MutagenOption{domain.WithRand(rand.New(rand.NewPCG(seed, seed)))}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
