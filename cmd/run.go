package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"helix.dev/pkg/helix/internal/domain"
	m "helix.dev/pkg/helix/internal/model"
)

var runParallelFlag int
var runWidthFlag int
var runHeightFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Execute genomes and render them",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				Paths:    parsePaths(args),
				Output:   m.Path(viper.GetString(outputFlagName)),
				Parallel: viper.GetInt(runParallelConfigKey),
				Width:    viper.GetInt(renderWidthKey),
				Height:   viper.GetInt(renderHeightKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of genomes executed concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().IntVar(&runWidthFlag, widthFlagName, viper.GetInt(renderWidthKey), "image width in pixels")
	bindFlagToConfig(cmd.Flags().Lookup(widthFlagName), renderWidthKey)

	cmd.Flags().IntVar(&runHeightFlag, heightFlagName, viper.GetInt(renderHeightKey), "image height in pixels")
	bindFlagToConfig(cmd.Flags().Lookup(heightFlagName), renderHeightKey)
}
