package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var dataFlag string
	var encodingsFlag []string
	var quietFlag bool

	ctx := newCommandContext(&configFlag, &dataFlag, &encodingsFlag, &quietFlag)

	rootCmd := &cobra.Command{
		Use:           "moviedash",
		Short:         "Explore the IMDb Indian movies dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (TOML)")
	rootCmd.PersistentFlags().StringVarP(&dataFlag, "data", "d", "", "Path to the movies CSV")
	rootCmd.PersistentFlags().StringSliceVar(&encodingsFlag, "encodings", nil, "Encodings to try, in order (default utf-8,latin1,iso-8859-1)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress log output")

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newTopCommand(ctx))
	rootCmd.AddCommand(newGenresCommand(ctx))
	rootCmd.AddCommand(newYearsCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newRateCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}
