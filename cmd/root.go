package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jsphweid/partwise/logging"
	"github.com/jsphweid/partwise/parse"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "partwise",
	Short: "Reads, rewrites and exports MusicXML scores",
	Long: `partwise reads partwise MusicXML (.musicxml, .xml or compressed .mxl),
writes it back out in a canonical form and exports Standard MIDI Files.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(logging.ParseLevel(logLevel), logging.ParseFormat(logFormat))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "text or json")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// parseOptions reports skipped elements at debug level.
func parseOptions() parse.Options {
	return parse.Options{
		OnDrop: func(path string) {
			logging.DroppedElement(path)
		},
	}
}
