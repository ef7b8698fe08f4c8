// Package cli implements the spanmark command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bharm16/prompt-builder-sub009/internal/config"
	"github.com/bharm16/prompt-builder-sub009/internal/logging"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "spanmark",
	Short: "spanmark - taxonomy span extraction for video-shot prompts",
	Long: `spanmark labels spans of video-shot prompt text with taxonomy roles:
"35mm" becomes camera.lens, "golden hour" becomes lighting.timeOfDay,
"the camera slowly pans" becomes camera.movement.

Extraction runs in tiers: exact vocabulary and pattern matching first,
then verb and lighting heuristics, then an optional open-vocabulary
model worker. Overlapping candidates are merged deterministically.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("spanmark v0.1.0")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $SPANMARK_CONFIG)")
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration, honoring the --config flag, and
// initializes logging. outputIsStdout keeps the log stream off stdout when
// stdout carries NDJSON results.
func loadConfig(outputIsStdout bool) (*config.Config, error) {
	if cfgFile != "" {
		os.Setenv("SPANMARK_CONFIG", cfgFile)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(outputIsStdout, logging.ParseLevel(cfg.LogLevel))
	return cfg, nil
}
