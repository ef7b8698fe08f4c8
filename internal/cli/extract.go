package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bharm16/prompt-builder-sub009/internal/input"
	"github.com/bharm16/prompt-builder-sub009/internal/pipeline"
)

var (
	extractOutput  string
	extractPath    string
	extractWebhook string
	extractBatch   bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract labeled spans from prompt text",
	Long: `Extract reads prompt documents, one per line, from a file or from
stdin, runs the tiered extraction engine over each, and writes NDJSON
extractions to the configured output.

Example:
  echo "a 35mm close-up at golden hour" | spanmark extract
  spanmark extract prompts.txt --output file --output-path spans.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractOutput, "output", "", "output sink: stdout, file, webhook")
	extractCmd.Flags().StringVar(&extractPath, "output-path", "", "destination path for file output")
	extractCmd.Flags().StringVar(&extractWebhook, "webhook-url", "", "destination URL for webhook output")
	extractCmd.Flags().BoolVar(&extractBatch, "batch", false, "read all input before processing")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	if extractOutput != "" {
		cfg.Output = extractOutput
	}
	if extractPath != "" {
		cfg.OutputPath = extractPath
	}
	if extractWebhook != "" {
		cfg.WebhookURL = extractWebhook
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	out, err := buildOutput(cfg)
	if err != nil {
		return err
	}

	var src input.Source
	if len(args) == 1 {
		src = input.NewFile(args[0])
	} else {
		src = input.NewStdin()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(src, eng, out)
	defer p.Close()

	if extractBatch {
		err = p.Batch(ctx)
	} else {
		err = p.Stream(ctx)
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("extract: %w", err)
	}
	return nil
}
