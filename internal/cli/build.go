package cli

import (
	"fmt"

	"github.com/bharm16/prompt-builder-sub009/internal/config"
	"github.com/bharm16/prompt-builder-sub009/internal/engine"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/closedvocab"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/embedder"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/heuristic"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/merge"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/openvocab"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/patterns"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/semantic"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/taxonomy"
	"github.com/bharm16/prompt-builder-sub009/internal/output"
	"github.com/bharm16/prompt-builder-sub009/internal/output/file"
	"github.com/bharm16/prompt-builder-sub009/internal/output/stdout"
	"github.com/bharm16/prompt-builder-sub009/internal/output/webhook"
	"github.com/bharm16/prompt-builder-sub009/internal/vocab"
)

// buildEngine assembles the extraction engine from configuration.
func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	tax := taxonomy.Default()

	v := vocab.Default(tax)
	if cfg.VocabPath != "" {
		v = vocab.LoadFile(cfg.VocabPath, tax)
	}

	emb, err := embedder.New(embedder.Config{
		ModelPath:   cfg.ModelPath,
		VocabPath:   cfg.ModelVocabPath,
		LibraryPath: cfg.OnnxLibraryPath,
	})
	if err != nil {
		return nil, err
	}

	actions := heuristic.NewActions(
		semantic.New(emb, semantic.ActionClusters(), cfg.SimilarityFloor), cfg.SimilarityFloor)
	lighting := heuristic.NewLighting(
		semantic.New(emb, semantic.LightingClusters(), cfg.SimilarityFloor), cfg.SimilarityFloor)

	var open *openvocab.Client
	if len(cfg.WorkerCommand) > 0 {
		open = openvocab.NewClient(openvocab.Config{
			Command:   cfg.WorkerCommand,
			ModelPath: cfg.WorkerModelPath,
			Threshold: cfg.OpenVocabThreshold,
			Timeout:   cfg.OpenVocabTimeout(),
		}, openvocab.DefaultMapping(tax))
	}

	merger := merge.New(tax, merge.Options{
		SourcePriority: cfg.SourcePriority,
		Strategy:       cfg.MergeStrategy,
	})

	return engine.New(
		closedvocab.New(v),
		patterns.New(),
		actions,
		lighting,
		open,
		merger,
		engine.Options{
			UseOpenVocab: cfg.UseOpenVocab,
			UseActions:   cfg.UseActions,
			UseLighting:  cfg.UseLighting,
		},
	), nil
}

// buildOutput resolves the configured output sink.
func buildOutput(cfg *config.Config) (output.Output, error) {
	verbosity := output.ParseVerbosity(cfg.Verbosity)
	switch cfg.Output {
	case "", "stdout":
		return stdout.New(verbosity, false), nil
	case "file":
		if cfg.OutputPath == "" {
			return nil, fmt.Errorf("output_path is required for file output")
		}
		return file.New(cfg.OutputPath, verbosity)
	case "webhook":
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("webhook_url is required for webhook output")
		}
		return webhook.New(cfg.WebhookURL), nil
	default:
		return nil, fmt.Errorf("unknown output %q (stdout, file, webhook)", cfg.Output)
	}
}
