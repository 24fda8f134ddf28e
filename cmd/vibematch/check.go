package main

import (
	"fmt"
	"io"
	"os"

	"github.com/JaimeStill/vibematch/internal/background"
	"github.com/JaimeStill/vibematch/internal/config"
	"github.com/JaimeStill/vibematch/internal/vocabulary"
	"github.com/JaimeStill/vibematch/pkg/formatting"
)

// runCheck reports the resolved settings and verifies that model files exist
// for the configured background provider.
func runCheck(w io.Writer, cfg *config.Config) error {
	fmt.Fprintf(w, "agent:       %s (%s/%s)\n", cfg.Agent.Name, cfg.Agent.Provider.Name, cfg.Agent.Model.Name)
	fmt.Fprintf(w, "vocabulary:  %d labels, fallback %q\n", vocabulary.Default().Len(), cfg.Pipeline.FallbackLabel)
	fmt.Fprintf(w, "pipeline:    %d attempts, %s backoff, capacity %d\n",
		cfg.Pipeline.MaxAttempts, cfg.Pipeline.Backoff, cfg.Pipeline.Capacity)
	fmt.Fprintf(w, "max upload:  %s\n", formatting.FormatBytes(cfg.API.MaxUploadSizeBytes(), 0))
	fmt.Fprintf(w, "background:  %s\n", cfg.Background.Provider)

	if cfg.Background.Provider != background.ProviderONNX {
		return nil
	}

	if err := describeFile(w, "model", cfg.Background.ModelPath); err != nil {
		return err
	}
	if cfg.Background.LibraryPath != "" {
		if err := describeFile(w, "runtime", cfg.Background.LibraryPath); err != nil {
			return err
		}
	}

	return nil
}

func describeFile(w io.Writer, label, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", label, path, err)
	}
	fmt.Fprintf(w, "  %-10s %s (%s)\n", label+":", path, formatting.FormatBytes(info.Size(), 1))
	return nil
}
