package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/vibematch/internal/pipeline"
)

type entry struct {
	File   string           `json:"file"`
	Result *pipeline.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
	Kind   string           `json:"kind,omitempty"`
}

// runBatch predicts every file with at most limit runs in flight. Per-file
// failures are recorded on the entry and never stop the rest of the batch.
func runBatch(ctx context.Context, sys pipeline.System, files []string, limit int) []entry {
	entries := make([]entry, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, file := range files {
		g.Go(func() error {
			entries[i] = predictFile(gctx, sys, file)
			return nil
		})
	}

	g.Wait()
	return entries
}

func predictFile(ctx context.Context, sys pipeline.System, file string) entry {
	e := entry{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		e.Error = err.Error()
		e.Kind = pipeline.KindNotFound
		return e
	}

	result, err := sys.Predict(ctx, data)
	if err != nil {
		e.Error = err.Error()
		e.Kind = pipeline.Kind(err)
		return e
	}

	e.Result = result
	return e
}

// report writes entries in input order and returns how many failed.
func report(w io.Writer, entries []entry, asJSON bool) int {
	failed := 0
	enc := json.NewEncoder(w)

	for _, e := range entries {
		if e.Error != "" {
			failed++
		}

		if asJSON {
			enc.Encode(e)
			continue
		}

		switch {
		case e.Error != "":
			fmt.Fprintf(w, "%s: error (%s): %s\n", e.File, e.Kind, e.Error)
		case e.Result.Label == "":
			fmt.Fprintf(w, "%s: no label (%s, %d attempts)\n%s\n", e.File, e.Result.Outcome, e.Result.Attempts, e.Result.Raw)
		default:
			fmt.Fprintf(w, "%s: %s (%s, %d attempts)\n", e.File, e.Result.Label, e.Result.Outcome, e.Result.Attempts)
			if e.Result.Explanation != "" {
				fmt.Fprintf(w, "  %s\n", e.Result.Explanation)
			}
		}
	}

	return failed
}
