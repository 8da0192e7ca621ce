package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/tidwall/sjson"

	"github.com/toefel18/patan"
	"github.com/toefel18/patan/internal/config"
	"github.com/toefel18/patan/internal/loadtest"
	"github.com/toefel18/patan/internal/tui"
)

// runStress runs the load-test harness against a fresh synchronized
// instance. Flags override the stress section of the config.
func runStress(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("stress", flag.ContinueOnError)
	configPath, debug := commonFlags(fs)
	writers := fs.Int("writers", 0, "writer goroutines (overrides config)")
	iterations := fs.Int("iterations", 0, "writes per writer (overrides config)")
	resetters := fs.Int("resetters", -1, "snapshot-and-reset goroutines (overrides config)")
	readers := fs.Int("readers", -1, "snapshot reader goroutines (overrides config)")
	rate := fs.Float64("rate", 0, "snapshot reads per second across all readers, 0 for unlimited")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := loadConfig(*configPath, *debug)
	if err != nil {
		return err
	}
	opts := stressOptions(cfg.Stress, *writers, *iterations, *resetters, *readers)
	opts.ReadsPerSecond = *rate
	opts.Logger = logger.Zerolog()

	result, runErr := loadtest.Run(ctx, patan.New(), opts)
	if *asJSON {
		out, err := resultJSON(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(out))
	} else {
		printStressResult(tui.NewPrinter(stdout), result)
	}
	return runErr
}

func printStressResult(p *tui.Printer, r loadtest.Result) {
	p.PrintHeader("Stress run " + r.RunID)
	p.PrintInfo(fmt.Sprintf("wrote %d values per section in %s", r.Written.Occurrences, r.Elapsed))
	p.PrintInfo(fmt.Sprintf("%d drains, %d snapshot reads", r.Drains, r.Reads))
	p.PrintInfo(fmt.Sprintf("drained %d + remaining %d occurrences", r.Drained.Occurrences, r.Remaining.Occurrences))
	if r.Conserved() {
		p.PrintSuccess("every write counted exactly once")
		return
	}
	p.PrintError(fmt.Sprintf("writes not conserved: written %+v, drained %+v, remaining %+v", r.Written, r.Drained, r.Remaining))
}

func stressOptions(cfg config.StressConfig, writers, iterations, resetters, readers int) loadtest.Options {
	opts := loadtest.Options{
		Writers:    cfg.Writers,
		Iterations: cfg.Iterations,
		Resetters:  cfg.Resetters,
		Readers:    cfg.Readers,
		Name:       cfg.Name,
	}
	if writers > 0 {
		opts.Writers = writers
	}
	if iterations > 0 {
		opts.Iterations = iterations
	}
	if resetters >= 0 {
		opts.Resetters = resetters
	}
	if readers >= 0 {
		opts.Readers = readers
	}
	return opts
}

func resultJSON(r loadtest.Result) ([]byte, error) {
	doc := []byte("{}")
	fields := []struct {
		path  string
		value any
	}{
		{"run_id", r.RunID},
		{"written.samples", r.Written.Samples},
		{"written.durations", r.Written.Durations},
		{"written.occurrences", r.Written.Occurrences},
		{"drained.samples", r.Drained.Samples},
		{"drained.durations", r.Drained.Durations},
		{"drained.occurrences", r.Drained.Occurrences},
		{"remaining.samples", r.Remaining.Samples},
		{"remaining.durations", r.Remaining.Durations},
		{"remaining.occurrences", r.Remaining.Occurrences},
		{"drains", r.Drains},
		{"reads", r.Reads},
		{"elapsed_ms", float64(r.Elapsed.Microseconds()) / 1000},
		{"conserved", r.Conserved()},
	}
	for _, f := range fields {
		var err error
		if doc, err = sjson.SetBytes(doc, f.path, f.value); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", f.path, err)
		}
	}
	return doc, nil
}
