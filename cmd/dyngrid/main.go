// Command dyngrid applies random alterations to a grid world from the
// terminal and prints the resulting layout and novelty field.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"dyngrid/internal/app"
	"dyngrid/internal/core"
	"dyngrid/internal/dynamic"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dyngrid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	steps := fs.Int("n", 10, "alterations to apply")
	seed := fs.Int64("seed", 1337, "seed of the first run (overrides a seed from -set or the environment)")
	runs := fs.Int("runs", 1, "independent runs on consecutive seeds")
	workers := fs.Int("workers", runtime.NumCPU(), "parallel runs")
	envFile := fs.String("env", ".env", "dotenv file with "+app.EnvPrefix+"* overrides")
	novelty := fs.Bool("novelty", true, "print the novelty field of single runs")
	verbose := fs.Bool("v", false, "log every alteration")
	var overrides app.KVList
	fs.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	params, err := app.LoadEnvOverrides(app.EnvPrefix, *envFile)
	if err != nil {
		logger.Error("load environment overrides", "err", err)
		return 1
	}
	set, err := overrides.Map()
	if err != nil {
		logger.Error("parse overrides", "err", err)
		return 2
	}
	for k, v := range set {
		params[k] = v
	}
	if t, ok := params["table"]; ok {
		// FromMap silently keeps the default table; surface the reason here.
		if _, err := dynamic.ParseProbabilityTable(t); err != nil {
			logger.Error("invalid table", "err", err)
			return 2
		}
	}

	cfg := dynamic.FromMap(params)
	cfg.Logger = logger
	first := cfg.Seed
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			first = *seed
		}
	})
	seeds := make([]int64, max(*runs, 1))
	for i := range seeds {
		seeds[i] = first + int64(i)
	}

	reports, err := dynamic.RunSeeds(ctx, cfg, seeds, *steps, *workers)
	if err != nil {
		logger.Error("alteration run failed", "err", err)
		return 1
	}

	if len(reports) == 1 {
		printReport(stdout, reports[0], *novelty)
	} else {
		printSummary(stdout, reports)
	}
	return 0
}

func printReport(w io.Writer, rep dynamic.Report, withNovelty bool) {
	fmt.Fprintf(w, "seed %d: %d applied, %d failed, %d cells changed, solvable=%t\n",
		rep.Seed, rep.Applied, rep.Failed, rep.Changed, rep.Solvable)
	fmt.Fprintln(w, countsLine(rep.Counts))
	fmt.Fprint(w, renderGrid(rep.Grid, rep.Start))
	if !withNovelty {
		return
	}
	fmt.Fprintf(w, "novelty (peak %.3f)\n", rep.Peak)
	for y := 0; y < rep.Grid.H; y++ {
		row := rep.Novelty[y*rep.Grid.W : (y+1)*rep.Grid.W]
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%5.2f", v)
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
}

func printSummary(w io.Writer, reports []dynamic.Report) {
	fmt.Fprintf(w, "%-8s %7s %6s %7s %8s  %s\n", "seed", "applied", "failed", "changed", "solvable", "categories")
	for _, rep := range reports {
		fmt.Fprintf(w, "%-8d %7d %6d %7d %8t  %s\n",
			rep.Seed, rep.Applied, rep.Failed, rep.Changed, rep.Solvable, countsLine(rep.Counts))
	}
}

func countsLine(counts map[dynamic.Category]int) string {
	parts := make([]string, 0, len(dynamic.Categories))
	for _, c := range dynamic.Categories {
		if n := counts[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", c, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// renderGrid draws the grid with the start cell marked 'A'.
func renderGrid(g *core.Grid, start core.Point) string {
	rows := strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
	r := []rune(rows[start.Y])
	r[start.X] = 'A'
	rows[start.Y] = string(r)
	return strings.Join(rows, "\n") + "\n"
}
