package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"gaengine/pkg/gaengine"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	case "stop":
		return runStop(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	problem := fs.String("problem", "sphere", "demo problem: sphere|sphere-reject|zdt1")
	runID := fs.String("run-id", "", "explicit run id (optional, defaults to a generated uuid)")
	population := fs.Int("pop", 50, "population size")
	generations := fs.Int("gens", 100, "generation count")
	eliteCount := fs.Int("elite", 0, "elite count (SOGA/IGA only; 0 derives population/10)")
	seed := fs.Int64("seed", 1, "rng seed")
	storeKind := fs.String("store", "memory", "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gaengine.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := gaengine.New(gaengine.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Run(ctx, gaengine.RunRequest{
		RunID:       *runID,
		Problem:     *problem,
		Population:  *population,
		Generations: *generations,
		EliteCount:  *eliteCount,
		Seed:        *seed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run_id=%s problem=%s stop_reason=%s generations=%d best_total_cost=%v\n",
		summary.RunID, summary.Problem, summary.StopReason, summary.Generations, summary.BestTotalCost)
	if summary.ParetoFrontSize > 0 {
		fmt.Printf("pareto_front_size=%d\n", summary.ParetoFrontSize)
	}
	fmt.Printf("best_genes=%v\n", summary.BestGenes)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", "memory", "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gaengine.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := gaengine.New(gaengine.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	records, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	for _, r := range records {
		fmt.Printf("%s\tproblem=%s\tmode=%s\tstop_reason=%s\tbest_total_cost=%v\tgenerations=%d\n",
			r.RunID, r.Problem, r.Mode, r.StopReason, r.BestTotalCost, r.Generations)
	}
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	storeKind := fs.String("store", "memory", "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gaengine.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("history requires exactly one positional argument: <run-id>")
	}
	runID := fs.Arg(0)

	client, err := gaengine.New(gaengine.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	entries, err := client.History(ctx, runID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("generation=%d best_total_cost=%v average_cost=%v\n", e.Generation, e.BestTotalCost, e.AverageCost)
	}
	return nil
}

// runStop is wired for completeness but only useful within the same process
// that registered the run: the run registry lives in a Client's memory, not
// in the Store, so a stop issued from a freshly started gactl invocation has
// nothing to cancel. It is kept for programmatic embedders of pkg/gaengine
// that share one long-lived Client across goroutines.
func runStop(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("stop", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("stop requires exactly one positional argument: <run-id>")
	}
	return fmt.Errorf("stop requires a long-lived process holding the run's Client; run-id %s is not reachable from a new gactl invocation", fs.Arg(0))
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: gactl <run|runs|history|stop> [flags]", msg)
}
