//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRunAndSummaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "gaengine.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	run := RunRecord{
		RunID:          "run-1",
		Mode:           "NSGA3",
		Problem:        "zdt1",
		Seed:           7,
		PopulationSize: 92,
		GenerationMax:  200,
		Workers:        8,
		StartedAtUnix:  100,
	}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}

	loadedRun, ok, err := store.GetRun(ctx, run.RunID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatalf("expected run %s", run.RunID)
	}
	if loadedRun.Problem != run.Problem || loadedRun.PopulationSize != run.PopulationSize {
		t.Fatalf("unexpected run loaded: %+v", loadedRun)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != run.RunID {
		t.Fatalf("unexpected run list: %+v", runs)
	}

	summaries := []GenerationSummaryRecord{
		{Generation: 0, BestTotalCost: 50, AverageCost: 60},
		{Generation: 1, BestTotalCost: 40, AverageCost: 48},
	}
	if err := store.SaveGenerationSummary(ctx, run.RunID, summaries); err != nil {
		t.Fatalf("save summaries: %v", err)
	}
	loadedSummaries, ok, err := store.GetGenerationSummaries(ctx, run.RunID)
	if err != nil {
		t.Fatalf("get summaries: %v", err)
	}
	if !ok || len(loadedSummaries) != 2 {
		t.Fatalf("unexpected summaries loaded: %+v", loadedSummaries)
	}

	population := []byte(`[{"genes":[1,2,3],"cost":0.4}]`)
	if err := store.SaveFinalPopulation(ctx, run.RunID, population); err != nil {
		t.Fatalf("save final population: %v", err)
	}
	loadedPopulation, ok, err := store.GetFinalPopulation(ctx, run.RunID)
	if err != nil {
		t.Fatalf("get final population: %v", err)
	}
	if !ok || string(loadedPopulation) != string(population) {
		t.Fatalf("unexpected final population loaded: %s", loadedPopulation)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "gaengine.db")

	first := NewSQLiteStore(dbPath)
	if err := first.Init(ctx); err != nil {
		t.Fatalf("first init: %v", err)
	}
	run := RunRecord{RunID: "persisted-run", Problem: "sphere"}
	if err := first.SaveRun(ctx, run); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	second := NewSQLiteStore(dbPath)
	if err := second.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	t.Cleanup(func() {
		_ = second.Close()
	})

	loaded, ok, err := second.GetRun(ctx, run.RunID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if !ok || loaded.RunID != run.RunID {
		t.Fatalf("expected persisted run, got ok=%t value=%+v", ok, loaded)
	}
}
