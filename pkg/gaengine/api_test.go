package gaengine

import (
	"context"
	"errors"
	"testing"
)

func TestClientRunSphereAndList(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	summary, err := client.Run(context.Background(), RunRequest{
		Problem:     "sphere",
		Population:  20,
		Generations: 5,
		Seed:        1,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("expected a generated run id")
	}
	if summary.Generations == 0 {
		t.Fatal("expected at least one completed generation")
	}

	records, err := client.Runs(context.Background())
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(records) != 1 || records[0].RunID != summary.RunID {
		t.Fatalf("expected the run in the store, got %+v", records)
	}

	history, err := client.History(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != summary.Generations+1 {
		t.Fatalf("expected %d history entries (generation 0 plus each SolveNext), got %d", summary.Generations+1, len(history))
	}
}

func TestClientRunSphereRejectHonorsRunID(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	summary, err := client.Run(context.Background(), RunRequest{
		RunID:       "fixed-run-id",
		Problem:     "sphere-reject",
		Population:  15,
		Generations: 3,
		Seed:        2,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID != "fixed-run-id" {
		t.Fatalf("expected caller-supplied run id to be honored, got %s", summary.RunID)
	}
	if summary.BestGenes[0] < 0 {
		t.Fatalf("rejection rule violated in final best genes: %v", summary.BestGenes)
	}
}

func TestClientRunZDT1ReportsParetoFront(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	summary, err := client.Run(context.Background(), RunRequest{
		Problem:     "zdt1",
		Population:  24,
		Generations: 5,
		Seed:        7,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.ParetoFrontSize == 0 {
		t.Fatal("expected a nonzero pareto front size")
	}
}

func TestClientRunUnsupportedProblem(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	_, err = client.Run(context.Background(), RunRequest{Problem: "not-a-problem"})
	if !errors.Is(err, ErrUnsupportedProblem) {
		t.Fatalf("expected ErrUnsupportedProblem, got %v", err)
	}
}

func TestClientStopUnknownRunID(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Stop("does-not-exist"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestClientHistoryUnknownRunID(t *testing.T) {
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if _, err := client.History(context.Background(), "does-not-exist"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}
