package ga

import (
	"math"
	"testing"
)

func TestNewGenerationSentinels(t *testing.T) {
	g := newGeneration[[]float64, sphereMiddle](5)
	if len(g.Chromosomes) != 5 {
		t.Fatalf("expected 5 chromosome slots, got %d", len(g.Chromosomes))
	}
	if !math.IsInf(g.BestTotalCost, 1) {
		t.Fatalf("expected +Inf best total cost, got %v", g.BestTotalCost)
	}
	if g.BestChromosomeIndex != -1 {
		t.Fatalf("expected best chromosome index -1, got %d", g.BestChromosomeIndex)
	}
}

func TestGaModeString(t *testing.T) {
	cases := map[GaMode]string{SOGA: "SOGA", IGA: "IGA", NSGA3: "NSGA3", GaMode(99): "unknown"}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("GaMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}

func TestStopReasonString(t *testing.T) {
	cases := map[StopReason]string{
		Undefined:      "Undefined",
		MaxGenerations: "MaxGenerations",
		StallAverage:   "StallAverage",
		StallBest:      "StallBest",
		UserRequest:    "UserRequest",
		StopReason(99): "unknown",
	}
	for reason, want := range cases {
		if got := reason.String(); got != want {
			t.Errorf("StopReason(%d).String() = %q, want %q", reason, got, want)
		}
	}
}
