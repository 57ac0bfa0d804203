package ga

import "math"

// stopState tracks the two stall counters across generations; it starts at
// zero with the Engine and is updated once per recorded generation.
type stopState struct {
	bestStallCount    int
	averageStallCount int
}

// update advances the stall counters by comparing the last two summaries, in
// every mode. It is a no-op until two summaries exist: generation 0 alone
// cannot show a stall, so the first comparison happens at generation 1.
func (s *stopState) update(history []GenerationSummary, tolBest, tolAverage float64) {
	if len(history) < 2 {
		return
	}
	prev := history[len(history)-2]
	curr := history[len(history)-1]

	if math.Abs(prev.BestTotalCost-curr.BestTotalCost) < tolBest {
		s.bestStallCount++
	} else {
		s.bestStallCount = 0
	}
	if math.Abs(prev.AverageCost-curr.AverageCost) < tolAverage {
		s.averageStallCount++
	} else {
		s.averageStallCount = 0
	}
}

// evaluate applies the fixed priority order from spec §4.10:
// MaxGenerations, then StallAverage, then StallBest, then UserRequest.
func (s *stopState) evaluate(generationStep, generationMax, averageStallMax, bestStallMax int, userRequestedStop bool) StopReason {
	if generationStep >= generationMax {
		return MaxGenerations
	}
	if s.averageStallCount >= averageStallMax {
		return StallAverage
	}
	if s.bestStallCount >= bestStallMax {
		return StallBest
	}
	if userRequestedStop {
		return UserRequest
	}
	return Undefined
}
