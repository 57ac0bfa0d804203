package storage

import (
	"context"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]RunRecord
	summaries   map[string][]GenerationSummaryRecord
	finalPop    map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]RunRecord)
	s.summaries = make(map[string][]GenerationSummaryRecord)
	s.finalPop = make(map[string][]byte)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.SchemaVersion = CurrentSchemaVersion
	run.CodecVersion = CurrentCodecVersion
	s.runs[run.RunID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, runID string) (RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAtUnix < runs[j].StartedAtUnix })
	return runs, nil
}

func (s *MemoryStore) SaveGenerationSummary(_ context.Context, runID string, summaries []GenerationSummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]GenerationSummaryRecord, len(summaries))
	for i, summary := range summaries {
		summary.SchemaVersion = CurrentSchemaVersion
		summary.CodecVersion = CurrentCodecVersion
		copied[i] = summary
	}
	s.summaries[runID] = copied
	return nil
}

func (s *MemoryStore) GetGenerationSummaries(_ context.Context, runID string) ([]GenerationSummaryRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries, ok := s.summaries[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]GenerationSummaryRecord, len(summaries))
	copy(copied, summaries)
	return copied, true, nil
}

func (s *MemoryStore) SaveFinalPopulation(_ context.Context, runID string, population []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := append([]byte(nil), population...)
	s.finalPop[runID] = copied
	return nil
}

func (s *MemoryStore) GetFinalPopulation(_ context.Context, runID string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	population, ok := s.finalPop[runID]
	if !ok {
		return nil, false, nil
	}
	copied := append([]byte(nil), population...)
	return copied, true, nil
}
