package pipeline

import "sync"

// RunStats tracks aggregate counters and byte totals across a batch run.
// Jobs update it concurrently from pool workers; read the fields only
// after the pool has drained.
type RunStats struct {
	mu sync.Mutex

	Total       int
	Compressed  int
	Skipped     int
	Failed      int
	InputBytes  int64
	OutputBytes int64
}

// AddCompressed records one successful compression and its byte sizes.
func (s *RunStats) AddCompressed(in, out int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Compressed++
	s.InputBytes += in
	s.OutputBytes += out
}

// AddSkipped records one skipped entry.
func (s *RunStats) AddSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
}

// AddFailed records one failed entry.
func (s *RunStats) AddFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
}

// SpaceSaved returns the aggregate byte difference between inputs and
// outputs. Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.InputBytes - s.OutputBytes
}
