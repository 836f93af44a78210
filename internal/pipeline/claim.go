package pipeline

import "sync"

// ClaimTable tracks output paths claimed by jobs so that two jobs whose
// computed outputs collide cannot clobber each other's result. The first
// claim wins and lasts for the whole run: at most one job may ever write
// a given output path per batch. All methods are goroutine-safe.
type ClaimTable struct {
	mu     sync.Mutex
	owners map[string]string // output path → input path that owns it
}

// NewClaimTable creates a ready-to-use table.
func NewClaimTable() *ClaimTable {
	return &ClaimTable{owners: make(map[string]string)}
}

// Claim records input as the owner of output. It returns false when a
// different input already holds the claim; claiming the same pair again
// succeeds.
func (ct *ClaimTable) Claim(output, input string) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	owner, exists := ct.owners[output]
	if exists && owner != input {
		return false
	}
	ct.owners[output] = input
	return true
}
