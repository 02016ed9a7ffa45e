package naming

import (
	"strconv"
	"sync"
)

// Registry hands out container IDs and unique label names
type Registry struct {
	mu          sync.Mutex
	containerID int
	labelCount  map[string]int
}

// Default is the registry used by the package-level builder helpers
var Default = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		labelCount: make(map[string]int),
	}
}

// NextContainerID returns the next container ID, starting at 1.
// IDs are never reused for the lifetime of the registry.
func (r *Registry) NextContainerID() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.containerID++
	return r.containerID
}

// UniqueLabelName returns name the first time it is seen and name+count
// afterwards, so the second "db" becomes "db2".
func (r *Registry) UniqueLabelName(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.labelCount[name]++
	count := r.labelCount[name]
	if count == 1 {
		return name
	}
	return name + strconv.Itoa(count)
}

// LabelCount returns how many times name has been requested
func (r *Registry) LabelCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.labelCount[name]
}

// Reset forgets every issued ID and label name
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.containerID = 0
	r.labelCount = make(map[string]int)
}
