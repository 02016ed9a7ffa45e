package stitch

import (
	"sync"

	"github.com/cuemby/stitch/pkg/types"
)

var (
	currentMu sync.RWMutex
	current   = &Deployment{adminACL: []string{}}
)

// CreateDeployment creates a deployment and makes it the current one used
// by the package-level Deploy, Assert and GetDeployment helpers
func CreateDeployment(cfg Config) (*Deployment, error) {
	d, err := New(cfg)
	if err != nil {
		return nil, err
	}

	currentMu.Lock()
	current = d
	currentMu.Unlock()
	return d, nil
}

// Current returns the current deployment
func Current() *Deployment {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// Deploy registers items with the current deployment
func Deploy(items ...Deployable) error {
	return Current().Deploy(items...)
}

// Assert records an assertion on the current deployment
func Assert(inv Invariant, desired bool) error {
	return Current().Assert(inv, desired)
}

// GetDeployment canonicalizes the current deployment
func GetDeployment() (*types.Deployment, error) {
	return Current().Canonicalize()
}
