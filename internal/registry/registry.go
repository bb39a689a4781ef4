// Package registry maps generator kinds to runnable dataset builders.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mmrzaf/synthgen/internal/domain"
	"github.com/mmrzaf/synthgen/internal/randutil"
	"gopkg.in/yaml.v3"
)

// Runner builds one dataset of its kind from a row count and the raw
// kind-specific settings block.
type Runner func(src *randutil.Source, rows int, settings *yaml.Node) (*domain.Table, error)

type Registry struct {
	mu      sync.RWMutex
	runners map[domain.Kind]Runner
}

func New() *Registry {
	return &Registry{runners: make(map[domain.Kind]Runner)}
}

func (r *Registry) Register(kind domain.Kind, run Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runners[kind] = run
}

func (r *Registry) Get(kind domain.Kind) (Runner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runners[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGeneratorKind, kind)
	}
	return run, nil
}

func (r *Registry) Kinds() []domain.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]domain.Kind, 0, len(r.runners))
	for k := range r.runners {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Default returns a registry with every built-in generator kind wired.
func Default() *Registry {
	r := New()
	r.Register(domain.KindEnvironmentalSensor, runSensor)
	r.Register(domain.KindSensorFleet, runSensorFleet)
	r.Register(domain.KindBusinessCustomers, runCustomers)
	r.Register(domain.KindBusinessTransactions, runTransactions)
	r.Register(domain.KindBusinessProducts, runProducts)
	r.Register(domain.KindBusinessSales, runSales)
	r.Register(domain.KindUserProfiles, runProfiles)
	r.Register(domain.KindUserAccounts, runAccounts)
	r.Register(domain.KindUserActivity, runActivity)
	r.Register(domain.KindUserPreferences, runPreferences)
	r.Register(domain.KindJobLogs, runJobLogs)
	return r
}
