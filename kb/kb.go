package kb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hydrosignals/econet-linker/model"
)

// EventType indicates what kind of change happened in the registry.
type EventType int

const (
	EventNodeRegistered EventType = iota
	EventContaminantRegistered
)

// Event is emitted to subscribers when something interesting happens.
type Event struct {
	Type          EventType
	NodeID        model.NodeID
	ContaminantID string
}

// Registry is an in-memory, thread-safe store of bound node configurations
// and contaminant configurations. It is the layer that enforces the
// cross-record ID uniqueness the shard decoder deliberately leaves alone.
type Registry struct {
	mu sync.RWMutex

	nodes        map[model.NodeID]model.NodeConfig
	contaminants map[string]model.ContaminantConfig

	subs []func(Event)
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:        make(map[model.NodeID]model.NodeConfig),
		contaminants: make(map[string]model.ContaminantConfig),
	}
}

// RegisterNode adds a bound node configuration. It returns an error if the
// node ID is already registered.
func (r *Registry) RegisterNode(cfg model.NodeConfig) error {
	r.mu.Lock()
	id := cfg.Meta.NodeID
	if _, exists := r.nodes[id]; exists {
		r.mu.Unlock()
		return fmt.Errorf("node with ID %q already registered", id)
	}
	r.nodes[id] = cfg
	subs := append([]func(Event){}, r.subs...)
	r.mu.Unlock()

	notify(subs, Event{Type: EventNodeRegistered, NodeID: id})
	return nil
}

// RegisterShard adds a whole shard's configurations atomically: a
// duplicate ID, either against existing entries or within the batch,
// rejects the entire batch and leaves the registry unchanged.
func (r *Registry) RegisterShard(cfgs []model.NodeConfig) error {
	r.mu.Lock()

	seen := make(map[model.NodeID]struct{}, len(cfgs))
	for _, cfg := range cfgs {
		id := cfg.Meta.NodeID
		if _, exists := r.nodes[id]; exists {
			r.mu.Unlock()
			return fmt.Errorf("node with ID %q already registered", id)
		}
		if _, dup := seen[id]; dup {
			r.mu.Unlock()
			return fmt.Errorf("duplicate node ID %q within shard", id)
		}
		seen[id] = struct{}{}
	}
	for _, cfg := range cfgs {
		r.nodes[cfg.Meta.NodeID] = cfg
	}
	subs := append([]func(Event){}, r.subs...)
	r.mu.Unlock()

	for _, cfg := range cfgs {
		notify(subs, Event{Type: EventNodeRegistered, NodeID: cfg.Meta.NodeID})
	}
	return nil
}

// RegisterContaminant adds a contaminant configuration. It returns an
// error if the ID is already registered.
func (r *Registry) RegisterContaminant(cfg model.ContaminantConfig) error {
	r.mu.Lock()
	if _, exists := r.contaminants[cfg.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("contaminant with ID %q already registered", cfg.ID)
	}
	r.contaminants[cfg.ID] = cfg
	subs := append([]func(Event){}, r.subs...)
	r.mu.Unlock()

	notify(subs, Event{Type: EventContaminantRegistered, ContaminantID: cfg.ID})
	return nil
}

// Node returns the configuration for id, if registered.
func (r *Registry) Node(id model.NodeID) (model.NodeConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.nodes[id]
	return cfg, ok
}

// Contaminant returns the contaminant configuration for id, if registered.
func (r *Registry) Contaminant(id string) (model.ContaminantConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.contaminants[id]
	return cfg, ok
}

// Nodes returns a snapshot of all node configurations sorted by ID.
func (r *Registry) Nodes() []model.NodeConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]model.NodeConfig, 0, len(r.nodes))
	for _, cfg := range r.nodes {
		res = append(res, cfg)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Meta.NodeID < res[j].Meta.NodeID })
	return res
}

// Contaminants returns a snapshot of all contaminant configurations sorted
// by ID.
func (r *Registry) Contaminants() []model.ContaminantConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]model.ContaminantConfig, 0, len(r.contaminants))
	for _, cfg := range r.contaminants {
		res = append(res, cfg)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// Counts reports how many nodes and contaminants are registered.
func (r *Registry) Counts() (nodes, contaminants int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes), len(r.contaminants)
}

// Subscribe registers a callback for registry events. It returns an
// unsubscribe function.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
	idx := len(r.subs) - 1

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if idx < 0 || idx >= len(r.subs) {
			return
		}
		r.subs = append(r.subs[:idx], r.subs[idx+1:]...)
		idx = -1
	}
}

// notify runs outside the registry lock to avoid deadlocks when a
// subscriber reads back from the registry.
func notify(subs []func(Event), ev Event) {
	for _, sub := range subs {
		sub(ev)
	}
}
