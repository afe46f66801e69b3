package puller

import (
	"context"
	"sync"

	"github.com/sguter90/ambientweather/pkg/ambient"
)

// DeviceLister is the part of the Ambient Weather client the puller needs
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]ambient.Device, error)
}

// Publisher forwards a device's latest snapshot somewhere
type Publisher interface {
	// Name returns the publisher identifier (e.g., "log", "mqtt")
	Name() string

	// Publish delivers one device snapshot
	Publish(ctx context.Context, device ambient.Device) error
}

// PublisherRegistry holds all registered publishers
type PublisherRegistry struct {
	mu         sync.RWMutex
	publishers map[string]Publisher
}

// NewPublisherRegistry creates a new publisher registry
func NewPublisherRegistry() *PublisherRegistry {
	return &PublisherRegistry{
		publishers: make(map[string]Publisher),
	}
}

// Register adds a publisher to the registry, replacing one with the same name
func (r *PublisherRegistry) Register(p Publisher) {
	if p == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.publishers[p.Name()] = p
}

// Get retrieves a publisher by name
func (r *PublisherRegistry) Get(name string) (Publisher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.publishers[name]
	return p, ok
}

// All returns all registered publishers
func (r *PublisherRegistry) All() []Publisher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	publishers := make([]Publisher, 0, len(r.publishers))
	for _, p := range r.publishers {
		publishers = append(publishers, p)
	}
	return publishers
}
