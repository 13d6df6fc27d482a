// README: Registry service merges persisted overrides with the catalog and fans out change events.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrSaveFailed wraps storage write failures; the in-memory toggle is
	// kept so the session stays usable until the next reload.
	ErrSaveFailed = errors.New("could not save provider preferences")
)

// Event is published to subscribers after every successful persisted write.
type Event struct {
	Kind       string // "toggle" or "reset"
	ProviderID string // set for toggles
}

type Service struct {
	store Store

	mu        sync.Mutex
	providers []Provider // merged view; nil until first load
	subs      map[int]chan Event
	nextSub   int
}

func NewService(store Store) *Service {
	return &Service{store: store, subs: make(map[int]chan Event)}
}

// Load reads persisted overrides and merges them onto the compiled-in
// catalog. Only the enabled flag is taken from an override; providers with
// no override, and ids unknown to the catalog, fall back to defaults. Load
// never fails: a corrupted preferences blob must not prevent the app from
// listing ride options, so read errors degrade to pure defaults.
func (s *Service) Load(ctx context.Context) []Provider {
	merged := DefaultCatalog()
	overrides, err := s.store.LoadOverrides(ctx)
	if err != nil {
		log.Printf("registry: falling back to default catalog: %v", err)
	} else {
		byID := make(map[string]Override, len(overrides))
		for _, o := range overrides {
			byID[o.ID] = o
		}
		for i := range merged {
			if o, ok := byID[merged[i].ID]; ok {
				merged[i].Enabled = o.Enabled
			}
		}
	}

	s.mu.Lock()
	s.providers = merged
	s.mu.Unlock()
	return copyProviders(merged)
}

// Toggle flips the enabled flag for id and persists the full override list.
// On a write failure the in-memory state keeps the toggle and the error is
// returned; subscribers are notified only after the write succeeds.
func (s *Service) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.providers == nil {
		s.mu.Unlock()
		s.Load(ctx)
		s.mu.Lock()
	}

	idx := -1
	for i := range s.providers {
		if s.providers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrUnknownProvider
	}
	s.providers[idx].Enabled = !s.providers[idx].Enabled
	overrides := overridesOf(s.providers)
	s.mu.Unlock()

	if err := s.store.SaveOverrides(ctx, overrides); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	s.publish(Event{Kind: "toggle", ProviderID: id})
	return nil
}

// ResetToDefaults overwrites persisted state with the compiled-in defaults.
func (s *Service) ResetToDefaults(ctx context.Context) error {
	merged := DefaultCatalog()
	if err := s.store.SaveOverrides(ctx, overridesOf(merged)); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	s.mu.Lock()
	s.providers = merged
	s.mu.Unlock()
	s.publish(Event{Kind: "reset"})
	return nil
}

// EnabledProviders projects the enabled subset in canonical catalog order.
// It reads the in-memory view so an unsaved toggle still shows up.
func (s *Service) EnabledProviders(ctx context.Context) []Provider {
	cached := s.snapshot()
	if cached == nil {
		cached = s.Load(ctx)
	}

	var enabled []Provider
	for _, p := range cached {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// Find returns the provider with the given id from the current merged view.
func (s *Service) Find(ctx context.Context, id string) (Provider, error) {
	cached := s.snapshot()
	if cached == nil {
		cached = s.Load(ctx)
	}
	for _, p := range cached {
		if p.ID == id {
			return p, nil
		}
	}
	return Provider{}, ErrUnknownProvider
}

// Subscribe returns a channel receiving one event per successful persisted
// write, and a cancel func. Slow subscribers drop events rather than block
// a writer; a dropped event is safe because consumers re-read on receipt.
func (s *Service) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// snapshot copies the merged view under the lock; Toggle mutates the backing
// array in place, so callers must never hold a reference to it.
func (s *Service) snapshot() []Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.providers == nil {
		return nil
	}
	return copyProviders(s.providers)
}

func (s *Service) publish(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func overridesOf(providers []Provider) []Override {
	out := make([]Override, len(providers))
	for i, p := range providers {
		out[i] = Override{ID: p.ID, Enabled: p.Enabled}
	}
	return out
}

func copyProviders(in []Provider) []Provider {
	out := make([]Provider, len(in))
	copy(out, in)
	return out
}
