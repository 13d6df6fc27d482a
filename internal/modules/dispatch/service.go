// README: Launch orchestrator; build → check → act, strictly sequential per attempt.
package dispatch

import (
	"context"
	"errors"
	"log"
	"time"

	"hailpad/internal/modules/deeplink"
	"hailpad/internal/modules/registry"
	"hailpad/internal/modules/trip"
)

type Service struct {
	platform     Platform
	launcher     Launcher
	prompts      Prompts
	events       EventStore // optional
	confirmDelay time.Duration
}

func NewService(platform Platform, launcher Launcher, prompts Prompts, events EventStore, confirmDelay time.Duration) *Service {
	return &Service{
		platform:     platform,
		launcher:     launcher,
		prompts:      prompts,
		events:       events,
		confirmDelay: confirmDelay,
	}
}

// Open runs one dispatch attempt. It never panics and never returns a raw
// platform error; every branch terminates in an Outcome the UI can render.
// Only one attempt is in flight per user action, so no coordination beyond
// the sequential build → check → act flow is needed.
func (s *Service) Open(ctx context.Context, p registry.Provider, r trip.Route) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("dispatch: recovered from %s launch: %v", p.ID, rec)
			out = Outcome{Kind: OutcomeError, Message: msgOpenFailed}
		}
		s.record(p.ID, out)
	}()

	// Validation happens in the UI layer too, but the orchestrator refuses
	// to build a link from an incomplete route regardless.
	if err := r.Validate(); err != nil {
		msg := msgMissingAddress
		if errors.Is(err, trip.ErrMissingCoordinates) {
			msg = msgMissingCoords
		}
		return Outcome{Kind: OutcomeError, Message: msg}
	}

	uri, err := deeplink.Build(p, r)
	if err != nil {
		log.Printf("dispatch: build failed for %s: %v", p.ID, err)
		return Outcome{Kind: OutcomeError, Message: msgBuildFailed}
	}

	if s.platform == PlatformWeb {
		return s.openWeb(ctx, p, r)
	}
	return s.openNative(ctx, p, r, uri)
}

func (s *Service) openWeb(ctx context.Context, p registry.Provider, r trip.Route) Outcome {
	webURL, ok := deeplink.WebFallback(p, r)
	if !ok {
		// No URI open is attempted at all on web without a fallback; the
		// client offers the store listing in a new tab instead.
		return Outcome{Kind: OutcomeUnsupported, StoreURL: p.StoreListingURL, Message: msgUnsupported}
	}
	if err := s.launcher.OpenExternal(ctx, webURL); err != nil {
		log.Printf("dispatch: web open failed for %s: %v", p.ID, err)
		return Outcome{Kind: OutcomeError, Message: msgOpenFailed}
	}
	return Outcome{Kind: OutcomeWebFallback, URI: webURL, Message: msgWebFallback}
}

func (s *Service) openNative(ctx context.Context, p registry.Provider, r trip.Route, uri string) Outcome {
	can, err := s.launcher.CanOpen(ctx, uri)
	if err != nil {
		// A failing capability query is indistinguishable from "not
		// installed" for the user; recover locally into the store prompt.
		log.Printf("dispatch: can-open query failed for %s: %v", p.ID, err)
		can = false
	}
	if !can {
		return s.promptInstall(ctx, p)
	}

	if err := s.launcher.Open(ctx, uri); err != nil {
		log.Printf("dispatch: open failed for %s: %v", p.ID, err)
		return Outcome{Kind: OutcomeError, Message: msgOpenFailed}
	}

	if deeplink.CarriesRoute(p.ID) {
		// Pre-fill is not guaranteed to be honored by the third-party app;
		// give the user a delayed chance to double check the route.
		pickup, dropoff := r.Pickup.Address, r.Dropoff.Address
		time.AfterFunc(s.confirmDelay, func() {
			s.prompts.ConfirmRoute(pickup, dropoff)
		})
		return Outcome{Kind: OutcomeOpened, URI: uri, Message: msgOpened}
	}
	return Outcome{Kind: OutcomeOpened, URI: uri, Message: msgManualEntry}
}

func (s *Service) promptInstall(ctx context.Context, p registry.Provider) Outcome {
	if s.prompts.ConfirmInstall(ctx, p) {
		if err := s.launcher.OpenExternal(ctx, p.StoreListingURL); err != nil {
			log.Printf("dispatch: store open failed for %s: %v", p.ID, err)
			return Outcome{Kind: OutcomeError, Message: msgOpenFailed}
		}
	}
	return Outcome{Kind: OutcomeNotInstalled, StoreURL: p.StoreListingURL, Message: msgNotInstalled}
}

func (s *Service) record(providerID string, out Outcome) {
	if s.events == nil {
		return
	}
	// Telemetry is best-effort; an append failure never changes the outcome.
	err := s.events.Append(context.Background(), Event{
		ProviderID: providerID,
		Outcome:    out.Kind,
		URI:        out.URI,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		log.Printf("dispatch: event append failed: %v", err)
	}
}
