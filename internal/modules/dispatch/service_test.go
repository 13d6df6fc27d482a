// README: Launch orchestrator tests (validity gate, platform branches, failure absorption).
package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"hailpad/internal/modules/registry"
	"hailpad/internal/modules/trip"
)

type fakeLauncher struct {
	canOpen    bool
	canOpenErr error
	openErr    error
	panicOn    string // method name that should panic

	canOpenCalls  int
	openCalls     []string
	externalCalls []string
}

func (l *fakeLauncher) CanOpen(ctx context.Context, uri string) (bool, error) {
	if l.panicOn == "CanOpen" {
		panic("launcher exploded")
	}
	l.canOpenCalls++
	return l.canOpen, l.canOpenErr
}

func (l *fakeLauncher) Open(ctx context.Context, uri string) error {
	if l.panicOn == "Open" {
		panic("launcher exploded")
	}
	l.openCalls = append(l.openCalls, uri)
	return l.openErr
}

func (l *fakeLauncher) OpenExternal(ctx context.Context, url string) error {
	l.externalCalls = append(l.externalCalls, url)
	return nil
}

func (l *fakeLauncher) totalCalls() int {
	return l.canOpenCalls + len(l.openCalls) + len(l.externalCalls)
}

type fakePrompts struct {
	installChoice  bool
	installCalls   int
	mu             sync.Mutex
	routeConfirmed chan struct{}
	pickup, drop   string
}

func newFakePrompts(installChoice bool) *fakePrompts {
	return &fakePrompts{installChoice: installChoice, routeConfirmed: make(chan struct{}, 1)}
}

func (p *fakePrompts) ConfirmInstall(ctx context.Context, provider registry.Provider) bool {
	p.installCalls++
	return p.installChoice
}

func (p *fakePrompts) ConfirmRoute(pickup, dropoff string) {
	p.mu.Lock()
	p.pickup, p.drop = pickup, dropoff
	p.mu.Unlock()
	p.routeConfirmed <- struct{}{}
}

type fakeEvents struct {
	appended []Event
	err      error
}

func (f *fakeEvents) Append(ctx context.Context, e Event) error {
	f.appended = append(f.appended, e)
	return f.err
}

func f64(v float64) *float64 { return &v }

func rioRoute() trip.Route {
	return trip.Route{
		Pickup:  trip.Stop{Address: "Rua Senador Vergueiro 218, Rio de Janeiro", Lat: f64(-22.9068), Lng: f64(-43.1729)},
		Dropoff: trip.Stop{Address: "Rua do Catete 214, Rio de Janeiro", Lat: f64(-22.9249), Lng: f64(-43.1777)},
	}
}

func uberProvider() registry.Provider {
	return registry.Provider{
		ID:              "uber",
		DeepLinkScheme:  "uber",
		StoreListingURL: "https://play.google.com/store/apps/details?id=com.ubercab",
	}
}

func TestOpenRejectsInvalidRouteBeforeAnyPlatformCall(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*trip.Route)
		wantMsg string
	}{
		{"missing pickup address", func(r *trip.Route) { r.Pickup.Address = "" }, "addresses"},
		{"missing dropoff coordinates", func(r *trip.Route) { r.Dropoff.Lat, r.Dropoff.Lng = nil, nil }, "coordinates"},
		{"half coordinate pair", func(r *trip.Route) { r.Pickup.Lng = nil }, "coordinates"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			launcher := &fakeLauncher{canOpen: true}
			svc := NewService(PlatformNative, launcher, newFakePrompts(false), nil, 0)

			r := rioRoute()
			tc.mutate(&r)
			out := svc.Open(context.Background(), uberProvider(), r)

			if out.Kind != OutcomeError {
				t.Errorf("kind = %s, want error", out.Kind)
			}
			if !strings.Contains(out.Message, tc.wantMsg) {
				t.Errorf("message %q does not mention %q", out.Message, tc.wantMsg)
			}
			if launcher.totalCalls() != 0 {
				t.Errorf("platform called %d times for an invalid route", launcher.totalCalls())
			}
		})
	}
}

func TestOpenUnknownProviderIsBuildError(t *testing.T) {
	launcher := &fakeLauncher{canOpen: true}
	svc := NewService(PlatformNative, launcher, newFakePrompts(false), nil, 0)

	out := svc.Open(context.Background(), registry.Provider{ID: "yellowcab", DeepLinkScheme: "yellowcab"}, rioRoute())

	if out.Kind != OutcomeError {
		t.Errorf("kind = %s, want error", out.Kind)
	}
	if launcher.totalCalls() != 0 {
		t.Error("platform called for an unbuildable link")
	}
}

func TestOpenNativeInstalled(t *testing.T) {
	launcher := &fakeLauncher{canOpen: true}
	prompts := newFakePrompts(false)
	svc := NewService(PlatformNative, launcher, prompts, nil, 0)

	out := svc.Open(context.Background(), uberProvider(), rioRoute())

	if out.Kind != OutcomeOpened {
		t.Fatalf("kind = %s, want opened", out.Kind)
	}
	if len(launcher.openCalls) != 1 || !strings.HasPrefix(launcher.openCalls[0], "uber://") {
		t.Errorf("open calls = %v", launcher.openCalls)
	}

	// Route-carrying link: the delayed confirmation prompt must fire.
	select {
	case <-prompts.routeConfirmed:
	case <-time.After(time.Second):
		t.Fatal("route confirmation prompt never fired")
	}
	prompts.mu.Lock()
	defer prompts.mu.Unlock()
	if prompts.pickup != "Rua Senador Vergueiro 218, Rio de Janeiro" {
		t.Errorf("confirmed pickup = %q", prompts.pickup)
	}
}

func TestOpenNativeBareSchemeSkipsConfirmation(t *testing.T) {
	launcher := &fakeLauncher{canOpen: true}
	prompts := newFakePrompts(false)
	svc := NewService(PlatformNative, launcher, prompts, nil, 0)

	p := registry.Provider{ID: "indriver", DeepLinkScheme: "indriver"}
	out := svc.Open(context.Background(), p, rioRoute())

	if out.Kind != OutcomeOpened {
		t.Fatalf("kind = %s, want opened", out.Kind)
	}
	if !strings.Contains(out.Message, "enter the addresses") {
		t.Errorf("message = %q, want manual-entry notice", out.Message)
	}
	select {
	case <-prompts.routeConfirmed:
		t.Error("confirmation prompt fired for a link with no route data")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOpenNativeNotInstalledGoesToInstallPrompt(t *testing.T) {
	launcher := &fakeLauncher{canOpen: false}
	prompts := newFakePrompts(true)
	svc := NewService(PlatformNative, launcher, prompts, nil, 0)

	out := svc.Open(context.Background(), uberProvider(), rioRoute())

	if out.Kind != OutcomeNotInstalled {
		t.Fatalf("kind = %s, want not_installed", out.Kind)
	}
	if len(launcher.openCalls) != 0 {
		t.Error("Open called even though CanOpen said no")
	}
	if prompts.installCalls != 1 {
		t.Errorf("install prompt shown %d times, want 1", prompts.installCalls)
	}
	if len(launcher.externalCalls) != 1 || launcher.externalCalls[0] != uberProvider().StoreListingURL {
		t.Errorf("external calls = %v, want store listing", launcher.externalCalls)
	}
}

func TestOpenNativeInstallPromptDeclined(t *testing.T) {
	launcher := &fakeLauncher{canOpen: false}
	svc := NewService(PlatformNative, launcher, newFakePrompts(false), nil, 0)

	out := svc.Open(context.Background(), uberProvider(), rioRoute())

	if out.Kind != OutcomeNotInstalled {
		t.Fatalf("kind = %s, want not_installed", out.Kind)
	}
	if len(launcher.externalCalls) != 0 {
		t.Error("store opened although the user declined")
	}
	if out.StoreURL == "" {
		t.Error("outcome missing store URL")
	}
}

func TestOpenNativeCanOpenErrorFallsThroughToStorePrompt(t *testing.T) {
	launcher := &fakeLauncher{canOpenErr: errors.New("os rejected query")}
	prompts := newFakePrompts(false)
	svc := NewService(PlatformNative, launcher, prompts, nil, 0)

	out := svc.Open(context.Background(), uberProvider(), rioRoute())

	if out.Kind != OutcomeNotInstalled {
		t.Fatalf("kind = %s, want not_installed", out.Kind)
	}
	if prompts.installCalls != 1 {
		t.Error("install prompt not shown after failed capability query")
	}
}

func TestOpenNativeOpenErrorBecomesErrorOutcome(t *testing.T) {
	launcher := &fakeLauncher{canOpen: true, openErr: errors.New("malformed uri")}
	svc := NewService(PlatformNative, launcher, newFakePrompts(false), nil, 0)

	out := svc.Open(context.Background(), uberProvider(), rioRoute())

	if out.Kind != OutcomeError {
		t.Errorf("kind = %s, want error", out.Kind)
	}
	if strings.Contains(out.Message, "malformed") {
		t.Errorf("raw platform error leaked into message %q", out.Message)
	}
}

func TestOpenRecoversFromLauncherPanic(t *testing.T) {
	launcher := &fakeLauncher{panicOn: "CanOpen"}
	svc := NewService(PlatformNative, launcher, newFakePrompts(false), nil, 0)

	out := svc.Open(context.Background(), uberProvider(), rioRoute())

	if out.Kind != OutcomeError {
		t.Errorf("kind = %s, want error after panic", out.Kind)
	}
}

func TestOpenWebWithFallback(t *testing.T) {
	launcher := &fakeLauncher{}
	svc := NewService(PlatformWeb, launcher, newFakePrompts(false), nil, 0)

	out := svc.Open(context.Background(), uberProvider(), rioRoute())

	if out.Kind != OutcomeWebFallback {
		t.Fatalf("kind = %s, want web fallback", out.Kind)
	}
	if launcher.canOpenCalls != 0 || len(launcher.openCalls) != 0 {
		t.Error("native URI machinery used on the web platform")
	}
	if len(launcher.externalCalls) != 1 || !strings.HasPrefix(launcher.externalCalls[0], "https://m.uber.com/ul/") {
		t.Errorf("external calls = %v", launcher.externalCalls)
	}
}

func TestOpenWebWithoutFallback(t *testing.T) {
	launcher := &fakeLauncher{}
	svc := NewService(PlatformWeb, launcher, newFakePrompts(false), nil, 0)

	p := registry.Provider{ID: "99", DeepLinkScheme: "taxis99", StoreListingURL: "https://play.google.com/store/apps/details?id=com.taxis99"}
	out := svc.Open(context.Background(), p, rioRoute())

	if out.Kind != OutcomeUnsupported {
		t.Fatalf("kind = %s, want unsupported", out.Kind)
	}
	if launcher.totalCalls() != 0 {
		t.Error("URI open attempted on web for a provider with no web fallback")
	}
	if out.StoreURL != p.StoreListingURL {
		t.Errorf("store URL = %q", out.StoreURL)
	}
}

func TestOpenRecordsTelemetry(t *testing.T) {
	events := &fakeEvents{}
	launcher := &fakeLauncher{canOpen: true}
	svc := NewService(PlatformNative, launcher, newFakePrompts(false), events, 0)

	svc.Open(context.Background(), uberProvider(), rioRoute())
	svc.Open(context.Background(), uberProvider(), trip.Route{}) // invalid

	if len(events.appended) != 2 {
		t.Fatalf("appended %d events, want 2", len(events.appended))
	}
	if events.appended[0].Outcome != OutcomeOpened || events.appended[0].ProviderID != "uber" {
		t.Errorf("first event = %+v", events.appended[0])
	}
	if events.appended[1].Outcome != OutcomeError {
		t.Errorf("second event = %+v", events.appended[1])
	}
}

func TestOpenTelemetryFailureDoesNotChangeOutcome(t *testing.T) {
	events := &fakeEvents{err: errors.New("db gone")}
	launcher := &fakeLauncher{canOpen: true}
	svc := NewService(PlatformNative, launcher, newFakePrompts(false), events, 0)

	out := svc.Open(context.Background(), uberProvider(), rioRoute())
	if out.Kind != OutcomeOpened {
		t.Errorf("kind = %s, want opened despite telemetry failure", out.Kind)
	}
}
