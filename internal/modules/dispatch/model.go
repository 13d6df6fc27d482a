// README: Dispatch outcomes, platform selection, and capability interfaces.
package dispatch

import (
	"context"
	"time"

	"hailpad/internal/modules/registry"
)

// Platform selects the launch branch at composition time so the orchestrator
// control flow stays platform-agnostic.
type Platform string

const (
	PlatformNative Platform = "native"
	PlatformWeb    Platform = "web"
)

type OutcomeKind string

const (
	OutcomeOpened       OutcomeKind = "opened"
	OutcomeWebFallback  OutcomeKind = "opened_web_fallback"
	OutcomeNotInstalled OutcomeKind = "not_installed"
	OutcomeUnsupported  OutcomeKind = "unsupported_on_platform"
	OutcomeError        OutcomeKind = "error"
)

// Outcome is the terminal state of one dispatch attempt.
type Outcome struct {
	Kind     OutcomeKind
	URI      string // the deep link or web URL that was (or would be) opened
	StoreURL string // set when the next action is the provider's store listing
	Message  string // user-facing; never a raw error
}

// Launcher is the platform URI-launch capability. Implementations may fail;
// the orchestrator absorbs every failure at its boundary.
type Launcher interface {
	CanOpen(ctx context.Context, uri string) (bool, error)
	Open(ctx context.Context, uri string) error
	OpenExternal(ctx context.Context, url string) error
}

// Prompts is the user-facing disambiguation surface.
type Prompts interface {
	// ConfirmInstall asks cancel / "open store"; true means open the store.
	ConfirmInstall(ctx context.Context, p registry.Provider) bool
	// ConfirmRoute reiterates the pickup/dropoff strings after a successful
	// open, because third-party apps do not always honor the pre-fill.
	ConfirmRoute(pickup, dropoff string)
}

// Event is one telemetry record per dispatch attempt.
type Event struct {
	ProviderID string
	Outcome    OutcomeKind
	URI        string
	CreatedAt  time.Time
}

type EventStore interface {
	Append(ctx context.Context, e Event) error
}

// ClientPrompts defers all prompting to the API client: the install choice
// is rendered client-side from the outcome's store URL, so the server-side
// answer is always "no", and route confirmation is carried by the outcome
// message instead of a dialog.
type ClientPrompts struct{}

func (ClientPrompts) ConfirmInstall(ctx context.Context, p registry.Provider) bool { return false }

func (ClientPrompts) ConfirmRoute(pickup, dropoff string) {}

// User-facing messages for each terminal state.
const (
	msgMissingAddress = "Fill in both the pickup and destination addresses."
	msgMissingCoords  = "Select an address from the suggestions so we can get its coordinates."
	msgBuildFailed    = "Could not prepare the link for this app. Please try again."
	msgOpened         = "Opening the app with your route."
	msgManualEntry    = "This app does not accept a pre-filled route; enter the addresses after it opens."
	msgWebFallback    = "Opening the ride service in your browser."
	msgNotInstalled   = "The app is not installed. You can get it from the store."
	msgUnsupported    = "This app cannot be launched from the web. You can view it in the store."
	msgOpenFailed     = "Could not open the app. Please try again."
)
