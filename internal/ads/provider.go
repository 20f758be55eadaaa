package ads

import "context"

// Provider is the capability boundary to an external interstitial-ad
// backend. Load caches the next ad; Show presents the cached ad and
// returns once the user has dismissed it.
type Provider interface {
	Load(ctx context.Context) error
	Show(ctx context.Context) error
}

// NoopProvider is substituted at startup when ads are disabled in the
// configuration, so the rest of the assembly never branches on the
// feature being present.
type NoopProvider struct{}

func (NoopProvider) Load(_ context.Context) error { return nil }

func (NoopProvider) Show(_ context.Context) error { return nil }

// Listener observes the ad lifecycle. It replaces SDK delegate
// callbacks with an interface the assembly wires explicitly.
type Listener interface {
	Loaded()
	LoadFailed(err error)
	Shown()
	Dismissed()
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) Loaded()            {}
func (NopListener) LoadFailed(_ error) {}
func (NopListener) Shown()             {}
func (NopListener) Dismissed()         {}
