// Package app wires the Mudra pipeline together: anchor frames from the
// tracking provider flow through presence detection and the gesture
// matcher, and recognized events are recorded and dispatched to plugins.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tracker"
)

// Pipeline timing constants.
const (
	// IdlePollHz is the anchor poll rate when no hand movement is seen.
	IdlePollHz = 5
	// ActivePollHz is the anchor poll rate during active measurement.
	ActivePollHz = 15
	// IdleTimeoutMs is the time in milliseconds without movement before
	// dropping back to the idle poll rate.
	IdleTimeoutMs = 2000
	// SmoothingWindow is the number of frames distance measurements are
	// averaged over before threshold comparison.
	SmoothingWindow = 5
	// PluginTimeoutMs bounds a single plugin execution.
	PluginTimeoutMs = 5000
	// EventRetentionDays is how long recorded gesture events are kept.
	// Older events are pruned when the pipeline starts.
	EventRetentionDays = 30
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	PluginDir      string
	TrackerScript  string
	Tracker        tracker.Config
	MovementThresh float64
}

// App orchestrates distance measurement, rule matching, and action execution.
type App struct {
	config     Config
	provider   tracker.Provider
	presence   *tracker.PresenceDetector
	matcher    *gesture.Matcher
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	enabled    bool
	onEvent    func(gesture.Event)
	mu         sync.RWMutex
	stopCh     chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	movementThresh := config.MovementThresh
	if movementThresh <= 0 {
		movementThresh = tracker.DefaultMovementThreshold
	}

	a := &App{
		config:     config,
		presence:   tracker.NewPresenceDetector(movementThresh),
		matcher:    gesture.NewMatcher(SmoothingWindow),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(PluginTimeoutMs),
		enabled:    false,
	}

	// Try the external tracking service first, fall back to the mock provider
	if bridge, err := tracker.NewBridge(config.Tracker, config.TrackerScript); err == nil {
		a.provider = bridge
		log.Println("Using hand tracking service")
	} else {
		log.Printf("Tracking service not available (%v), using mock provider", err)
		a.provider = tracker.NewMockProvider()
	}

	return a
}

// SetEnabled enables or disables gesture measurement.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture measurement is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetProvider sets the anchor frame provider to use.
func (a *App) SetProvider(p tracker.Provider) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provider = p
}

// Provider returns the current anchor frame provider.
func (a *App) Provider() tracker.Provider {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.provider
}

// SetEventCallback registers a callback invoked for every recognized
// gesture event, after it has been recorded.
func (a *App) SetEventCallback(fn func(gesture.Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEvent = fn
}

// LoadRules loads gesture rules from the database into the matcher.
func (a *App) LoadRules() error {
	if a.config.Store == nil {
		return nil
	}

	rules, err := a.config.Store.Rules().List()
	if err != nil {
		return err
	}

	loaded := 0
	for _, r := range rules {
		first, err := hand.ParseDigit(r.FirstDigit)
		if err != nil {
			log.Printf("Skipping rule %s: %v", r.Name, err)
			continue
		}
		second, err := hand.ParseDigit(r.SecondDigit)
		if err != nil {
			log.Printf("Skipping rule %s: %v", r.Name, err)
			continue
		}

		a.matcher.AddRule(&gesture.Rule{
			ID:            r.ID,
			Name:          r.Name,
			FirstDigit:    first,
			SecondDigit:   second,
			TwoHanded:     r.TwoHanded,
			EnterDistance: r.EnterDistance,
			ExitDistance:  r.ExitDistance,
		})
		loaded++
	}

	log.Printf("Loaded %d rules from database", loaded)
	return nil
}

// ReloadRules replaces the matcher's rules with the current database
// contents. In-flight gesture state for removed rules is dropped.
func (a *App) ReloadRules() error {
	existing := a.matcher.Rules()
	ids := make([]string, len(existing))
	for i, r := range existing {
		ids[i] = r.ID
	}
	for _, id := range ids {
		a.matcher.RemoveRule(id)
	}
	return a.LoadRules()
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the measurement pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	a.pruneEvents()

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Measurement pipeline started")
	return nil
}

// pruneEvents drops gesture events older than the retention horizon.
func (a *App) pruneEvents() {
	if a.config.Store == nil {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -EventRetentionDays)
	pruned, err := a.config.Store.Events().Prune(cutoff)
	if err != nil {
		log.Printf("Failed to prune old events: %v", err)
		return
	}
	if pruned > 0 {
		log.Printf("Pruned %d events older than %d days", pruned, EventRetentionDays)
	}
}

// Stop halts the measurement pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			log.Printf("Error closing tracking provider: %v", err)
		}
	}

	a.presence.Reset()

	log.Println("Measurement pipeline stopped")
}

// Matcher returns the gesture rule matcher.
func (a *App) Matcher() *gesture.Matcher {
	return a.matcher
}

// PresenceDetector returns the presence detector instance.
func (a *App) PresenceDetector() *tracker.PresenceDetector {
	return a.presence
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}
