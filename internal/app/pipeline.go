package app

import (
	"encoding/json"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// runPipeline is the main measurement loop. It polls the tracking provider
// and manages the transition between idle and active poll rates based on
// hand movement.
//
// Pipeline logic:
// 1. Start at the idle poll rate
// 2. On wrist movement, switch to the active poll rate
// 3. Evaluate all gesture rules against the frame
// 4. Record began/ended events and dispatch bound plugin actions
// 5. After 2s without movement, drop back to the idle poll rate
//
// The stop channel is passed in rather than read from the App so Stop can
// clear the field without racing the select.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMovement := time.Now()

	pollInterval := time.Second / time.Duration(IdlePollHz)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			provider := a.Provider()
			if provider == nil {
				continue
			}

			frame, err := provider.NextFrame()
			if err != nil {
				log.Printf("Error polling tracking provider: %v", err)
				continue
			}

			moving, _ := a.presence.Observe(frame)

			if moving {
				lastMovement = time.Now()

				if !activeMode {
					activeMode = true
					pollInterval = time.Second / time.Duration(ActivePollHz)
					ticker.Reset(pollInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMovement) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					pollInterval = time.Second / time.Duration(IdlePollHz)
					ticker.Reset(pollInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				continue
			}

			for _, event := range a.matcher.Update(frame) {
				a.handleEvent(event)
			}
		}
	}
}

// handleEvent records a recognized gesture event and dispatches the plugin
// action bound to its rule, if any.
func (a *App) handleEvent(event gesture.Event) {
	log.Printf("Gesture %s %s (hand: %s, distance: %.4fm)",
		event.RuleName, event.Phase, event.Chirality, event.Distance)

	if a.config.Store != nil {
		record := &store.Event{
			RuleID:     event.RuleID,
			Phase:      string(event.Phase),
			Chirality:  string(event.Chirality),
			Distance:   event.Distance,
			RecordedAt: event.Timestamp,
		}
		if err := a.config.Store.Events().Record(record); err != nil {
			log.Printf("Failed to record event for %s: %v", event.RuleName, err)
		}
	}

	a.executeAction(event)

	a.mu.RLock()
	onEvent := a.onEvent
	a.mu.RUnlock()
	if onEvent != nil {
		onEvent(event)
	}
}

// executeAction looks up the action binding for the event's rule and runs
// the bound plugin.
func (a *App) executeAction(event gesture.Event) {
	if a.config.Store == nil {
		return
	}

	action, err := a.config.Store.Actions().GetByRuleID(event.RuleID)
	if err != nil {
		log.Printf("Failed to look up action for %s: %v", event.RuleName, err)
		return
	}
	if action == nil || !action.Enabled {
		return
	}

	p, err := a.pluginMgr.Get(action.PluginName)
	if err != nil {
		log.Printf("Plugin %q not found for rule %s", action.PluginName, event.RuleName)
		return
	}

	req := &plugin.Request{
		Action:    action.ActionName,
		Rule:      event.RuleName,
		Phase:     string(event.Phase),
		Chirality: string(event.Chirality),
		Distance:  event.Distance,
		Config:    action.Config,
		Params:    json.RawMessage("{}"),
	}

	resp, err := a.pluginExec.Execute(p, req)
	if err != nil {
		log.Printf("Plugin %s failed for rule %s: %v", action.PluginName, event.RuleName, err)
		return
	}
	if !resp.Success {
		log.Printf("Plugin %s reported error for rule %s: %s", action.PluginName, event.RuleName, resp.Error)
	}
}
