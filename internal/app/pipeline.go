package app

import (
	"errors"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/feed"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/tracking"
)

// runPump reads updates from the source at the configured tick rate and fans
// them into the coordinator. The pump is the producer side of the system: all
// gesture math happens on this goroutine, while transition callbacks and
// action dispatch run on the coordinator's dispatch goroutine.
func (a *App) runPump(stopCh chan struct{}) {
	interval := time.Second / time.Duration(a.config.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			a.mu.RLock()
			source := a.source
			recorder := a.recorder
			a.mu.RUnlock()

			if source == nil {
				continue
			}

			u, err := source.ReadUpdate()
			if err != nil {
				if errors.Is(err, feed.ErrEndOfStream) {
					log.Println("Frame source exhausted, stopping pump")
					a.pumpExited(stopCh)
					return
				}
				log.Printf("Error reading update: %v", err)
				continue
			}

			if recorder != nil {
				if err := recorder.Record(u); err != nil {
					log.Printf("Error recording update: %v", err)
				}
			}

			a.coordinator.ProcessUpdate(u)
		}
	}
}

// pumpExited clears the stop channel after a self-initiated pump exit so a
// later Start can spin up a fresh pump. The identity check guards against a
// concurrent Stop/Start pair having already replaced the channel.
func (a *App) pumpExited(stopCh chan struct{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopCh == stopCh {
		a.stopCh = nil
	}
}

// handleTransition dispatches the plugin actions bound to a gesture. It runs
// on the coordinator's dispatch goroutine; each plugin executes in its own
// goroutine so a slow action cannot stall transition delivery.
func (a *App) handleTransition(t tracking.Transition) {
	log.Printf("Gesture %q (%s hand) active=%v after %v", t.Gesture, t.Side, t.Active, t.At.Format(time.RFC3339Nano))

	if a.config.Store == nil {
		return
	}

	cfg, err := a.config.Store.Gestures().GetByName(t.Gesture)
	if err != nil {
		return // untracked or ad-hoc gesture, nothing bound
	}

	actions, err := a.config.Store.Actions().ListEnabledByGesture(cfg.ID)
	if err != nil {
		log.Printf("Failed to load actions for %s: %v", t.Gesture, err)
		return
	}

	for _, action := range actions {
		p, err := a.pluginMgr.Get(action.PluginName)
		if err != nil {
			log.Printf("Plugin %s not available for gesture %s", action.PluginName, t.Gesture)
			continue
		}

		req := &plugin.Request{
			Action:  action.ActionName,
			Gesture: t.Gesture,
			Side:    string(t.Side),
			Active:  t.Active,
			Config:  action.Config,
		}

		go func(p *plugin.Plugin, req *plugin.Request) {
			if _, err := a.pluginExec.Execute(p, req); err != nil {
				log.Printf("Action %s failed for gesture %s: %v", req.Action, req.Gesture, err)
			}
		}(p, req)
	}
}
