// Package app wires the gesture store, coordinator, frame sources, and action
// plugins into a running detection pipeline.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/feed"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tracking"
)

// Pipeline timing constants.
const (
	// DefaultTickRate is the default number of source updates consumed per second.
	DefaultTickRate = 30
	// PluginTimeout bounds a single plugin action execution.
	PluginTimeout = 5 * time.Second
)

// Config holds configuration options for the application.
type Config struct {
	Store       *store.Store
	PluginDir   string
	RightHanded bool
	TickRate    int
}

// App orchestrates gesture detection and action execution.
type App struct {
	config      Config
	coordinator *tracking.Coordinator
	pluginMgr   *plugin.Manager
	pluginExec  *plugin.Executor

	mu          sync.RWMutex
	source      feed.Source
	recorder    *feed.Recorder
	recordingID string
	enabled     bool
	stopCh      chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.TickRate <= 0 {
		config.TickRate = DefaultTickRate
	}

	a := &App{
		config:     config,
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(PluginTimeout),
	}

	a.coordinator = tracking.New(tracking.Config{RightHanded: config.RightHanded})
	a.coordinator.OnTransition(a.handleTransition)

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetSource sets the frame source the pipeline reads from.
func (a *App) SetSource(s feed.Source) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.source = s
}

// SetRecorder tees every consumed update into a session recorder.
func (a *App) SetRecorder(r *feed.Recorder) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recorder = r
}

// StartRecording installs a recorder appending every consumed update to the
// given recording. Takes effect on the next pump tick.
func (a *App) StartRecording(recordingID string) error {
	if a.config.Store == nil {
		return fmt.Errorf("no store configured")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.recorder = feed.NewRecorder(a.config.Store, recordingID)
	a.recordingID = recordingID

	log.Printf("Recording session to %s", recordingID)
	return nil
}

// StopRecording removes the session recorder, if any.
func (a *App) StopRecording() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recorder = nil
	a.recordingID = ""
}

// ActiveRecording returns the ID of the recording currently being written,
// or the empty string when not recording.
func (a *App) ActiveRecording() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.recordingID
}

// LoadGestures registers the store's enabled gesture configurations with the
// coordinator.
func (a *App) LoadGestures() error {
	if a.config.Store == nil {
		return nil
	}

	configs, err := a.config.Store.Gestures().ListEnabled()
	if err != nil {
		return err
	}

	loaded := 0
	for _, cfg := range configs {
		if err := a.ApplyGesture(cfg); err != nil {
			log.Printf("Skipping gesture %s: %v", cfg.Name, err)
			continue
		}
		loaded++
	}

	log.Printf("Loaded %d gestures from database", loaded)
	return nil
}

// ApplyGesture builds a gesture definition from a stored configuration and
// registers it live with the coordinator.
func (a *App) ApplyGesture(cfg *store.GestureConfig) error {
	def, err := BuildDefinition(cfg)
	if err != nil {
		return err
	}
	a.coordinator.AddGesture(def, nil)
	return nil
}

// RemoveGesture removes a gesture from the coordinator by name.
func (a *App) RemoveGesture(name string) {
	a.coordinator.RemoveGesture(name)
}

// BuildDefinition converts a stored gesture configuration into a trackable
// definition. Invalid configurations fail here, before registration.
func BuildDefinition(cfg *store.GestureConfig) (*gesture.Definition, error) {
	var (
		evaluator gesture.Evaluator
		err       error
	)

	switch cfg.Kind {
	case store.KindPinch:
		evaluator, err = gesture.NewPinchBetween(
			hand.JointName(cfg.Finger1), hand.JointName(cfg.Finger2), cfg.MinDistance)
	case store.KindFingerDistance:
		evaluator, err = gesture.NewFingerDistance(
			hand.JointName(cfg.Finger1), hand.JointName(cfg.Finger2), cfg.MinDistance, cfg.MaxDistance)
	default:
		err = fmt.Errorf("unknown gesture kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}

	return gesture.NewDefinition(
		cfg.Name, evaluator, gesture.Side(cfg.HandSide),
		time.Duration(cfg.HoldMs)*time.Millisecond)
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins consuming updates from the configured source.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}
	if a.source == nil {
		return fmt.Errorf("no frame source configured")
	}

	a.stopCh = make(chan struct{})
	go a.runPump(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and shuts down the coordinator.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.mu.Unlock()

	a.coordinator.Close()
	log.Println("Detection pipeline stopped")
}

// Coordinator returns the gesture coordinator.
func (a *App) Coordinator() *tracking.Coordinator {
	return a.coordinator
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}
