package pipeline

import (
	"sync"
	"time"
)

// EventType represents the type of build event.
type EventType string

const (
	// Run lifecycle events
	EventBuildStarted   EventType = "build_started"
	EventBuildCompleted EventType = "build_completed"
	EventBuildFailed    EventType = "build_failed"

	// Stage lifecycle events
	EventStageCompleted EventType = "stage_completed"
	EventStageFailed    EventType = "stage_failed"

	// Output events
	EventArtifactWritten EventType = "artifact_written"
)

// Event represents an observable build event with typed data.
type Event struct {
	Type      EventType      `json:"type"`
	RunID     string         `json:"run_id"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// EventEmitter manages event listeners and dispatches events.
type EventEmitter struct {
	mu        sync.RWMutex
	listeners []func(Event)
}

// NewEventEmitter creates a new EventEmitter.
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{
		listeners: make([]func(Event), 0),
	}
}

// On registers a listener function to receive events.
// Listeners are called synchronously in registration order.
func (e *EventEmitter) On(listener func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, listener)
}

// Emit dispatches an event to all registered listeners.
// A nil emitter drops the event.
func (e *EventEmitter) Emit(event Event) {
	if e == nil {
		return
	}
	e.mu.RLock()
	listeners := make([]func(Event), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *EventEmitter) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

// BuildStartedEvent creates a build_started event.
func BuildStartedEvent(runID, grammar string) Event {
	return Event{
		Type:      EventBuildStarted,
		RunID:     runID,
		Timestamp: time.Now(),
		Data: map[string]any{
			"grammar": grammar,
		},
	}
}

// BuildCompletedEvent creates a build_completed event.
func BuildCompletedEvent(runID string, duration time.Duration, nfaStates, dfaStates int) Event {
	return Event{
		Type:      EventBuildCompleted,
		RunID:     runID,
		Timestamp: time.Now(),
		Data: map[string]any{
			"duration_ms": duration.Milliseconds(),
			"nfa_states":  nfaStates,
			"dfa_states":  dfaStates,
		},
	}
}

// BuildFailedEvent creates a build_failed event.
func BuildFailedEvent(runID, err string, duration time.Duration) Event {
	return Event{
		Type:      EventBuildFailed,
		RunID:     runID,
		Timestamp: time.Now(),
		Data: map[string]any{
			"error":       err,
			"duration_ms": duration.Milliseconds(),
		},
	}
}

// StageCompletedEvent creates a stage_completed event. Extra data is merged
// into the event payload.
func StageCompletedEvent(runID string, stage Stage, duration time.Duration, extra map[string]any) Event {
	data := map[string]any{
		"stage":       string(stage),
		"duration_ms": duration.Milliseconds(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return Event{
		Type:      EventStageCompleted,
		RunID:     runID,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// StageFailedEvent creates a stage_failed event.
func StageFailedEvent(runID string, stage Stage, err string) Event {
	return Event{
		Type:      EventStageFailed,
		RunID:     runID,
		Timestamp: time.Now(),
		Data: map[string]any{
			"stage": string(stage),
			"error": err,
		},
	}
}

// ArtifactWrittenEvent creates an artifact_written event.
func ArtifactWrittenEvent(runID string, info ArtifactInfo) Event {
	return Event{
		Type:      EventArtifactWritten,
		RunID:     runID,
		Timestamp: time.Now(),
		Data: map[string]any{
			"id":         info.ID,
			"path":       info.Path,
			"size_bytes": info.SizeBytes,
		},
	}
}
