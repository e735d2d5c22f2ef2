// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routebuilder

import "log/slog"

// EventType is the severity of a registry event.
type EventType int

const (
	// EventError indicates an error event.
	EventError EventType = iota
	// EventWarning indicates a likely configuration mistake (e.g., a duplicate route name).
	EventWarning
	// EventInfo indicates an informational event.
	EventInfo
	// EventDebug indicates a routine operation (e.g., a route was added).
	EventDebug
)

// Event is an internal operational event emitted by the registry.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes registry events.
//
// Example custom handler:
//
//	routebuilder.WithEventHandler(func(e routebuilder.Event) {
//	    if e.Type == routebuilder.EventWarning {
//	        alerts.Notify(e.Message)
//	    }
//	})
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that logs events to logger.
// If logger is nil, the returned handler discards all events.
func DefaultEventHandler(logger *slog.Logger) EventHandler {
	if logger == nil {
		return func(Event) {}
	}

	return func(e Event) {
		switch e.Type {
		case EventError:
			logger.Error(e.Message, e.Args...)
		case EventWarning:
			logger.Warn(e.Message, e.Args...)
		case EventInfo:
			logger.Info(e.Message, e.Args...)
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}

// Observer receives the outcome of every Match and path generation.
// It is the hook used by the metrics package.
// Implementations must be safe for concurrent use.
type Observer interface {
	// ObserveMatch is called once per Match. name is empty when nothing matched.
	ObserveMatch(name string, ok bool)
	// ObserveGenerate is called once per MakePath or BuildPath.
	ObserveGenerate(name string, ok bool)
}

func (r *Registry) emit(t EventType, msg string, args ...any) {
	r.eventHandler(Event{Type: t, Message: msg, Args: args})
}
