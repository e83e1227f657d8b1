package query

import (
	"log/slog"
	"time"
)

// EventType names a phase of a search
type EventType string

const (
	EventParse   EventType = "parse"
	EventResolve EventType = "resolve"
	EventExecute EventType = "execute"
)

// Event is emitted at each phase of a search
type Event struct {
	Type      EventType   // Phase that finished
	SearchID  string      // Shared by all events of one search
	Timestamp time.Time   // When the phase finished
	Data      interface{} // Plan, Resolution or Explanation depending on Type
}

// Observer receives search events
type Observer interface {
	OnEvent(event Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(event Event)

// OnEvent calls f(event)
func (f ObserverFunc) OnEvent(event Event) {
	f(event)
}

// LoggingObserver logs every event at debug level, and completed searches at info
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates an observer writing to logger (slog.Default() if nil)
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements Observer
func (lo *LoggingObserver) OnEvent(event Event) {
	switch data := event.Data.(type) {
	case Plan:
		lo.logger.Debug("search_parsed",
			"search_id", event.SearchID,
			"kind", data.Kind.String(),
			"query", data.String(),
		)
	case Resolution:
		lo.logger.Debug("search_resolved",
			"search_id", event.SearchID,
			"key", data.Criterion.Key,
			"column", data.Column,
			"tier", data.Tier.String(),
			"wildcard", data.Wildcard,
		)
	case Explanation:
		lo.logger.Info("search_executed",
			"search_id", event.SearchID,
			"kind", data.Plan.Kind.String(),
			"query", data.Plan.String(),
			"skipped", len(data.Skipped()),
			"matched", data.Matched,
			"total", data.Total,
			"duration", data.Duration,
		)
	default:
		lo.logger.Debug("search_event",
			"event", event.Type,
			"search_id", event.SearchID,
			"data", event.Data,
		)
	}
}
