package notify

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/changenotify/core/event"
	"github.com/dmitrymomot/changenotify/core/logger"
)

// ChangeKind tags a ChangeEvent.
type ChangeKind string

const (
	Created ChangeKind = "created"
	Updated ChangeKind = "updated"
)

// ChangeEvent is one delivery from the change feed. Created events carry only
// After. Delivery is at-least-once; handlers tolerate duplicates.
type ChangeEvent struct {
	Kind     ChangeKind `json:"kind"`
	RecordID string     `json:"record_id"`
	Before   Snapshot   `json:"before,omitempty"`
	After    Snapshot   `json:"after,omitempty"`
}

// Service runs the trigger pipeline: classify, normalize, render, dispatch.
type Service struct {
	renderer   *Renderer
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewService wires the pipeline. A nil logger discards output.
func NewService(renderer *Renderer, dispatcher *Dispatcher, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{renderer: renderer, dispatcher: dispatcher, logger: log}
}

// Handle routes evt by kind. It always returns nil so the upstream feed never
// sees a failure to redeliver.
func (s *Service) Handle(ctx context.Context, evt ChangeEvent) error {
	switch evt.Kind {
	case Created:
		return s.OnCreated(ctx, evt)
	case Updated:
		return s.OnUpdated(ctx, evt)
	default:
		s.logger.WarnContext(ctx, "unknown change kind, skipping",
			slog.String("kind", string(evt.Kind)), logger.RecordID(evt.RecordID))
		return nil
	}
}

// OnCreated notifies the internal inbox and the client about a new record.
func (s *Service) OnCreated(ctx context.Context, evt ChangeEvent) error {
	s.run(ctx, evt, ClassifyCreate(evt.After))
	return nil
}

// OnUpdated notifies the client when the record status changed.
func (s *Service) OnUpdated(ctx context.Context, evt ChangeEvent) error {
	s.run(ctx, evt, ClassifyUpdate(evt.Before, evt.After))
	return nil
}

// Plan returns the messages evt would produce without sending anything.
func (s *Service) Plan(ctx context.Context, evt ChangeEvent) []Message {
	var d Decision
	switch evt.Kind {
	case Created:
		d = ClassifyCreate(evt.After)
	case Updated:
		d = ClassifyUpdate(evt.Before, evt.After)
	default:
		return nil
	}
	return s.plan(ctx, evt, d)
}

func (s *Service) run(ctx context.Context, evt ChangeEvent, d Decision) {
	msgs := s.plan(ctx, evt, d)
	if len(msgs) == 0 {
		return
	}
	s.dispatcher.Dispatch(ctx, msgs)
}

func (s *Service) plan(ctx context.Context, evt ChangeEvent, d Decision) []Message {
	log := s.logger.With(
		logger.RecordID(evt.RecordID),
		logger.EventID(event.EventID(ctx)),
		slog.String("kind", string(evt.Kind)),
	)

	if !d.Notify {
		log.InfoContext(ctx, "notification skipped", logger.Reason(d.Reason))
		return nil
	}

	payload, err := NormalizeRecord(evt.RecordID, evt.After)
	if err != nil {
		log.DebugContext(ctx, "record normalized with placeholders", logger.Error(err))
	}
	msgs := make([]Message, 0, len(d.Roles))
	for _, role := range d.Roles {
		m, err := s.renderer.Render(role, payload)
		if err != nil {
			log.ErrorContext(ctx, "render failed", logger.Role(string(role)), logger.Error(err))
			continue
		}
		msgs = append(msgs, m)
	}

	log.InfoContext(ctx, "notification planned",
		logger.ProjectID(payload.ProjectID),
		slog.String("template", string(d.Template)),
		logger.Count("messages", len(msgs)))
	return msgs
}
