package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/changenotify/core/logger"
)

type eventSource interface {
	Events() <-chan Event
}

// Processor consumes events from a source and runs every matching handler in
// its own goroutine. Handler errors and panics are logged and counted; they
// never stop the processor.
type Processor struct {
	handlers map[string][]Handler
	source   eventSource
	logger   *slog.Logger

	shutdownTimeout time.Duration
	sem             chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	eventsProcessed atomic.Int64
	eventsFailed    atomic.Int64
	activeEvents    atomic.Int32
}

// ProcessorStats provides observability counters.
type ProcessorStats struct {
	EventsProcessed int64
	EventsFailed    int64
	ActiveEvents    int32
	IsRunning       bool
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithHandler registers one or more handlers.
func WithHandler(handlers ...Handler) ProcessorOption {
	return func(p *Processor) {
		for _, h := range handlers {
			p.handlers[h.EventName()] = append(p.handlers[h.EventName()], h)
		}
	}
}

// WithEventSource sets where events are read from.
func WithEventSource(source eventSource) ProcessorOption {
	return func(p *Processor) {
		if source != nil {
			p.source = source
		}
	}
}

// WithShutdownTimeout bounds how long Stop waits for running handlers.
func WithShutdownTimeout(d time.Duration) ProcessorOption {
	return func(p *Processor) {
		if d > 0 {
			p.shutdownTimeout = d
		}
	}
}

// WithMaxConcurrentHandlers caps concurrently running handlers. 0 means unlimited.
func WithMaxConcurrentHandlers(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.sem = make(chan struct{}, n)
		}
	}
}

// WithProcessorLogger configures structured logging for processor operations.
func WithProcessorLogger(l *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProcessor creates a processor.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		handlers:        make(map[string][]Handler),
		shutdownTimeout: 30 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start consumes events until ctx is cancelled or the source is closed.
// It blocks; handlers still running when it returns are awaited by Stop.
func (p *Processor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return ErrProcessorAlreadyStarted
	}
	if p.source == nil {
		p.mu.Unlock()
		return ErrEventSourceNil
	}
	if len(p.handlers) == 0 {
		p.mu.Unlock()
		return ErrNoHandlers
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "event processor started", logger.Count("handler_count", len(p.handlers)))

	events := p.source.Events()
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("event processor stopping")
			return ctx.Err()
		case evt, ok := <-events:
			if !ok {
				p.logger.Info("event source closed")
				return nil
			}
			p.dispatch(ctx, evt)
		}
	}
}

// Stop cancels consumption and waits for active handlers up to the shutdown timeout.
func (p *Processor) Stop() error {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return ErrProcessorNotStarted
	}
	cancel()
	return p.Wait()
}

// Wait blocks until all in-flight handlers return or the shutdown timeout elapses.
func (p *Processor) Wait() error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(p.shutdownTimeout):
		p.logger.Warn("event processor shutdown timeout exceeded, some handlers may be abandoned",
			logger.Duration(p.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", p.shutdownTimeout)
	}
}

// Run adapts the processor to errgroup-style lifecycles.
func (p *Processor) Run(ctx context.Context) func() error {
	return func() error {
		err := p.Start(ctx)
		_ = p.Stop()
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
}

func (p *Processor) dispatch(ctx context.Context, evt Event) {
	handlers := p.handlers[evt.Name]
	if len(handlers) == 0 {
		p.logger.WarnContext(ctx, "no handlers for event",
			logger.EventID(evt.ID), slog.String("event_name", evt.Name))
		return
	}

	for _, h := range handlers {
		if p.sem != nil {
			select {
			case p.sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}

		p.wg.Add(1)
		p.activeEvents.Add(1)
		go func() {
			defer p.wg.Done()
			defer p.activeEvents.Add(-1)
			if p.sem != nil {
				defer func() { <-p.sem }()
			}
			p.run(WithEventMeta(ctx, evt), h, evt)
		}()
	}
}

func (p *Processor) run(ctx context.Context, h Handler, evt Event) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.eventsFailed.Add(1)
			p.logger.ErrorContext(ctx, "event handler panicked",
				logger.EventID(evt.ID), slog.String("event_name", evt.Name), logger.Panic(r))
		}
	}()

	if err := h.Handle(ctx, evt.Payload); err != nil {
		p.eventsFailed.Add(1)
		p.logger.ErrorContext(ctx, "event handler failed",
			logger.EventID(evt.ID), slog.String("event_name", evt.Name),
			logger.Duration(time.Since(start)), logger.Error(err))
		return
	}

	p.eventsProcessed.Add(1)
	p.logger.DebugContext(ctx, "event handler completed",
		logger.EventID(evt.ID), slog.String("event_name", evt.Name), logger.Duration(time.Since(start)))
}

// Stats returns current processor counters.
func (p *Processor) Stats() ProcessorStats {
	p.mu.Lock()
	running := p.cancel != nil
	p.mu.Unlock()

	return ProcessorStats{
		EventsProcessed: p.eventsProcessed.Load(),
		EventsFailed:    p.eventsFailed.Load(),
		ActiveEvents:    p.activeEvents.Load(),
		IsRunning:       running,
	}
}

// Healthcheck reports an error when the processor is not running.
func (p *Processor) Healthcheck(context.Context) error {
	if !p.Stats().IsRunning {
		return errors.Join(ErrHealthcheckFailed, ErrProcessorNotStarted)
	}
	return nil
}
