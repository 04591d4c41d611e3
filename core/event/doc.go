// Package event is a small in-process event bus: a Publisher wraps payloads
// into Events, a ChannelTransport carries them, and a Processor fans each event
// out to type-matched handlers running in their own goroutines.
//
//	transport := event.NewChannelTransport(64)
//	publisher := event.NewPublisher(transport)
//	processor := event.NewProcessor(
//		event.WithEventSource(transport),
//		event.WithHandler(event.NewHandlerFunc(svc.Handle)),
//		event.WithMaxConcurrentHandlers(16),
//	)
//
//	go processor.Start(ctx)
//	id, err := publisher.Publish(ctx, notify.ChangeEvent{...})
//
// Handler errors and panics are logged and counted in Stats; they are never
// returned to the publisher.
package event
