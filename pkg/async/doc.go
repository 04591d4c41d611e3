// Package async runs callbacks concurrently behind a recover boundary.
//
// Exec starts one callback and returns a future; Settle fans a callback out
// over a slice and returns one error per item:
//
//	errs := async.Settle(ctx, messages, func(ctx context.Context, m Message) error {
//		return sender.SendEmail(ctx, m.Params())
//	})
//	for i, err := range errs {
//		if err != nil {
//			log.Warn("send failed", "recipient", messages[i].To, "error", err)
//		}
//	}
package async
