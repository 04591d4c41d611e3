// Package notify turns change-feed events about project requests into
// notification email.
//
// Pipeline per event:
//
//	ChangeEvent -> ClassifyCreate / ClassifyUpdate -> Normalize -> Renderer.Render (per role) -> Dispatcher.Dispatch
//
// Records arrive as loosely-typed Snapshots. Field extraction tolerates missing
// fields, nulls, legacy spellings (sourceLanguage, targetLanguage, file) and the
// three historical shapes of the files field. Normalize never fails; absent data
// renders as Placeholder.
//
// Credentials are resolved once with ResolveCredentials and injected into the
// Renderer. The Dispatcher swallows every delivery failure after logging it,
// so a trigger never fails and the feed never redelivers because of a send.
package notify
