package mongo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/changenotify/core/logger"
	"github.com/dmitrymomot/changenotify/notify"
)

// Publisher hands a converted change to the event pipeline.
type Publisher interface {
	Publish(ctx context.Context, payload any) (string, error)
}

// ResumeTokenStore persists the change stream position between restarts.
// Load returns nil, nil when nothing was saved yet.
type ResumeTokenStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, token []byte) error
}

// NopTokenStore never remembers anything; every start watches from "now".
type NopTokenStore struct{}

func (NopTokenStore) Load(context.Context, string) ([]byte, error) { return nil, nil }
func (NopTokenStore) Save(context.Context, string, []byte) error   { return nil }

// changeStream is the subset of *mongo.ChangeStream the feed consumes.
type changeStream interface {
	Next(ctx context.Context) bool
	Decode(val any) error
	ResumeToken() bson.Raw
	Err() error
	Close(ctx context.Context) error
}

type openFunc func(ctx context.Context, resumeAfter bson.Raw) (changeStream, error)

// Feed turns collection change events into notify.ChangeEvent values and
// publishes them. Inserts become Created, updates and replaces become Updated.
type Feed struct {
	open      openFunc
	publisher Publisher
	tokens    ResumeTokenStore
	cfg       FeedConfig
	logger    *slog.Logger
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithTokenStore sets where resume tokens are checkpointed.
func WithTokenStore(s ResumeTokenStore) FeedOption {
	return func(f *Feed) {
		if s != nil {
			f.tokens = s
		}
	}
}

// WithFeedLogger sets the logger.
func WithFeedLogger(l *slog.Logger) FeedOption {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

var errStreamClosed = errors.New("change stream closed by server")

var watchPipeline = mongo.Pipeline{
	{{Key: "$match", Value: bson.D{{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace"}}}}}}},
}

// NewFeed watches db.<cfg.Collection>. Pre-images are requested when
// available; the collection needs changeStreamPreAndPostImages enabled for
// updates to carry a before snapshot.
func NewFeed(db *mongo.Database, pub Publisher, cfg FeedConfig, opts ...FeedOption) *Feed {
	coll := db.Collection(cfg.Collection)
	open := func(ctx context.Context, resumeAfter bson.Raw) (changeStream, error) {
		o := options.ChangeStream().
			SetFullDocument(options.UpdateLookup).
			SetFullDocumentBeforeChange(options.WhenAvailable)
		if len(resumeAfter) > 0 {
			o.SetResumeAfter(resumeAfter)
		}
		cs, err := coll.Watch(ctx, watchPipeline, o)
		if err != nil {
			return nil, err
		}
		return cs, nil
	}
	return newFeed(open, pub, cfg, opts...)
}

func newFeed(open openFunc, pub Publisher, cfg FeedConfig, opts ...FeedOption) *Feed {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 2 * time.Second
	}
	if cfg.MaxReconnect < cfg.ReconnectDelay {
		cfg.MaxReconnect = cfg.ReconnectDelay
	}
	f := &Feed{
		open:      open,
		publisher: pub,
		tokens:    NopTokenStore{},
		cfg:       cfg,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start consumes the change stream until ctx is cancelled. A broken stream
// is reopened from the last checkpoint with capped exponential backoff.
func (f *Feed) Start(ctx context.Context) error {
	backoff := retry.WithCappedDuration(f.cfg.MaxReconnect, retry.NewExponential(f.cfg.ReconnectDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := f.consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			err = errStreamClosed
		}
		f.logger.WarnContext(ctx, "change stream interrupted, reconnecting",
			slog.String("collection", f.cfg.Collection), logger.Error(err))
		return retry.RetryableError(err)
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Run adapts the feed to errgroup-style lifecycles.
func (f *Feed) Run(ctx context.Context) func() error {
	return func() error { return f.Start(ctx) }
}

func (f *Feed) consume(ctx context.Context) error {
	token, err := f.tokens.Load(ctx, f.cfg.CheckpointKey)
	if err != nil {
		f.logger.WarnContext(ctx, "resume token unavailable, watching from now", logger.Error(err))
		token = nil
	}

	stream, err := f.open(ctx, bson.Raw(token))
	if err != nil {
		if len(token) > 0 {
			// A token older than the oplog window cannot be resumed.
			f.logger.WarnContext(ctx, "resume failed, watching from now", logger.Error(err))
			stream, err = f.open(ctx, nil)
		}
		if err != nil {
			return errors.Join(ErrWatchFailed, err)
		}
	}
	defer func() { _ = stream.Close(context.WithoutCancel(ctx)) }()

	f.logger.InfoContext(ctx, "watching change stream",
		slog.String("collection", f.cfg.Collection), slog.Bool("resumed", len(token) > 0))

	for stream.Next(ctx) {
		var raw bson.Raw
		if err := stream.Decode(&raw); err != nil {
			f.logger.ErrorContext(ctx, "skipping undecodable change", logger.Error(errors.Join(ErrDecodeChange, err)))
			f.checkpoint(ctx, stream.ResumeToken())
			continue
		}

		evt, ok, err := decodeChange(raw)
		switch {
		case err != nil:
			f.logger.ErrorContext(ctx, "skipping undecodable change", logger.Error(err))
		case !ok:
			f.logger.DebugContext(ctx, "ignoring change", slog.String("collection", f.cfg.Collection))
		default:
			if _, err := f.publisher.Publish(ctx, evt); err != nil {
				// Not checkpointed: the change is replayed after reconnect.
				return fmt.Errorf("publish change %s: %w", evt.RecordID, err)
			}
		}
		f.checkpoint(ctx, stream.ResumeToken())
	}
	return stream.Err()
}

func (f *Feed) checkpoint(ctx context.Context, token bson.Raw) {
	if len(token) == 0 {
		return
	}
	if err := f.tokens.Save(ctx, f.cfg.CheckpointKey, token); err != nil {
		f.logger.WarnContext(ctx, "resume token not saved",
			logger.Error(errors.Join(ErrCheckpointFailed, err)))
	}
}

type changeDocument struct {
	OperationType            string `bson:"operationType"`
	DocumentKey              bson.M `bson:"documentKey"`
	FullDocument             bson.M `bson:"fullDocument"`
	FullDocumentBeforeChange bson.M `bson:"fullDocumentBeforeChange"`
	UpdateDescription        struct {
		UpdatedFields bson.M   `bson:"updatedFields"`
		RemovedFields []string `bson:"removedFields"`
	} `bson:"updateDescription"`
}

// touches reports whether an update description names field, either
// directly or through a dotted sub-path.
func (d changeDocument) touches(field string) bool {
	match := func(k string) bool { return k == field || strings.HasPrefix(k, field+".") }
	for k := range d.UpdateDescription.UpdatedFields {
		if match(k) {
			return true
		}
	}
	return slices.ContainsFunc(d.UpdateDescription.RemovedFields, match)
}

// decodeChange converts one raw change stream document. ok is false for
// operation types the notifier does not react to.
func decodeChange(raw bson.Raw) (notify.ChangeEvent, bool, error) {
	dec := bson.NewDecoder(bson.NewDocumentReader(bytes.NewReader(raw)))
	dec.DefaultDocumentM()

	var doc changeDocument
	if err := dec.Decode(&doc); err != nil {
		return notify.ChangeEvent{}, false, errors.Join(ErrDecodeChange, err)
	}

	evt := notify.ChangeEvent{RecordID: recordID(doc.DocumentKey["_id"])}
	switch doc.OperationType {
	case "insert":
		evt.Kind = notify.Created
		evt.After = snapshot(doc.FullDocument)
	case "update", "replace":
		evt.Kind = notify.Updated
		evt.Before = snapshot(doc.FullDocumentBeforeChange)
		evt.After = snapshot(doc.FullDocument)
		// Without a pre-image an update still says which fields it wrote.
		// Leaving status untouched means it is unchanged. A replace without a
		// pre-image keeps Before nil and counts as a status change.
		if evt.Before == nil && doc.OperationType == "update" && !doc.touches("status") {
			evt.Before = evt.After
		}
	default:
		return notify.ChangeEvent{}, false, nil
	}
	return evt, true, nil
}

func snapshot(m bson.M) notify.Snapshot {
	if m == nil {
		return nil
	}
	return notify.Snapshot(m)
}

func recordID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
