// Package mongo provides MongoDB client initialization, health checking and
// the change-stream feed that drives notifications.
//
// New and NewWithDatabase retry the initial connection with exponential
// backoff, which covers managed-cluster cold starts and brief network
// interruptions during deploys. The connection is verified with a ping
// before it is returned.
//
// Basic usage:
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, cfg.Database)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Client().Disconnect(ctx)
//
// # Change feed
//
// Feed watches one collection for insert, update and replace operations and
// publishes each as a notify.ChangeEvent:
//
//	feed := mongo.NewFeed(db, publisher, feedCfg,
//		mongo.WithTokenStore(redis.NewTokenStore(rdb)),
//		mongo.WithFeedLogger(log),
//	)
//	g.Go(feed.Run(ctx))
//
// Updates carry a before snapshot only when the collection has
// changeStreamPreAndPostImages enabled:
//
//	db.runCommand({collMod: "projectRequests", changeStreamPreAndPostImages: {enabled: true}})
//
// Without pre-images the update description decides: an update that does not
// write or remove status is passed on with Before equal to After, so it never
// reads as a status change. A replace without a pre-image carries no such
// description and is treated as a status change.
//
// The resume token is checkpointed after each change is published. On
// restart the feed resumes from the checkpoint; if the token has fallen out
// of the oplog window it watches from the current time instead.
//
// # Configuration
//
//	MONGODB_URL                 (required)
//	MONGODB_DATABASE            (default: app)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//	FEED_COLLECTION             (default: projectRequests)
//	FEED_CHECKPOINT_KEY         (default: changenotify:resume:projectRequests)
//	FEED_RECONNECT_DELAY        (default: 2s)
//	FEED_MAX_RECONNECT_DELAY    (default: 1m)
//
// # Error Handling
//
//	ErrFailedToConnectToMongo - all connection attempts failed
//	ErrHealthcheckFailed      - health check ping failed
//	ErrWatchFailed            - the change stream could not be opened
//	ErrDecodeChange           - a change document could not be decoded
//	ErrCheckpointFailed       - the resume token could not be saved
package mongo
