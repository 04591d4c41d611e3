// Package redis provides Redis client initialization, health checking and a
// resume-token store for the change feed.
//
//   - Connect: creates a client, retrying with exponential backoff until PING succeeds
//   - Healthcheck: returns a probe for readiness endpoints
//   - TokenStore: persists change stream resume tokens between restarts
//
// # Configuration
//
//	REDIS_URL              (default: redis://localhost:6379/0)
//	REDIS_RETRY_ATTEMPTS   (default: 3)
//	REDIS_RETRY_INTERVAL   (default: 5s)
//	REDIS_CONNECT_TIMEOUT  (default: 30s)
//	REDIS_TOKEN_TTL        (default: 168h)
//
// Both redis:// and rediss:// (TLS) URLs are accepted; anything else is
// rejected with ErrFailedToParseRedisConnString.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	feed := mongo.NewFeed(db, publisher, feedCfg,
//		mongo.WithTokenStore(redis.NewTokenStore(client, cfg.TokenTTL)))
//
// The TTL should exceed the oplog window. A token older than the window
// cannot be resumed anyway, so expiring it costs nothing.
//
// # Error Handling
//
//   - ErrFailedToParseRedisConnString: malformed URL or unsupported scheme
//   - ErrRedisNotReady: no successful PING within the retry budget
//   - ErrEmptyConnectionURL: no URL configured
//   - ErrHealthcheckFailed: health check ping failed
//   - ErrTokenStore: a token read or write failed
package redis
