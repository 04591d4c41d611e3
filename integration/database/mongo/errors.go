package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrWatchFailed            = errors.New("failed to open change stream")
	ErrDecodeChange           = errors.New("failed to decode change event")
	ErrCheckpointFailed       = errors.New("failed to checkpoint resume token")
)
