package mongo

import "time"

// Config holds MongoDB connection settings. Defaults suit managed clusters
// where the first connection after idle can take several seconds.
type Config struct {
	ConnectionURL   string        `env:"MONGODB_URL,required"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryWrites     bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`
	RetryReads      bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
	Database        string        `env:"MONGODB_DATABASE" envDefault:"app"`
}

// FeedConfig selects the watched collection and the resume behaviour.
type FeedConfig struct {
	Collection     string        `env:"FEED_COLLECTION" envDefault:"projectRequests"`
	CheckpointKey  string        `env:"FEED_CHECKPOINT_KEY" envDefault:"changenotify:resume:projectRequests"`
	ReconnectDelay time.Duration `env:"FEED_RECONNECT_DELAY" envDefault:"2s"`
	MaxReconnect   time.Duration `env:"FEED_MAX_RECONNECT_DELAY" envDefault:"1m"`
}
