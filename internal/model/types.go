// Package model defines shared configuration structures.
package model

// Config defines game settings.
type Config struct {
	Level    string
	Sound    bool
	Music    bool
	PoolPath string
}

// HighScoreConfig selects and configures the high score backend.
type HighScoreConfig struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// ServerConfig configures the browser front end.
type ServerConfig struct {
	Addr string
}

// Backends supported by the store package.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendJSON   = "json"
)
