package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/playmatatu/billiards/internal/game"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Table
	TableWidth  float64
	TableHeight float64

	// Physics
	BallRadius    float64
	PocketRadius  float64
	Friction      float64
	StopThreshold float64
	MaxPower      float64
	PowerStep     float64
	FrameRate     int

	// Sessions
	SessionIdleMinutes int
	MaxSessions        int

	// Security
	JWTSecret          string
	TableTokenTTLHours int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database (empty disables the shot journal)
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnv("MIGRATE_ON_START", "false") == "true",

		// Redis (empty disables shot event fan-out)
		RedisURL: getEnv("REDIS_URL", ""),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Table
		TableWidth:  getEnvFloat("TABLE_WIDTH", game.TableWidth),
		TableHeight: getEnvFloat("TABLE_HEIGHT", game.TableHeight),

		// Physics
		BallRadius:    getEnvFloat("BALL_RADIUS", game.BallRadius),
		PocketRadius:  getEnvFloat("POCKET_RADIUS", game.PocketRadius),
		Friction:      getEnvFloat("FRICTION", game.Friction),
		StopThreshold: getEnvFloat("STOP_THRESHOLD", game.StopThreshold),
		MaxPower:      getEnvFloat("MAX_POWER", game.MaxPower),
		PowerStep:     getEnvFloat("POWER_STEP", game.PowerStep),
		FrameRate:     getEnvInt("FRAME_RATE", 60),

		// Sessions
		SessionIdleMinutes: getEnvInt("SESSION_IDLE_MINUTES", 30),
		MaxSessions:        getEnvInt("MAX_SESSIONS", 100),

		// Security
		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		TableTokenTTLHours: getEnvInt("TABLE_TOKEN_TTL_HOURS", 12),
	}
}

// PhysicsParams returns the simulation parameters described by the config.
func (c *Config) PhysicsParams() game.Params {
	return game.Params{
		BallRadius:    c.BallRadius,
		PocketRadius:  c.PocketRadius,
		Friction:      c.Friction,
		StopThreshold: c.StopThreshold,
		MaxPower:      c.MaxPower,
		PowerStep:     c.PowerStep,
	}
}

// FrameInterval is the time between simulation steps.
func (c *Config) FrameInterval() time.Duration {
	rate := c.FrameRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// SessionIdleTimeout is how long a table may sit without input before it is closed.
func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
