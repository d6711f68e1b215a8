package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
	TokenTTLMinutes int    // Lifetime of a session token
	TickRate        int    // Simulation ticks per second
	ScreenWidth     int    // Display width the grid is derived from
	ScreenHeight    int    // Display height the grid is derived from
	CellSize        int    // Side of one cell on the display
	MazeSeed        int64  // Fixed seed; 0 seeds from the clock
	BestTimeBackend string // file, redis or mongo
	BestTimeFile    string // Path of the file backend
	BestTimeKey     string // Redis key or mongo document id
	RedisAddr       string // Address of the redis server
	RedisPassword   string // Password for the redis server
	RedisDB         int    // Redis logical database
	DBHost          string // Hostname or IP address for the database
	DBPort          int    // Port number for the database
	DBUser          string // Username for the database
	DBPassword      string // Password for the database
	DBName          string // Name of the database
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Debugf("[APP] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:       getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:       getEnvWithDefault("JWT_ISSUER", "vinom-maze"),
		TokenTTLMinutes: getEnvAsIntWithDefault("SESSION_TOKEN_TTL_MIN", 60),
		TickRate:        getEnvAsIntWithDefault("TICK_RATE", 60),
		ScreenWidth:     getEnvAsIntWithDefault("SCREEN_WIDTH", 800),
		ScreenHeight:    getEnvAsIntWithDefault("SCREEN_HEIGHT", 600),
		CellSize:        getEnvAsIntWithDefault("CELL_SIZE", 40),
		MazeSeed:        int64(getEnvAsIntWithDefault("MAZE_SEED", 0)),
		BestTimeBackend: getEnvWithDefault("BEST_TIME_BACKEND", "file"),
		BestTimeFile:    getEnvWithDefault("BEST_TIME_FILE", "best_time.txt"),
		BestTimeKey:     getEnvWithDefault("BEST_TIME_KEY", "vinom-maze:best_time"),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsIntWithDefault("REDIS_DB", 0),
		DBHost:          getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:          getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:          getEnvWithDefault("DB_USER", ""),
		DBPassword:      getEnvWithDefault("DB_PASS", ""),
		DBName:          getEnvWithDefault("DB_NAME", "vinom"),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable or logs a fatal error if it cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
