package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env carries every setting the service reads. Handlers and services never
// touch os.Getenv themselves; whatever an operation needs is passed in.
type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	// Org-level settlement settings.
	OrgName    string
	WeekEndsOn time.Weekday
	NodeID     int64
}

// LoadEnv reads .env (when present) then the environment, applying defaults.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = "super-secret-key-change-me"
	}

	orgName := strings.TrimSpace(os.Getenv("ORG_NAME"))
	if orgName == "" {
		orgName = "Hauler Aggregates"
	}

	return Env{
		AppAddr:    appAddr,
		GinMode:    strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:     envOr("DB_USER", "root"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     envOr("DB_HOST", "127.0.0.1:3306"),
		DBName:     envOr("DB_NAME", "hauler_app"),
		JWTSecret:  jwtSecret,
		OrgName:    orgName,
		WeekEndsOn: parseWeekday(os.Getenv("SETTLEMENT_WEEK_ENDS_ON")),
		NodeID:     parseNodeID(os.Getenv("NODE_ID")),
	}
}

// parseNodeID reads the snowflake node number; each running instance needs
// its own so reference numbers never collide.
func parseNodeID(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 1
	}
	return v
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// parseWeekday maps a weekday name to time.Weekday; settlement weeks end on
// Friday unless configured otherwise.
func parseWeekday(s string) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday
	case "monday":
		return time.Monday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "saturday":
		return time.Saturday
	default:
		return time.Friday
	}
}
