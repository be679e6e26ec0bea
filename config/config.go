package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS        = ""                 // e.g. "example.com,example2.com"
	MYSQL_DSN          = ""                 // MySQL will be used if this is set
	SQLITE_FILE        = ""                 // SQLite will be used if MYSQL_DSN is not configured and this is set
	BIND_ADDRESS       = "0.0.0.0:8080"
	SESSION_KEY        = "please change me" // Cookie session signing key
	NOTIFY_SERVER      = ""                 // Status-change notifications are POSTed here; empty disables them
	DEFAULT_BUCKET_DIR = ""                 // Used for creating the initial photo bucket
	DEBUG_MODE         = true
	INVITE_TTL_DAYS    = 7 // Default validity window for album invite tokens
)

func init() {
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("NOTIFY_SERVER", &NOTIFY_SERVER)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("INVITE_TTL_DAYS", &INVITE_TTL_DAYS)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
