package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

type Config struct {
	Host           string
	Port           string
	ProjectID      string
	AllowedOrigins []string

	// SDKBackend selects the document store behind the facade.
	SDKBackend    string
	// SDKDefaultUID is the identity the SDK acts as when a request carries no token.
	SDKDefaultUID string

	ServiceAccountJSON string
	ServiceAccountPath string

	LogLevel    string
	SDKLogLevel string
	LogJSON     bool
}

func Load() Config {
	projectID := getenv("FIREBASE_PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	origins := getenv("ALLOWED_ORIGINS", "*")
	allowed := []string{}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	logJSON, _ := strconv.ParseBool(getenv("LOG_JSON", "false"))

	return Config{
		Host:               getenv("HOST", "0.0.0.0"),
		Port:               getenv("PORT", "8090"),
		ProjectID:          projectID,
		AllowedOrigins:     allowed,
		SDKBackend:         strings.ToLower(getenv("SDK_BACKEND", BackendFirestore)),
		SDKDefaultUID:      getenv("SDK_DEFAULT_UID", "local-user"),
		ServiceAccountJSON: getenv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getenv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		LogLevel:           getenv("LOG_LEVEL", "warn"),
		SDKLogLevel:        getenv("SDK_LOG_LEVEL", "debug"),
		LogJSON:            logJSON,
	}
}

// Addr is the listen address built from Host and Port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		result = multierror.Append(result, fmt.Errorf("PORT %q is not a valid port", c.Port))
	}
	switch c.SDKBackend {
	case BackendFirestore, BackendMemory:
	default:
		result = multierror.Append(result, fmt.Errorf("SDK_BACKEND %q must be %q or %q", c.SDKBackend, BackendFirestore, BackendMemory))
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("LOG_LEVEL %q is not a log level", c.LogLevel))
	}
	if hclog.LevelFromString(c.SDKLogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("SDK_LOG_LEVEL %q is not a log level", c.SDKLogLevel))
	}

	return result.ErrorOrNil()
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
