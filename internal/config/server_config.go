package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Store drivers.
const (
	StoreDriverBadger   = "badger"
	StoreDriverPostgres = "postgres"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	BaseURL                        string
	EnableCORSMiddleware           bool
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableTrailingSlashMiddleware  bool
	BodyLimit                      string
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogRequestQuery    bool
	LogResponseBody    bool
	LogResponseHeader  bool
	LogCaller          bool
	PrettyPrintConsole bool
}

type Management struct {
	LivenessTimeout  time.Duration
	ReadinessTimeout time.Duration
}

// Store selects the persistence backend of accounts and settings. An empty BadgerDir
// keeps everything in memory.
type Store struct {
	Driver    string
	BadgerDir string
}

type Database struct {
	Host             string
	Port             int
	Username         string
	Password         string `json:"-"`
	Database         string
	AdditionalParams map[string]string `json:",omitempty"`
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// ConnectionString generates a connection string to be passed to sql.Open or equivalents, assuming Postgres syntax
func (c Database) ConnectionString() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s", c.Host, c.Port, c.Username, c.Password, c.Database))

	if _, ok := c.AdditionalParams["sslmode"]; !ok {
		b.WriteString(" sslmode=disable")
	}

	if len(c.AdditionalParams) > 0 {
		params := make([]string, 0, len(c.AdditionalParams))
		for param := range c.AdditionalParams {
			params = append(params, param)
		}

		sort.Strings(params)

		for _, param := range params {
			fmt.Fprintf(&b, " %s=%s", param, c.AdditionalParams[param])
		}
	}

	return b.String()
}

type Discovery struct {
	NetworkConcurrency int
	AddressCacheSize   int
}

type Hardware struct {
	// BatchTimeout bounds a single batched device request, zero disables it
	BatchTimeout time.Duration
}

type Network struct {
	// CatalogFile overrides the built-in network catalog
	CatalogFile string
}

type I18n struct {
	DefaultLanguage language.Tag
}

type Metrics struct {
	Enabled   bool
	Namespace string
}

type Server struct {
	Database   Database
	Echo       EchoServer
	Logger     LoggerServer
	Management Management
	Store      Store
	Discovery  Discovery
	Hardware   Hardware
	Network    Network
	I18n       I18n
	Metrics    Metrics
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Database: Database{
			Host:     util.GetEnv("PGHOST", "postgres"),
			Port:     util.GetEnvAsInt("PGPORT", 5432),
			Database: util.GetEnv("PGDATABASE", "development"),
			Username: util.GetEnv("PGUSER", "dbuser"),
			Password: util.GetEnv("PGPASSWORD", ""),
			AdditionalParams: map[string]string{
				"sslmode": util.GetEnv("PGSSLMODE", "disable"),
			},
			MaxOpenConns:    util.GetEnvAsInt("DB_MAX_OPEN_CONNS", util.GetEnvAsInt("PGMAXOPENCONNS", 16)),
			MaxIdleConns:    util.GetEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: util.GetEnvAsDuration("DB_CONN_MAX_LIFETIME", 60*time.Second),
		},
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			BaseURL:                        util.GetEnv("SERVER_ECHO_BASE_URL", "http://localhost:8080"),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableTrailingSlashMiddleware:  util.GetEnvAsBool("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true),
			BodyLimit:                      util.GetEnv("SERVER_ECHO_BODY_LIMIT", "1M"),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogRequestQuery:    util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_QUERY", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			LogResponseHeader:  util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			LogCaller:          util.GetEnvAsBool("SERVER_LOGGER_LOG_CALLER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Management: Management{
			LivenessTimeout:  util.GetEnvAsDuration("SERVER_MANAGEMENT_LIVENESS_TIMEOUT", 5*time.Second),
			ReadinessTimeout: util.GetEnvAsDuration("SERVER_MANAGEMENT_READINESS_TIMEOUT", 4*time.Second),
		},
		Store: Store{
			Driver:    util.GetEnvEnum("STORE_DRIVER", StoreDriverBadger, []string{StoreDriverBadger, StoreDriverPostgres}),
			BadgerDir: util.GetEnv("STORE_BADGER_DIR", filepath.Join(btcutil.AppDataDir(ModuleName, false), "badger")),
		},
		Discovery: Discovery{
			NetworkConcurrency: util.GetEnvAsInt("DISCOVERY_NETWORK_CONCURRENCY", 8),
			AddressCacheSize:   util.GetEnvAsInt("DISCOVERY_ADDRESS_CACHE_SIZE", 4096),
		},
		Hardware: Hardware{
			BatchTimeout: util.GetEnvAsDuration("HARDWARE_BATCH_TIMEOUT", 2*time.Minute),
		},
		Network: Network{
			CatalogFile: util.GetEnv("NETWORK_CATALOG_FILE", ""),
		},
		I18n: I18n{
			DefaultLanguage: util.GetEnvAsLanguageTag("I18N_DEFAULT_LANGUAGE", language.English),
		},
		Metrics: Metrics{
			Enabled:   util.GetEnvAsBool("METRICS_ENABLED", true),
			Namespace: util.GetEnv("METRICS_NAMESPACE", "roydex"),
		},
	}
}
