package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Canonical environment variable names, shared with tests and deploy tooling.
const (
	EnvAppEnv   = "PANOPORT_APP_ENV"
	EnvPort     = "PANOPORT_APP_PORT"
	EnvDBDSN    = "PANOPORT_DB_DSN"
	EnvDBHost   = "PANOPORT_DB_HOST"
	EnvDBUser   = "PANOPORT_DB_USER"
	EnvDBName   = "PANOPORT_DB_NAME"
	EnvRedisURL = "PANOPORT_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
