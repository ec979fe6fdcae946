package config

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "DROPSIGHT_DB_DSN"
	EnvDBHost = "DROPSIGHT_DB_HOST"
	EnvDBUser = "DROPSIGHT_DB_USER"
	EnvDBName = "DROPSIGHT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
