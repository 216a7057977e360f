package config

// secretEnvName is the environment variable carrying the token signing
// secret.
const secretEnvName = "APPLICATION_ENCRYPTION_SEED"

// databaseEnvName optionally overrides the database DSN.
const databaseEnvName = "DATABASE_DSN"

// parseEnv overlays values from the environment onto the Config. The
// getenv function is injected so tests can run hermetically.
func parseEnv(config *Config, getenv func(string) string) {
	if v := getenv(secretEnvName); v != "" {
		config.SecretKey = v
	}
	if v := getenv(databaseEnvName); v != "" {
		config.DatabaseDSN = v
	}
}
