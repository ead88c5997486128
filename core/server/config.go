package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// ShutdownSeconds bounds the graceful shutdown wait.
	ShutdownSeconds int `mapstructure:"shutdown_seconds" default:"10"`
	// BodyLimitMB caps request bodies, which bounds the size of HTTP uploads.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"512"`
}

// IsSecured reports whether API key authentication is enabled.
func (c Config) IsSecured() bool {
	return c.ApiKey != ""
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
