package identity

// Config holds configuration for the remote identity service connection.
type Config struct {
	// URL is the base URL of the identity service gateway.
	URL string `mapstructure:"url" default:"http://localhost:9130"`
	// Tenant is the tenant identifier stamped on every request.
	Tenant string `mapstructure:"tenant" default:"diku"`
	// Username is the service account used to authenticate.
	Username string `mapstructure:"username" default:""`
	// Password is the service account password.
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
