// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP/HTTPS ports,
// TLS, logging level, CORS, request limits); AppConfig is everything
// specific to ClubHub. The struct is passed to most lifecycle hooks, so
// any configuration needed during startup, request handling, or shutdown
// lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: clubhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for invitation share links and OAuth callbacks
	BaseURL string // e.g., "https://clubhub.my" or "http://localhost:3000"

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// SuperAdmin bootstrap
	SuperAdminEmail string // Email of the superadmin user (promoted on startup)
}
