// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig is everything specific to this application:
// the storage backend, session cookies, the admin allow-list, and the
// Google sign-in credentials.
type AppConfig struct {
	// Storage backend: "memory" runs on the seeded in-process store,
	// "mongo" on MongoDB.
	StoreBackend string

	// MongoDB connection configuration (ignored for the memory backend)
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// AdminEmails is the allow-list of addresses that act as Admin
	// regardless of their stored role.
	AdminEmails []string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks, e.g. "http://localhost:8080"
	BaseURL string
}
