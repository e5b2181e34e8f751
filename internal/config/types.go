package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Auth          AuthConfig
	Slack         SlackConfig
	Turso         TursoConfig
	Gemini        GeminiConfig
	Playtomic     PlaytomicConfig
	ProjectID     string
}

// AuthConfig carries the signing secret for session tokens and the optional
// admin credential override. When Username/PasswordHash are empty the
// compiled-in defaults apply.
type AuthConfig struct {
	TokenSecret  string
	Username     string
	PasswordHash string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// GeminiConfig configures the summary and announcement client. An empty
// APIKey disables both features.
type GeminiConfig struct {
	APIKey string
}

// PlaytomicConfig configures roster import. An empty TenantID disables it.
type PlaytomicConfig struct {
	TenantID string
}
