package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"4000"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Auth. JWTSecret has no default on purpose; startup fails without it.
	JWTSecret   string `envconfig:"JWT_SECRET"`
	TokenTTLMin uint   `envconfig:"TOKEN_TTL_MIN" default:"480"`

	// File intake
	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`

	// RENIEC identity registry
	ReniecBaseURL string `envconfig:"RENIEC_BASE_URL" default:"https://api.decolecta.com"`
	ReniecToken   string `envconfig:"RENIEC_TOKEN"`

	// Completion endpoint for document analysis
	IABaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	IAAPIKey  string `envconfig:"OPENAI_API_KEY"`
	IAModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
}
