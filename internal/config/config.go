package config

// Config is the full application configuration, read from the environment.
type Config struct {
	App      AppConfig      `env-prefix:"APP_"`
	HTTP     HTTPConfig     `env-prefix:"HTTP_"`
	Database DatabaseConfig `env-prefix:"DB_"`
	Auth     AuthConfig     `env-prefix:"AUTH_"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"PRETTY" env-default:"false"`
}

type HTTPConfig struct {
	Addr string `env:"ADDR" env-default:":8080"`
}

type DatabaseConfig struct {
	Path string `env:"PATH" env-default:"projectpad.db"`
}

type AuthConfig struct {
	// JWTSecret signs session cookies; HMAC-SHA256 needs a real key.
	JWTSecret    string  `env:"JWT_SECRET"`
	BcryptCost   int     `env:"BCRYPT_COST" env-default:"12"`
	CookieSecure bool    `env:"COOKIE_SECURE" env-default:"true"`
	LoginRate    float64 `env:"LOGIN_RATE" env-default:"0.5"`
	LoginBurst   float64 `env:"LOGIN_BURST" env-default:"5"`
}
