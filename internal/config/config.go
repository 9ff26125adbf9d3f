package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR"`
	JWTSecret   string `env:"JWT_SECRET"`

	// Base host used to build perfume photo URLs in order summaries.
	PhotoBaseURL string `env:"PHOTO_BASE_URL" envDefault:"http://localhost:8080"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
