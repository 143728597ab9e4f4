package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`

	// banco de documentos externo (árvore endereçada por caminho)
	StoreBaseURL    string `yaml:"store_base_url" env:"STORE_BASE_URL" env-required:"true"`
	StoreAuthSecret string `yaml:"store_auth_secret" env:"STORE_AUTH_SECRET"`

	// serviço de IA das estimativas
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"gemini_model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
