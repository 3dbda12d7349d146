package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skillsphere/backend/pkg/gateway"
)

type Config struct {
	Addr          string         `yaml:"addr"`
	JWTSecret     string         `yaml:"jwt_secret"`
	APITimeout    time.Duration  `yaml:"timeout"`
	DatabasePath  string         `yaml:"database_path"`
	TokenDuration time.Duration  `yaml:"token_duration"`
	Engine        EngineConfig   `yaml:"engine"`
	Gateway       gateway.Config `yaml:"gateway"`
	Store         StoreConfig    `yaml:"store"`
}

// EngineConfig controls roadmap/resume generation.
type EngineConfig struct {
	Model           string        `yaml:"model"`
	TemplateVersion string        `yaml:"template_version"`
	Timeout         time.Duration `yaml:"timeout"`
}

// StoreConfig points at the S3-compatible artifact store holding roadmap
// documents.
type StoreConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("SKILLSPHERE_ADDR", ":8080"),
		JWTSecret:     getEnv("SKILLSPHERE_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("SKILLSPHERE_DATABASE_PATH", "skillsphere.db"),
		TokenDuration: 1 * time.Hour,
		Engine: EngineConfig{
			Model:           getEnv("SKILLSPHERE_MODEL", "llama3"),
			TemplateVersion: "v1",
			Timeout:         8 * time.Second,
		},
		Gateway: gateway.DefaultConfig(),
		Store: StoreConfig{
			Endpoint:     getEnv("SKILLSPHERE_S3_ENDPOINT", "http://localhost:9000"),
			Region:       getEnv("SKILLSPHERE_S3_REGION", "us-east-1"),
			Bucket:       getEnv("SKILLSPHERE_S3_BUCKET", "skillsphere"),
			AccessKey:    getEnv("SKILLSPHERE_S3_ACCESS_KEY", "minioadmin"),
			SecretKey:    getEnv("SKILLSPHERE_S3_SECRET_KEY", "minioadmin"),
			UsePathStyle: getEnvBool("SKILLSPHERE_S3_PATH_STYLE", true),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	return def
}
