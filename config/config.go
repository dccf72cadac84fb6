package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	MySQL struct {
		DSN string `yaml:"dsn"`
	} `yaml:"mysql"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
	} `yaml:"redis"`
	MinIO struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"minio"`
	Gemini struct {
		APIKey string `yaml:"-"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`
	OpenAI struct {
		APIKey      string `yaml:"-"`
		BaseURL     string `yaml:"base_url"`
		SpeechModel string `yaml:"speech_model"`
		Voice       string `yaml:"voice"`
	} `yaml:"openai"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Logging  struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

type PipelineConfig struct {
	FrameCap         int `yaml:"frame_cap"`
	MinIntervalSec   int `yaml:"min_interval_sec"`
	DescribePacingMS int `yaml:"describe_pacing_ms"`
	NarratePacingMS  int `yaml:"narrate_pacing_ms"`
	MaxNarrationLen  int `yaml:"max_narration_len"`
	Concurrency      int `yaml:"concurrency"`
}

// Load reads config.yaml plus a .env file (if present) for the oracle API keys.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := &Config{}
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	if c.MinIO.Endpoint == "" {
		return fmt.Errorf("minio.endpoint is required")
	}
	if c.MinIO.Bucket == "" {
		return fmt.Errorf("minio.bucket is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}

	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.OpenAI.SpeechModel == "" {
		c.OpenAI.SpeechModel = "tts-1"
	}
	if c.OpenAI.Voice == "" {
		c.OpenAI.Voice = "alloy"
	}
	if c.Pipeline.FrameCap == 0 {
		c.Pipeline.FrameCap = 10
	}
	if c.Pipeline.MinIntervalSec == 0 {
		c.Pipeline.MinIntervalSec = 10
	}
	if c.Pipeline.DescribePacingMS == 0 {
		c.Pipeline.DescribePacingMS = 1000
	}
	if c.Pipeline.NarratePacingMS == 0 {
		c.Pipeline.NarratePacingMS = 500
	}
	if c.Pipeline.MaxNarrationLen == 0 {
		c.Pipeline.MaxNarrationLen = 4096
	}
	if c.Pipeline.Concurrency == 0 {
		c.Pipeline.Concurrency = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}
