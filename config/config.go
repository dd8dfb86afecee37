package config

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Data     DataConfig     `yaml:"data"`
	Session  SessionConfig  `yaml:"session"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

// GatewayConfig 智能体网关（Agent Gateway）接入配置
// AgentID 为整个会话期固定的编排标识，不可由用户修改
type GatewayConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	AgentID string `yaml:"agent_id"`
	Timeout time.Duration
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

// SessionConfig 会话运行态缓存配置
type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:9000",
			AgentID: "hr-policy-orchestrator",
			Timeout: 5 * time.Minute,
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Session: SessionConfig{
			TTL:             time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// 环境变量优先级高于配置文件
	if gatewayURL := os.Getenv("GATEWAY_URL"); gatewayURL != "" {
		config.Gateway.BaseURL = gatewayURL
	}
	if apiKey := os.Getenv("GATEWAY_API_KEY"); apiKey != "" {
		config.Gateway.APIKey = apiKey
	}
	if agentID := os.Getenv("GATEWAY_AGENT_ID"); agentID != "" {
		config.Gateway.AgentID = agentID
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	// 数据目录环境变量
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	return config
}
