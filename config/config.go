package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/agrisync/agrisync/chain"
	"github.com/agrisync/agrisync/database/mysql"
	"github.com/agrisync/agrisync/predict"
)

// Environments select the prediction service base url.
const (
	EnvLocal    = "local"
	EnvDeployed = "deployed"
)

var baseURLs = map[string]string{
	EnvLocal:    "http://localhost:8000",
	EnvDeployed: "https://agrisync-f1ut.onrender.com",
}

// Environment variables overriding the config file.
const (
	envName        = "AGRISYNC_ENV"
	envAPIURL      = "AGRISYNC_API_URL"
	envNodeURL     = "AGRISYNC_NODE_URL"
	envPort        = "AGRISYNC_PORT"
	envMarketplace = "AGRISYNC_MARKETPLACE_ADDRESS"
	envStorage     = "AGRISYNC_STORAGE_ADDRESS"
	envDBDriver    = "AGRISYNC_DB_DRIVER"
	envDBPath      = "AGRISYNC_DB_PATH"
)

// Config is the root config shared by the gateway and the cli.
type Config struct {
	Env         string         `yaml:"env"`
	Port        int            `yaml:"port"`
	NodeURL     string         `yaml:"node_url"`
	Accounts    []string       `yaml:"accounts"`
	CORSOrigins []string       `yaml:"cors_origins"`
	Ledger      chain.Config   `yaml:"ledger"`
	Predict     predict.Config `yaml:"predict"`
	Database    mysql.Config   `yaml:"database"`
}

// Default returns the config of a local development setup.
func Default() *Config {
	return &Config{
		Env:         EnvLocal,
		Port:        8080,
		NodeURL:     "http://127.0.0.1:7545",
		CORSOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		Ledger: chain.Config{
			MarketplaceAddress: "0x1406E4b10DEb8feA28BF50bd4F66DdABF7d9A5F5",
			StorageAddress:     "0x00c56AE214FaE7C06560b0Eda2bfBb33784fdA48",
		},
		Database: mysql.Config{
			Driver: mysql.DriverSQLite,
			Path:   "agrisync.db",
		},
	}
}

// LoadConfig read path file to the config object
func LoadConfig(path string, config interface{}) error {
	configFile, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "fail to open config file")
	}

	defer configFile.Close()
	if err := yaml.NewDecoder(configFile).Decode(config); err != nil {
		return errors.Wrapf(err, "decode config file %s", path)
	}

	return nil
}

// Load builds the config from defaults, the optional yaml file at path and
// the environment. A .env file in the working directory is read first;
// variables already set in the process win over it.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := Default()
	if path != "" {
		if err := LoadConfig(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Predict.BaseURL == "" {
		url, err := BaseURL(cfg.Env)
		if err != nil {
			return nil, err
		}
		cfg.Predict.BaseURL = url
	}

	return cfg, nil
}

// BaseURL returns the prediction service url of env.
func BaseURL(env string) (string, error) {
	url, ok := baseURLs[strings.ToLower(env)]
	if !ok {
		return "", errors.Errorf("unknown environment %q", env)
	}

	return url, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Env, envName)
	setString(&c.Predict.BaseURL, envAPIURL)
	setString(&c.NodeURL, envNodeURL)
	setString(&c.Ledger.MarketplaceAddress, envMarketplace)
	setString(&c.Ledger.StorageAddress, envStorage)
	setString(&c.Database.Driver, envDBDriver)
	setString(&c.Database.Path, envDBPath)

	if v := os.Getenv(envPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "parse %s", envPort)
		}
		c.Port = port
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
