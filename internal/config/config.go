package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zjkal/web3-model/internal/chain"
)

// Config holds the CLI settings. The private key is never written back to
// config.json; it belongs in the environment or a .env file.
type Config struct {
	Network    string        `json:"network"           mapstructure:"network"`
	RPCURL     string        `json:"rpc_url,omitempty" mapstructure:"rpc_url"`
	Decimals   int32         `json:"decimals"          mapstructure:"decimals"`
	PrivateKey string        `json:"-"                 mapstructure:"private_key"`
	Timeout    time.Duration `json:"timeout"           mapstructure:"timeout"`

	// internal: config dir path used for Save()
	configDir string
}

// Load reads config.json from dir, then .env files, then WEB3MODEL_*
// environment variables, later sources winning. dir defaults to ~/.web3model.
// A missing config file is not an error.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".web3model")
	}

	if err := LoadDotEnv(dotEnvFile, filepath.Join(dir, dotEnvFile)); err != nil {
		return nil, err
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.configDir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE files into the process environment. Missing
// files are skipped and variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		err := godotenv.Load(p)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("loading %s: %w", p, err)
	}
	return nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyNetwork, defaultNetwork)
	v.SetDefault(KeyRPCURL, "")
	v.SetDefault(KeyDecimals, defaultDecimals)
	v.SetDefault(KeyPrivateKey, "")
	v.SetDefault(KeyTimeout, defaultTimeout)
	return v
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Decimals < 0 || c.Decimals > 255 {
		return fmt.Errorf("%s must be between 0 and 255, got %d", KeyDecimals, c.Decimals)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", KeyTimeout)
	}
	return nil
}

// Endpoint returns the RPC URL to dial: rpc_url when set, otherwise the
// public endpoint of the configured network.
func (c *Config) Endpoint() (string, error) {
	if c.RPCURL != "" {
		return c.RPCURL, nil
	}
	n, err := chain.LookupNetwork(c.Network)
	if err != nil {
		return "", err
	}
	return n.RPC, nil
}

// Set assigns a config key from its string form. private_key is refused:
// keys do not go into config.json.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyNetwork:
		if _, err := chain.LookupNetwork(value); err != nil {
			return err
		}
		c.Network = strings.ToLower(strings.TrimSpace(value))
	case KeyRPCURL:
		c.RPCURL = strings.TrimSpace(value)
	case KeyDecimals:
		d, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", KeyDecimals, value, err)
		}
		c.Decimals = int32(d)
	case KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", KeyTimeout, value, err)
		}
		c.Timeout = d
	case KeyPrivateKey:
		return fmt.Errorf("%s is read from the environment (%s_PRIVATE_KEY) and never stored", KeyPrivateKey, EnvPrefix)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return c.Validate()
}

// Save writes the config to dir/config.json.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}
	data, err := json.MarshalIndent(struct {
		Network  string `json:"network"`
		RPCURL   string `json:"rpc_url,omitempty"`
		Decimals int32  `json:"decimals"`
		Timeout  string `json:"timeout"`
	}{c.Network, c.RPCURL, c.Decimals, c.Timeout.String()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}
