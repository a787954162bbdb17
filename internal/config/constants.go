package config

import "time"

// Config keys, as used in config.json and (upper-cased, WEB3MODEL_ prefixed)
// in the environment.
const (
	KeyNetwork    = "network"
	KeyRPCURL     = "rpc_url"
	KeyDecimals   = "decimals"
	KeyPrivateKey = "private_key"
	KeyTimeout    = "timeout"
)

// EnvPrefix prefixes every environment override, e.g. WEB3MODEL_RPC_URL.
const EnvPrefix = "WEB3MODEL"

const (
	defaultNetwork  = "ethereum"
	defaultDecimals = 18
	defaultTimeout  = 30 * time.Second

	configName = "config"
	configType = "json"
	configFile = configName + "." + configType
	dotEnvFile = ".env"
)
