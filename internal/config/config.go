package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory holding the identity store
	DatadirKey = "DATA_DIR_PATH"
	// StorePathKey overrides the full path of the identity store file
	StorePathKey = "STORE_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// PasswordKey supplies the store password non-interactively; when
	// unset the password is prompted for or read from the OS keyring
	PasswordKey = "PASSWORD"
	// RPCEndpointKey overrides the RPC endpoint of the active network
	RPCEndpointKey = "RPC_ENDPOINT"
	// RPCRequestTimeoutKey are the milliseconds to wait for RPC responses before timeouts
	RPCRequestTimeoutKey = "RPC_REQUEST_TIMEOUT"

	storeFileName = "store.json"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("vaultd", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("VAULTD")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(RPCRequestTimeoutKey, 15000)

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}

	log.SetLevel(log.Level(vip.GetInt(LogLevelKey)))
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

//GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetStorePath resolves the identity store file location: the explicit
// override when set, the datadir default otherwise
func GetStorePath() string {
	if path := GetString(StorePathKey); path != "" {
		return path
	}
	return filepath.Join(GetDatadir(), storeFileName)
}

// GetRPCTimeout returns the RPC request timeout as a duration
func GetRPCTimeout() time.Duration {
	return time.Duration(GetInt(RPCRequestTimeoutKey)) * time.Millisecond
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func initDatadir() error {
	return os.MkdirAll(GetDatadir(), 0700)
}
