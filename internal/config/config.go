package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
	"github.com/tdex-network/walletsync/pkg/wallet"
)

const (
	// DatadirKey is the local data directory to store the payload cache and
	// the metrics dumps
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch the payload cache between those supported
	DBTypeKey = "DB_TYPE"
	// RemoteURLKey is the base url of the remote wallet store
	RemoteURLKey = "REMOTE_URL"
	// RemoteTimeoutKey is the timeout in seconds of every request to the
	// remote wallet store
	RemoteTimeoutKey = "REMOTE_TIMEOUT"
	// RemoteRateLimitKey is the max number of requests per second sent to the
	// remote wallet store
	RemoteRateLimitKey = "REMOTE_RATE_LIMIT"
	// PBKDF2IterationsKey is the number of key derivation rounds used to
	// encrypt new wallets
	PBKDF2IterationsKey = "PBKDF2_ITERATIONS"
	// LanguageKey is the language of new wallets
	LanguageKey = "LANGUAGE"
	// AddressPolicyKey selects which addresses are sent along with a save,
	// one of none, imported or all
	AddressPolicyKey = "ADDRESS_POLICY"
	// EnableMetricsKey enables the periodic dump of runtime statistics and of
	// the sync and upgrade counters
	EnableMetricsKey = "ENABLE_METRICS"
	// LegacyDecryptCmdKey is the external command used to decrypt wallet
	// payloads older than version 3. When not set they are decrypted natively
	LegacyDecryptCmdKey = "LEGACY_DECRYPT_CMD"
	// StatsIntervalKey defines interval in seconds for printing runtime
	// statistics
	StatsIntervalKey = "STATS_INTERVAL"

	// DBBadger ...
	DBBadger = "badger"
	// DBInMemory ...
	DBInMemory = "inmemory"

	// AddressPolicyNone ...
	AddressPolicyNone = "none"
	// AddressPolicyImported ...
	AddressPolicyImported = "imported"
	// AddressPolicyAll ...
	AddressPolicyAll = "all"

	DbLocation      = "db"
	MetricsLocation = "stats"
)

var vip *viper.Viper
var supportedAddressPolicies = map[string]bool{
	AddressPolicyNone:     true,
	AddressPolicyImported: true,
	AddressPolicyAll:      true,
}
var defaultDatadir = btcutil.AppDataDir("walletsync", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("WALLETSYNC")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(RemoteTimeoutKey, 15)
	vip.SetDefault(RemoteRateLimitKey, 10)
	vip.SetDefault(PBKDF2IterationsKey, wallet.DefaultIterations)
	vip.SetDefault(LanguageKey, "en")
	vip.SetDefault(AddressPolicyKey, AddressPolicyNone)
	vip.SetDefault(EnableMetricsKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint32(key string) uint32 {
	return vip.GetUint32(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetRemoteTimeout returns the remote request timeout as a duration
func GetRemoteTimeout() time.Duration {
	return time.Duration(GetInt(RemoteTimeoutKey)) * time.Second
}

// GetStatsInterval returns the stats interval as a duration
func GetStatsInterval() time.Duration {
	return time.Duration(GetInt(StatsIntervalKey)) * time.Second
}

// GetLegacyDecryptCmd returns the configured legacy decrypt command split
// into name and arguments, or nil if not set
func GetLegacyDecryptCmd() []string {
	return strings.Fields(GetString(LegacyDecryptCmdKey))
}

// GetDbDir returns the directory of the payload cache, empty for the in
// memory one.
func GetDbDir() string {
	if GetString(DBTypeKey) == DBInMemory {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be one of %s, %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	remoteURL := GetString(RemoteURLKey)
	if len(remoteURL) <= 0 {
		return fmt.Errorf("missing remote url")
	}
	if u, err := url.Parse(remoteURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s is not a valid url", RemoteURLKey)
	}

	if GetInt(RemoteTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be greater than 0", RemoteTimeoutKey)
	}
	if GetInt(RemoteRateLimitKey) <= 0 {
		return fmt.Errorf("%s must be greater than 0", RemoteRateLimitKey)
	}

	if iterations := GetInt(PBKDF2IterationsKey); iterations <= 0 {
		return fmt.Errorf("%s must be greater than 0", PBKDF2IterationsKey)
	}

	if len(GetString(LanguageKey)) <= 0 {
		return fmt.Errorf("missing language")
	}

	if policy := GetString(AddressPolicyKey); !supportedAddressPolicies[policy] {
		return fmt.Errorf(
			"%s must be one of %s, %s, %s", AddressPolicyKey,
			AddressPolicyNone, AddressPolicyImported, AddressPolicyAll,
		)
	}

	if GetBool(EnableMetricsKey) && GetInt(StatsIntervalKey) <= 0 {
		return fmt.Errorf("%s must be greater than 0", StatsIntervalKey)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if GetString(DBTypeKey) == DBBadger {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
			return err
		}
	}

	if GetBool(EnableMetricsKey) {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, MetricsLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
