package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking/formula"
)

const (
	// RPCListeningPortKey is the port where the JSON-RPC interface will listen on
	RPCListeningPortKey = "RPC_LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// PoolAccountKey is the account owning the pool reserves
	PoolAccountKey = "POOL_ACCOUNT"
	// PoolNativeBalanceKey is the native balance the pool account is funded
	// with at first startup. A quarter of it endows the LP token.
	PoolNativeBalanceKey = "POOL_NATIVE_BALANCE"
	// ReserveSourceKey selects whether the pricing is backed by the balances
	// held by the pool or by the total supply of the tokens
	ReserveSourceKey = "RESERVE_SOURCE"
	// SwapRoundingKey is the rounding mode of the swap formula, either pool or
	// truncate
	SwapRoundingKey = "SWAP_ROUNDING"
	// LpCodeHashKey is the hash of the code template used to instantiate the
	// LP token
	LpCodeHashKey = "LP_CODE_HASH"
	// Token0Key and Token1Key are the addresses of the traded tokens. If both
	// are empty, two demo tokens are deployed at first startup
	Token0Key = "TOKEN_0"
	Token1Key = "TOKEN_1"
	// BootstrapOwnerKey is the account owning the supply of the demo tokens
	BootstrapOwnerKey = "BOOTSTRAP_OWNER"
	// BootstrapSupplyKey is the initial supply of the demo tokens
	BootstrapSupplyKey = "BOOTSTRAP_SUPPLY"
	// WebhookTimeoutKey is the timeout of the requests sent to the webhooks
	WebhookTimeoutKey = "WEBHOOK_TIMEOUT"
	// WebhookRateLimitKey is the max number of requests per second sent to
	// the webhooks
	WebhookRateLimitKey = "WEBHOOK_RATE_LIMIT"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic pool statistics
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation       = "db"
	ProfilerLocation = "stats"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("tdex-pool", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("POOL")
	vip.AutomaticEnv()

	vip.SetDefault(RPCListeningPortKey, 9945)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, db.DbTypeBadger)
	vip.SetDefault(PoolAccountKey, "pool")
	vip.SetDefault(PoolNativeBalanceKey, 1000000)
	vip.SetDefault(ReserveSourceKey, string(domain.ReserveSourceBalance))
	vip.SetDefault(SwapRoundingKey, formula.RoundPoolFavoring.String())
	vip.SetDefault(LpCodeHashKey, hostenv.ERC20CodeHash)
	vip.SetDefault(BootstrapOwnerKey, "faucet")
	vip.SetDefault(BootstrapSupplyKey, 1000000000)
	vip.SetDefault(WebhookTimeoutKey, 15)
	vip.SetDefault(WebhookRateLimitKey, 100)
	vip.SetDefault(EnableProfilerKey, false)
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

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
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

// GetReserveSource returns the configured reserve source of the pool.
func GetReserveSource() domain.ReserveSource {
	return domain.ReserveSource(strings.ToLower(GetString(ReserveSourceKey)))
}

// GetSwapRounding returns the configured rounding mode of the swap formula.
func GetSwapRounding() formula.Rounding {
	// validated at init.
	rounding, _ := formula.ParseRounding(strings.ToLower(GetString(SwapRoundingKey)))
	return rounding
}

// GetWebhookTimeout returns the timeout in seconds of the webhook requests.
func GetWebhookTimeout() time.Duration {
	return time.Duration(GetInt(WebhookTimeoutKey)) * time.Second
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if dbType := GetString(DBTypeKey); !db.IsValidDbType(dbType) {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, db.DbTypeBadger, db.DbTypeInMemory,
		)
	}

	if len(strings.TrimSpace(GetString(PoolAccountKey))) <= 0 {
		return fmt.Errorf("missing pool account")
	}

	if !GetReserveSource().IsValid() {
		return fmt.Errorf("%s: %s", ReserveSourceKey, domain.ErrPoolInvalidReserveSource)
	}

	if _, err := formula.ParseRounding(
		strings.ToLower(GetString(SwapRoundingKey)),
	); err != nil {
		return fmt.Errorf("%s: %s", SwapRoundingKey, err)
	}

	token0, token1 := GetString(Token0Key), GetString(Token1Key)
	if (token0 == "") != (token1 == "") {
		return fmt.Errorf(
			"%s and %s must be either both defined or both empty",
			Token0Key, Token1Key,
		)
	}
	if token0 == "" && len(GetString(BootstrapOwnerKey)) <= 0 {
		return fmt.Errorf("missing owner of the demo tokens")
	}

	if GetInt(WebhookTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive number of seconds", WebhookTimeoutKey)
	}
	if GetInt(WebhookRateLimitKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", WebhookRateLimitKey)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if GetString(DBTypeKey) == db.DbTypeBadger {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
			return err
		}
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
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
