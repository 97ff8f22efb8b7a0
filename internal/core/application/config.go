package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-pool/internal/core/application/pool"
	"github.com/tdex-network/tdex-pool/internal/core/application/pubsub"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	pubsubinfra "github.com/tdex-network/tdex-pool/internal/infrastructure/pubsub"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/storage/db"
)

var demoTokens = []struct {
	name, symbol string
}{
	{"Token Zero", "TK0"},
	{"Token One", "TK1"},
}

// Config wires together the services of the daemon. Services are built
// lazily on first access, Validate makes sure all of them can be built.
type Config struct {
	DBType string
	// DBDir is ignored for the inmemory db type.
	DBDir string

	PoolAccount string
	// PoolNativeBalance funds the pool account the first time it's created.
	PoolNativeBalance uint64
	PoolOpts          pool.Options
	// Token0 and Token1 are the traded tokens. If both empty, two demo tokens
	// owned by BootstrapOwner are deployed, unless the pool already exists.
	Token0          string
	Token1          string
	BootstrapOwner  string
	BootstrapSupply uint64

	WebhookTimeout   time.Duration
	WebhookRateLimit int
	EventStreams     []ports.EventStream

	repo    db.RepoManager
	runtime *hostenv.Runtime
	webhook *pubsub.Service
	pool    *pool.Service
}

func (c *Config) Validate() error {
	if len(c.PoolAccount) <= 0 {
		return fmt.Errorf("missing pool account")
	}
	if (len(c.Token0) <= 0) != (len(c.Token1) <= 0) {
		return fmt.Errorf("token pair must be either fully defined or empty")
	}
	if len(c.Token0) <= 0 && len(c.BootstrapOwner) <= 0 {
		return fmt.Errorf("missing owner of the demo tokens")
	}

	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.webhookService(); err != nil {
		return err
	}
	if _, err := c.poolService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() db.RepoManager {
	repo, _ := c.repoManager()
	return repo
}

func (c *Config) Runtime() *hostenv.Runtime {
	rt, _ := c.hostRuntime()
	return rt
}

func (c *Config) WebhookService() *pubsub.Service {
	svc, _ := c.webhookService()
	return svc
}

func (c *Config) PoolService() *pool.Service {
	svc, _ := c.poolService()
	return svc
}

// Close releases the storage.
func (c *Config) Close() {
	if c.repo != nil {
		c.repo.Close()
	}
}

func (c *Config) repoManager() (db.RepoManager, error) {
	if c.repo == nil {
		repo, err := db.NewRepoManager(c.DBType, c.DBDir, log.StandardLogger())
		if err != nil {
			return nil, err
		}
		c.repo = repo
	}
	return c.repo, nil
}

func (c *Config) hostRuntime() (*hostenv.Runtime, error) {
	if c.runtime == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		ledger := erc20.NewLedger(repo.TokenStore())
		c.runtime = hostenv.NewRuntime(repo.AccountStore(), ledger)
	}
	return c.runtime, nil
}

func (c *Config) webhookService() (*pubsub.Service, error) {
	if c.webhook == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		ps, err := pubsubinfra.NewService(
			repo.SubscriptionStore(), c.WebhookTimeout, c.WebhookRateLimit,
		)
		if err != nil {
			return nil, err
		}
		c.webhook = pubsub.NewService(ps, c.EventStreams...)
	}
	return c.webhook, nil
}

func (c *Config) poolService() (*pool.Service, error) {
	if c.pool == nil {
		ctx := context.Background()
		rt, err := c.hostRuntime()
		if err != nil {
			return nil, err
		}
		webhook, err := c.webhookService()
		if err != nil {
			return nil, err
		}

		if err := c.fundPoolAccount(ctx, rt); err != nil {
			return nil, err
		}
		token0, token1, err := c.tokenPair(ctx, rt)
		if err != nil {
			return nil, err
		}

		svc, err := pool.NewService(
			ctx, rt.Env(c.PoolAccount), rt, rt, c.repo.PoolRepository(), webhook,
			token0, token1, c.PoolOpts,
		)
		if err != nil {
			return nil, err
		}
		c.pool = svc
	}
	return c.pool, nil
}

// fundPoolAccount credits the initial native balance to the pool account
// only if it does not exist yet.
func (c *Config) fundPoolAccount(ctx context.Context, rt *hostenv.Runtime) error {
	_, err := c.repo.AccountStore().GetAccount(ctx, c.PoolAccount)
	if err == nil {
		return nil
	}
	if !errors.Is(err, hostenv.ErrAccountNotFound) {
		return err
	}

	if err := rt.Fund(ctx, c.PoolAccount, c.PoolNativeBalance); err != nil {
		return fmt.Errorf("failed to fund pool account: %w", err)
	}
	log.Infof(
		"funded pool account %s with %d native units",
		c.PoolAccount, c.PoolNativeBalance,
	)
	return nil
}

// tokenPair returns the configured token pair, or the addresses of the demo
// tokens once deployed. An existing pool is reloaded with its own pair.
func (c *Config) tokenPair(
	ctx context.Context, rt *hostenv.Runtime,
) (string, string, error) {
	if len(c.Token0) > 0 {
		return strings.ToLower(c.Token0), strings.ToLower(c.Token1), nil
	}

	_, err := c.repo.PoolRepository().GetPool(ctx, c.PoolAccount)
	if err == nil {
		return "", "", nil
	}
	if !errors.Is(err, domain.ErrPoolNotFound) {
		return "", "", err
	}

	ledger := rt.Ledger()
	addresses := make([]string, 0, len(demoTokens))
	for i, t := range demoTokens {
		address, err := hostenv.AddressOf(
			c.BootstrapOwner, hostenv.ERC20CodeHash, []byte{byte(i)},
		)
		if err != nil {
			return "", "", err
		}
		addresses = append(addresses, address)

		if _, err := ledger.Get(ctx, address); err == nil {
			continue
		} else if !errors.Is(err, erc20.ErrTokenNotFound) {
			return "", "", err
		}

		if _, err := ledger.Deploy(
			ctx, address, t.name, t.symbol, c.BootstrapSupply, c.BootstrapOwner,
		); err != nil {
			return "", "", fmt.Errorf("failed to deploy demo token %s: %w", t.symbol, err)
		}
		log.Infof(
			"deployed demo token %s at %s with supply %d owned by %s",
			t.symbol, address, c.BootstrapSupply, c.BootstrapOwner,
		)
	}
	return addresses[0], addresses[1], nil
}
