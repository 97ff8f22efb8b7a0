package domain

import (
	"encoding/binary"
	"encoding/hex"
	"time"
)

// ReserveSource selects how the reserves backing the price are read.
type ReserveSource string

const (
	// ReserveSourceBalance reads the reserves as the balances held by the pool
	// account.
	ReserveSourceBalance ReserveSource = "balance"
	// ReserveSourceSupply reads the reserves as the total circulating supply
	// of each asset.
	ReserveSourceSupply ReserveSource = "supply"
)

func (s ReserveSource) IsValid() bool {
	return s == ReserveSourceBalance || s == ReserveSourceSupply
}

// Pool defines the Pool entity data structure for holding the identities of
// the two traded assets and of the pool share token.
type Pool struct {
	// Account of the pool, holding the reserves.
	Account string
	// Token0 and Token1 are the identities of the traded assets.
	Token0 string
	Token1 string
	// LpToken is the identity of the token representing the pool share.
	LpToken string
	// ReserveSource defines what backs the pricing of the pool.
	ReserveSource ReserveSource
	// Version is used as salt of the LP token instantiation.
	Version uint32
	// CreatedAt is the unix timestamp of the pool creation.
	CreatedAt int64
}

// NewPool returns a new pool for the given pair of assets. The LP token is
// set once instantiated with SetLpToken.
func NewPool(
	account, token0, token1 string, reserveSource ReserveSource,
) (*Pool, error) {
	if len(account) <= 0 {
		return nil, ErrPoolInvalidAccount
	}
	if !IsValidAsset(token0) || !IsValidAsset(token1) {
		return nil, ErrPoolInvalidAsset
	}
	if token0 == token1 {
		return nil, ErrPoolIdenticalAssets
	}
	if !reserveSource.IsValid() {
		return nil, ErrPoolInvalidReserveSource
	}

	return &Pool{
		Account:       account,
		Token0:        token0,
		Token1:        token1,
		ReserveSource: reserveSource,
		Version:       PoolVersion,
		CreatedAt:     time.Now().Unix(),
	}, nil
}

// SetLpToken sets the identity of the pool share token.
func (p *Pool) SetLpToken(lpToken string) error {
	if !IsValidAsset(lpToken) {
		return ErrPoolInvalidAsset
	}
	if lpToken == p.Token0 || lpToken == p.Token1 {
		return ErrPoolIdenticalAssets
	}
	p.LpToken = lpToken
	return nil
}

// Direction returns the offer and ask assets of a trade where the given asset
// is sold to the pool. The returned bool is false if the asset is unknown.
func (p *Pool) Direction(asset string) (offer, ask string, ok bool) {
	switch asset {
	case p.Token0:
		return p.Token0, p.Token1, true
	case p.Token1:
		return p.Token1, p.Token0, true
	default:
		return "", "", false
	}
}

// IsTracked returns whether the given asset is one of the traded ones.
func (p *Pool) IsTracked(asset string) bool {
	_, _, ok := p.Direction(asset)
	return ok
}

// Salt returns the little endian encoding of the pool version.
func (p *Pool) Salt() []byte {
	salt := make([]byte, 4)
	binary.LittleEndian.PutUint32(salt, p.Version)
	return salt
}

// IsValidAsset returns whether the given string is a valid asset identity.
func IsValidAsset(asset string) bool {
	buf, err := hex.DecodeString(asset)
	if err != nil {
		return false
	}
	return len(buf) == AssetLength
}
