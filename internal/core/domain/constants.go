package domain

const (
	// LpTokenName and LpTokenSymbol are those of the token issued by every
	// pool to represent its share.
	LpTokenName   = "Pool Token"
	LpTokenSymbol = "LP"

	// PoolVersion is encoded as salt when instantiating the LP token.
	PoolVersion uint32 = 1

	// EndowmentDivisor is the fraction of the pool native balance used to fund
	// the LP token instantiation.
	EndowmentDivisor = 4

	// AssetLength is the length in bytes of an asset identity.
	AssetLength = 20
)
