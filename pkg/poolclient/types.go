package poolclient

// Service names of the JSON-RPC interface.
const (
	PoolService    = "pool"
	TokenService   = "token"
	AccountService = "account"
	WebhookService = "webhook"
)

// Empty is the args or reply of the methods that don't require any.
type Empty struct{}

// Caller is embedded in the args of every mutating method: the call is
// executed on behalf of this account.
type Caller struct {
	Caller string `json:"caller"`
}

type PoolInfo struct {
	Account       string `json:"account"`
	Token0        string `json:"token_0"`
	Token1        string `json:"token_1"`
	LpToken       string `json:"lp_token"`
	ReserveSource string `json:"reserve_source"`
	Strategy      string `json:"strategy"`
	CreatedAt     int64  `json:"created_at"`
}

type ProvideLiquidityArgs struct {
	Caller
	Amount0 uint64 `json:"amount_0"`
	Amount1 uint64 `json:"amount_1"`
}

type LiquidityReceipt struct {
	ID        string `json:"id"`
	Account   string `json:"account"`
	Amount0   uint64 `json:"amount_0"`
	Amount1   uint64 `json:"amount_1"`
	Reserve0  uint64 `json:"reserve_0"`
	Reserve1  uint64 `json:"reserve_1"`
	LpMinted  uint64 `json:"lp_minted"`
	Timestamp int64  `json:"timestamp"`
}

type SwapArgs struct {
	Caller
	Asset  string `json:"asset"`
	Amount uint64 `json:"amount"`
}

type SwapReceipt struct {
	ID        string `json:"id"`
	Account   string `json:"account"`
	AssetIn   string `json:"asset_in"`
	AssetOut  string `json:"asset_out"`
	AmountIn  uint64 `json:"amount_in"`
	AmountOut uint64 `json:"amount_out"`
	Timestamp int64  `json:"timestamp"`
}

type SimulateArgs struct {
	Asset  string `json:"asset"`
	Amount uint64 `json:"amount"`
}

type SimulateReply struct {
	AmountOut uint64 `json:"amount_out"`
}

type QuoteArgs struct {
	Asset     string `json:"asset"`
	AmountOut uint64 `json:"amount_out"`
}

type QuoteReply struct {
	AmountIn uint64 `json:"amount_in"`
}

type BalancesReply struct {
	Token0 uint64 `json:"token_0"`
	Token1 uint64 `json:"token_1"`
	Lp     uint64 `json:"lp"`
}

type ReservesReply struct {
	Reserve0 uint64 `json:"reserve_0"`
	Reserve1 uint64 `json:"reserve_1"`
}

type SpotPriceArgs struct {
	Asset string `json:"asset"`
}

type SpotPriceReply struct {
	Price string `json:"price"`
}

type TokenArgs struct {
	Token string `json:"token"`
}

type TokenInfo struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Owner       string `json:"owner"`
	TotalSupply uint64 `json:"total_supply"`
}

type ListTokensReply struct {
	Tokens []TokenInfo `json:"tokens"`
}

type BalanceOfArgs struct {
	Token   string `json:"token"`
	Account string `json:"account"`
}

type AllowanceArgs struct {
	Token   string `json:"token"`
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

type AmountReply struct {
	Amount uint64 `json:"amount"`
}

type ApproveArgs struct {
	Caller
	Token   string `json:"token"`
	Spender string `json:"spender"`
	Amount  uint64 `json:"amount"`
}

type TransferArgs struct {
	Caller
	Token     string `json:"token"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

type AccountArgs struct {
	Account string `json:"account"`
}

type AddWebhookArgs struct {
	Event    string `json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

type AddWebhookReply struct {
	ID string `json:"id"`
}

type RemoveWebhookArgs struct {
	ID string `json:"id"`
}

type ListWebhooksArgs struct {
	Event string `json:"event"`
}

type WebhookInfo struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

type ListWebhooksReply struct {
	Webhooks []WebhookInfo `json:"webhooks"`
}
