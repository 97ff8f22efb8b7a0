package rpchandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/tdex-network/tdex-pool/internal/core/application/pool"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/pkg/poolclient"
)

// PoolHandler serves the methods of the pool service. Mutating methods are
// executed by the runtime on behalf of the caller of the request.
type PoolHandler struct {
	rt      *hostenv.Runtime
	poolSvc *pool.Service
}

func NewPoolHandler(rt *hostenv.Runtime, poolSvc *pool.Service) *PoolHandler {
	return &PoolHandler{rt, poolSvc}
}

func (h *PoolHandler) Info(
	_ *http.Request, _ *poolclient.Empty, reply *poolclient.PoolInfo,
) error {
	p := h.poolSvc.Pool()
	*reply = poolclient.PoolInfo{
		Account:       p.Account,
		Token0:        p.Token0,
		Token1:        p.Token1,
		LpToken:       p.LpToken,
		ReserveSource: string(p.ReserveSource),
		Strategy:      h.poolSvc.Strategy().Name(),
		CreatedAt:     p.CreatedAt,
	}
	return nil
}

func (h *PoolHandler) ProvideLiquidity(
	r *http.Request,
	args *poolclient.ProvideLiquidityArgs,
	reply *poolclient.LiquidityReceipt,
) error {
	var receipt *domain.LiquidityReceipt
	if err := h.rt.Call(
		r.Context(), args.Caller.Caller, func(ctx context.Context) (err error) {
			receipt, err = h.poolSvc.ProvideLiquidity(ctx, args.Amount0, args.Amount1)
			return
		},
	); err != nil {
		return rpcError(err)
	}

	*reply = poolclient.LiquidityReceipt{
		ID:        receipt.ID,
		Account:   receipt.Account,
		Amount0:   receipt.Amount0,
		Amount1:   receipt.Amount1,
		Reserve0:  receipt.Reserve0,
		Reserve1:  receipt.Reserve1,
		LpMinted:  receipt.LpMinted,
		Timestamp: receipt.Timestamp,
	}
	return nil
}

func (h *PoolHandler) Swap(
	r *http.Request, args *poolclient.SwapArgs, reply *poolclient.SwapReceipt,
) error {
	asset, err := parseTradedAsset(args.Asset)
	if err != nil {
		return rpcError(err)
	}

	var receipt *domain.SwapReceipt
	if err := h.rt.Call(
		r.Context(), args.Caller.Caller, func(ctx context.Context) (err error) {
			receipt, err = h.poolSvc.Swap(ctx, asset, args.Amount)
			return
		},
	); err != nil {
		return rpcError(err)
	}

	*reply = poolclient.SwapReceipt{
		ID:        receipt.ID,
		Account:   receipt.Account,
		AssetIn:   receipt.AssetIn,
		AssetOut:  receipt.AssetOut,
		AmountIn:  receipt.AmountIn,
		AmountOut: receipt.AmountOut,
		Timestamp: receipt.Timestamp,
	}
	return nil
}

func (h *PoolHandler) Simulate(
	r *http.Request, args *poolclient.SimulateArgs, reply *poolclient.SimulateReply,
) error {
	// A malformed asset matches none of the traded ones and simulates to 0.
	asset := strings.ToLower(args.Asset)
	amountOut, err := h.poolSvc.Simulate(r.Context(), asset, args.Amount)
	if err != nil {
		return rpcError(err)
	}
	reply.AmountOut = amountOut
	return nil
}

func (h *PoolHandler) Quote(
	r *http.Request, args *poolclient.QuoteArgs, reply *poolclient.QuoteReply,
) error {
	asset, err := parseTradedAsset(args.Asset)
	if err != nil {
		return rpcError(err)
	}
	amountIn, err := h.poolSvc.Quote(r.Context(), asset, args.AmountOut)
	if err != nil {
		return rpcError(err)
	}
	reply.AmountIn = amountIn
	return nil
}

func (h *PoolHandler) Balances(
	r *http.Request, _ *poolclient.Empty, reply *poolclient.BalancesReply,
) error {
	balances, err := h.poolSvc.Balances(r.Context())
	if err != nil {
		return rpcError(err)
	}
	*reply = poolclient.BalancesReply{
		Token0: balances.Token0,
		Token1: balances.Token1,
		Lp:     balances.Lp,
	}
	return nil
}

func (h *PoolHandler) Reserves(
	r *http.Request, _ *poolclient.Empty, reply *poolclient.ReservesReply,
) error {
	reserves, err := h.poolSvc.Reserves(r.Context())
	if err != nil {
		return rpcError(err)
	}
	*reply = poolclient.ReservesReply{
		Reserve0: reserves.Token0,
		Reserve1: reserves.Token1,
	}
	return nil
}

func (h *PoolHandler) SpotPrice(
	r *http.Request, args *poolclient.SpotPriceArgs, reply *poolclient.SpotPriceReply,
) error {
	asset, err := parseTradedAsset(args.Asset)
	if err != nil {
		return rpcError(err)
	}
	price, err := h.poolSvc.SpotPrice(r.Context(), asset)
	if err != nil {
		return rpcError(err)
	}
	reply.Price = price.String()
	return nil
}
