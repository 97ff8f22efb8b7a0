package rpchandler

import (
	"context"
	"net/http"

	"github.com/tdex-network/tdex-pool/internal/infrastructure/erc20"
	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/pkg/poolclient"
)

// TokenHandler serves the methods of the tokens deployed on the runtime.
type TokenHandler struct {
	rt *hostenv.Runtime
}

func NewTokenHandler(rt *hostenv.Runtime) *TokenHandler {
	return &TokenHandler{rt}
}

func (h *TokenHandler) Info(
	r *http.Request, args *poolclient.TokenArgs, reply *poolclient.TokenInfo,
) error {
	token, err := h.state(r.Context(), args.Token)
	if err != nil {
		return rpcError(err)
	}
	*reply = tokenInfo(*token)
	return nil
}

func (h *TokenHandler) List(
	r *http.Request, _ *poolclient.Empty, reply *poolclient.ListTokensReply,
) error {
	tokens, err := h.rt.Ledger().Tokens(r.Context())
	if err != nil {
		return rpcError(err)
	}
	reply.Tokens = make([]poolclient.TokenInfo, 0, len(tokens))
	for _, t := range tokens {
		reply.Tokens = append(reply.Tokens, tokenInfo(t))
	}
	return nil
}

func (h *TokenHandler) BalanceOf(
	r *http.Request, args *poolclient.BalanceOfArgs, reply *poolclient.AmountReply,
) error {
	token, err := h.state(r.Context(), args.Token)
	if err != nil {
		return rpcError(err)
	}
	reply.Amount = token.BalanceOf(args.Account)
	return nil
}

func (h *TokenHandler) Allowance(
	r *http.Request, args *poolclient.AllowanceArgs, reply *poolclient.AmountReply,
) error {
	token, err := h.state(r.Context(), args.Token)
	if err != nil {
		return rpcError(err)
	}
	reply.Amount = token.Allowance(args.Owner, args.Spender)
	return nil
}

func (h *TokenHandler) TotalSupply(
	r *http.Request, args *poolclient.TokenArgs, reply *poolclient.AmountReply,
) error {
	token, err := h.state(r.Context(), args.Token)
	if err != nil {
		return rpcError(err)
	}
	reply.Amount = token.TotalSupply
	return nil
}

func (h *TokenHandler) Approve(
	r *http.Request, args *poolclient.ApproveArgs, _ *poolclient.Empty,
) error {
	return h.call(r, args.Caller, args.Token, func(
		ctx context.Context, token *erc20.Ref,
	) error {
		return token.Approve(ctx, args.Spender, args.Amount)
	})
}

func (h *TokenHandler) Transfer(
	r *http.Request, args *poolclient.TransferArgs, _ *poolclient.Empty,
) error {
	return h.call(r, args.Caller, args.Token, func(
		ctx context.Context, token *erc20.Ref,
	) error {
		return token.Transfer(ctx, args.Recipient, args.Amount)
	})
}

func (h *TokenHandler) Mint(
	r *http.Request, args *poolclient.TransferArgs, _ *poolclient.Empty,
) error {
	return h.call(r, args.Caller, args.Token, func(
		ctx context.Context, token *erc20.Ref,
	) error {
		return token.Mint(ctx, args.Recipient, args.Amount)
	})
}

// call executes fn on behalf of the caller with a handle of the token bound
// to it.
func (h *TokenHandler) call(
	r *http.Request, caller poolclient.Caller, address string,
	fn func(ctx context.Context, token *erc20.Ref) error,
) error {
	if err := h.rt.Call(
		r.Context(), caller.Caller, func(ctx context.Context) error {
			token, err := h.token(ctx, address, caller.Caller)
			if err != nil {
				return err
			}
			return fn(ctx, token)
		},
	); err != nil {
		return rpcError(err)
	}
	return nil
}

func (h *TokenHandler) token(
	ctx context.Context, address, holder string,
) (*erc20.Ref, error) {
	address, err := parseAsset(address)
	if err != nil {
		return nil, err
	}
	return h.rt.Ledger().Token(ctx, address, holder)
}

func (h *TokenHandler) state(
	ctx context.Context, address string,
) (*erc20.Token, error) {
	address, err := parseAsset(address)
	if err != nil {
		return nil, err
	}
	return h.rt.Ledger().Get(ctx, address)
}

func tokenInfo(t erc20.Token) poolclient.TokenInfo {
	return poolclient.TokenInfo{
		Address:     t.Address,
		Name:        t.Name,
		Symbol:      t.Symbol,
		Owner:       t.Owner,
		TotalSupply: t.TotalSupply,
	}
}
