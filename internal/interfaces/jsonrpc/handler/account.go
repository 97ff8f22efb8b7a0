package rpchandler

import (
	"net/http"

	"github.com/tdex-network/tdex-pool/internal/infrastructure/hostenv"
	"github.com/tdex-network/tdex-pool/pkg/poolclient"
)

// AccountHandler serves the native balances of the runtime accounts.
type AccountHandler struct {
	rt *hostenv.Runtime
}

func NewAccountHandler(rt *hostenv.Runtime) *AccountHandler {
	return &AccountHandler{rt}
}

func (h *AccountHandler) Balance(
	r *http.Request, args *poolclient.AccountArgs, reply *poolclient.AmountReply,
) error {
	if len(args.Account) <= 0 {
		return rpcError(hostenv.ErrInvalidAccount)
	}
	balance, err := h.rt.Balance(r.Context(), args.Account)
	if err != nil {
		return rpcError(err)
	}
	reply.Amount = balance
	return nil
}
