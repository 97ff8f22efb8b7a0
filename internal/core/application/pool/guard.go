package pool

import (
	"sync/atomic"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

// guard rejects any operation started while another one is still running.
type guard struct {
	locked int32
}

func (g *guard) enter() error {
	if !atomic.CompareAndSwapInt32(&g.locked, 0, 1) {
		return domain.ErrReentrantCall
	}
	return nil
}

func (g *guard) exit() {
	atomic.StoreInt32(&g.locked, 0)
}
