package arbiter

import (
	"fmt"
	"sync/atomic"

	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// ResolveFunc receives the outcome of a capture request.
type ResolveFunc func(devices []definitions.MediaDevice, result definitions.ResultCode)

// Callback is the single-use handle around a ResolveFunc. Whoever holds the
// pointer owns the resolution; running it twice panics.
type Callback struct {
	fn      ResolveFunc
	fired   atomic.Bool
	onFired func(definitions.Resolution)
}

func NewCallback(fn ResolveFunc) *Callback {
	if fn == nil {
		panic("arbiter: nil resolve func")
	}
	return &Callback{fn: fn}
}

// Run delivers the outcome. Devices are copied so the receiver may keep them.
func (c *Callback) Run(devices []definitions.MediaDevice, result definitions.ResultCode) {
	if !c.fired.CompareAndSwap(false, true) {
		panic(fmt.Sprintf("arbiter: capture request resolved twice (second result %s)", result))
	}
	out := make([]definitions.MediaDevice, len(devices))
	copy(out, devices)
	if c.onFired != nil {
		c.onFired(definitions.Resolution{Devices: out, Result: result})
	}
	c.fn(out, result)
}

// Fired reports whether Run has been called.
func (c *Callback) Fired() bool {
	return c.fired.Load()
}

// pendingCallback holds the callback until some branch takes it. If nobody
// takes it before release, the request fails with a shutdown result.
type pendingCallback struct {
	cb *Callback
}

func (p *pendingCallback) take() *Callback {
	cb := p.cb
	p.cb = nil
	return cb
}

func (p *pendingCallback) held() bool {
	return p.cb != nil
}

func (p *pendingCallback) release() bool {
	cb := p.take()
	if cb == nil {
		return false
	}
	cb.Run(nil, definitions.ResultFailedDueToShutdown)
	return true
}
