package consent

import (
	"context"

	"github.com/spance/capture-arbiter/arbiter"
	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// Decline never takes a request, leaving every decision to the arbiter.
type Decline struct{}

func (Decline) TryResolve(ctx context.Context, req definitions.CaptureRequest, cb *arbiter.Callback) bool {
	return false
}

// Chain offers a request to each authority in order; the first claim wins.
type Chain []arbiter.ConsentAuthority

func (c Chain) TryResolve(ctx context.Context, req definitions.CaptureRequest, cb *arbiter.Callback) bool {
	for _, authority := range c {
		if authority != nil && authority.TryResolve(ctx, req, cb) {
			return true
		}
	}
	return false
}

// Deny refuses every request that reaches it.
type Deny struct{}

func (Deny) TryResolve(ctx context.Context, req definitions.CaptureRequest, cb *arbiter.Callback) bool {
	cb.Run(nil, definitions.ResultDeniedOther)
	return true
}
