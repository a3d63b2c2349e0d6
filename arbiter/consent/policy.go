package consent

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spance/capture-arbiter/arbiter"
	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// Policy denies requests from blocked origins outright and declines the rest
// so the arbiter picks devices. When Allow is non-empty, only listed origins
// get through. Entries match the full origin or its host.
type Policy struct {
	Allow []string
	Block []string
}

func (p *Policy) TryResolve(ctx context.Context, req definitions.CaptureRequest, cb *arbiter.Callback) bool {
	if p.permits(req.SecurityOrigin) {
		return false
	}
	log.Info().Str("origin", req.SecurityOrigin).Msg("[Policy] capture request denied by origin policy")
	cb.Run(nil, definitions.ResultDeniedOther)
	return true
}

func (p *Policy) permits(origin string) bool {
	if matchesAny(p.Block, origin) {
		return false
	}
	return len(p.Allow) == 0 || matchesAny(p.Allow, origin)
}

func matchesAny(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Hostname()
	}
	return lo.ContainsBy(patterns, func(p string) bool {
		p = strings.TrimSpace(p)
		return p != "" && (strings.EqualFold(p, origin) || strings.EqualFold(p, host))
	})
}
