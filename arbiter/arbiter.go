package arbiter

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// RequestArbiter decides a single capture request. Create one per request,
// call Run once and Close when done; Close fails a request nobody resolved.
type RequestArbiter struct {
	TraceID  string
	Request  definitions.CaptureRequest
	Selector *DeviceSelector

	deps     Dependencies
	callback pendingCallback
	state    atomic.Int32

	microphoneRequested bool
	webcamRequested     bool
}

func NewRequestArbiter(req definitions.CaptureRequest, cb *Callback, deps Dependencies) *RequestArbiter {
	if cb == nil {
		panic("arbiter: nil callback")
	}
	if deps.Catalog == nil || deps.Frames == nil {
		panic("arbiter: catalog and frame resolver are required")
	}

	r := &RequestArbiter{
		TraceID:             uuid.New().String(),
		Request:             req,
		Selector:            NewDeviceSelector(deps.Catalog),
		deps:                deps,
		callback:            pendingCallback{cb: cb},
		microphoneRequested: req.MicrophoneRequested(),
		webcamRequested:     req.WebcamRequested(),
	}
	// Whichever branch ends up running the callback, the arbitration is over.
	cb.onFired = func(res definitions.Resolution) {
		if r.State() != definitions.StateAbandonedNoFrame {
			r.setState(definitions.StateResolved)
		}
		log.Debug().Str("trace", r.TraceID).
			Str("result", res.Result.String()).
			Int("devices", len(res.Devices)).
			Msg("capture request resolved")
	}
	return r
}

// Arbitrate builds an arbiter for req and runs it. The caller still owns the
// returned arbiter and must Close it.
func Arbitrate(ctx context.Context, req definitions.CaptureRequest, fn ResolveFunc, deps Dependencies) *RequestArbiter {
	r := NewRequestArbiter(req, NewCallback(fn), deps)
	r.Run(ctx)
	return r
}

func (r *RequestArbiter) State() definitions.ArbiterState {
	return definitions.ArbiterState(r.state.Load())
}

func (r *RequestArbiter) setState(s definitions.ArbiterState) {
	r.state.Store(int32(s))
}

func (r *RequestArbiter) MicrophoneRequested() bool { return r.microphoneRequested }

func (r *RequestArbiter) WebcamRequested() bool { return r.webcamRequested }

// Run takes exactly one resolution path. Calling it again is a no-op.
func (r *RequestArbiter) Run(ctx context.Context) {
	if r.State() != definitions.StatePending {
		log.Warn().Str("trace", r.TraceID).Str("state", r.State().String()).Msg("[Run] arbiter already ran")
		return
	}

	req := r.Request
	logger := log.With().
		Str("trace", r.TraceID).
		Str("audio", req.AudioType.String()).
		Str("video", req.VideoType.String()).
		Str("request_type", req.RequestType.String()).
		Logger()

	// Tab and desktop capture never goes through hardware consent.
	if req.IsScreenCapture() {
		r.setState(definitions.StateDelegatedToScreenResolver)
		logger.Debug().Msg("[Run] handling screen capture request")
		devices, result := ResolveScreenCapture(req)
		r.callback.take().Run(devices, result)
		return
	}

	if _, ok := r.deps.Frames.LookupFrame(req.Frame.ProcessID, req.Frame.FrameID); !ok {
		r.setState(definitions.StateAbandonedNoFrame)
		logger.Info().
			Int("render_process_id", req.Frame.ProcessID).
			Int("render_frame_id", req.Frame.FrameID).
			Msg("[Run] frame is gone, abandoning request")
		return
	}

	if r.deps.Consent != nil {
		r.setState(definitions.StateOfferedToConsent)
		if r.deps.Consent.TryResolve(ctx, req, r.callback.cb) {
			// The authority owns the callback now. It may already have run it,
			// in which case the state is Resolved and must stay so.
			r.callback.take()
			r.state.CompareAndSwap(int32(definitions.StateOfferedToConsent), int32(definitions.StateDelegatedToConsent))
			logger.Debug().Msg("[Run] consent authority claimed request")
			return
		}
		logger.Debug().Msg("[Run] consent authority declined request")
	}

	r.setState(definitions.StateDeciding)

	// Deny the request if there is no device attached at all.
	if !r.hasAnyAvailableDevice() {
		logger.Info().Msg("[Run] no capture hardware, denying request")
		r.deny(definitions.ResultDeniedNoHardware)
		return
	}
	r.accept()
}

func (r *RequestArbiter) hasAnyAvailableDevice() bool {
	return len(r.deps.Catalog.AudioDevices()) > 0 || len(r.deps.Catalog.VideoDevices()) > 0
}

func (r *RequestArbiter) accept() {
	devices := r.Selector.SelectDevices(r.Request, r.microphoneRequested, r.webcamRequested)
	r.callback.take().Run(devices, definitions.ResultOK)
}

func (r *RequestArbiter) deny(result definitions.ResultCode) {
	r.callback.take().Run(nil, result)
}

// Close fails the request with ResultFailedDueToShutdown if this arbiter
// still holds the callback. That includes a request abandoned because its
// frame went away. Close is idempotent.
func (r *RequestArbiter) Close() error {
	if r.callback.release() {
		log.Debug().Str("trace", r.TraceID).Msg("[Close] failed pending capture request")
	}
	return nil
}
