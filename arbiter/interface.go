package arbiter

import (
	"context"

	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// DeviceCatalog exposes the capture devices currently attached. Reads are
// expected to be cheap snapshot lookups.
type DeviceCatalog interface {
	AudioDevices() []definitions.MediaDevice
	VideoDevices() []definitions.MediaDevice
	FindAudioDevice(id string) (definitions.MediaDevice, bool)
	FindVideoDevice(id string) (definitions.MediaDevice, bool)
	// DefaultDevices returns the default device for each needed media type,
	// audio first. Types without any device are skipped.
	DefaultDevices(needAudio, needVideo bool) []definitions.MediaDevice
}

// ConsentAuthority may take over a request, for example to show a picker.
// When TryResolve returns true the authority owns cb and must run it exactly
// once. When it returns false it must not have touched cb.
type ConsentAuthority interface {
	TryResolve(ctx context.Context, req definitions.CaptureRequest, cb *Callback) bool
}

// Frame is the part of a live frame the arbiter cares about.
type Frame struct {
	ID     definitions.FrameID
	Origin string
}

// FrameResolver finds live frames by identity.
type FrameResolver interface {
	LookupFrame(processID, frameID int) (Frame, bool)
}

// ConsentFunc adapts a plain function to ConsentAuthority.
type ConsentFunc func(ctx context.Context, req definitions.CaptureRequest, cb *Callback) bool

func (f ConsentFunc) TryResolve(ctx context.Context, req definitions.CaptureRequest, cb *Callback) bool {
	return f(ctx, req, cb)
}

// Dependencies are the collaborators shared by every arbitration.
type Dependencies struct {
	Catalog DeviceCatalog
	Frames  FrameResolver
	// Consent may be nil, in which case every request is decided locally.
	Consent ConsentAuthority
}
