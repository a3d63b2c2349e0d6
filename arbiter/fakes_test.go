package arbiter_test

import (
	"context"

	"github.com/spance/capture-arbiter/arbiter"
	"github.com/spance/capture-arbiter/arbiter/catalog"
	"github.com/spance/capture-arbiter/arbiter/definitions"
	"github.com/stretchr/testify/mock"
)

var (
	builtinMic = definitions.MediaDevice{Type: definitions.DeviceAudioCapture, ID: "mic-builtin", Label: "Built-in Microphone"}
	usbMic     = definitions.MediaDevice{Type: definitions.DeviceAudioCapture, ID: "mic-usb", Label: "USB Microphone"}
	faceCam    = definitions.MediaDevice{Type: definitions.DeviceVideoCapture, ID: "cam-face", Label: "FaceTime HD Camera"}
	usbCam     = definitions.MediaDevice{Type: definitions.DeviceVideoCapture, ID: "cam-usb", Label: "USB Webcam"}

	liveFrame = definitions.FrameID{ProcessID: 10, FrameID: 3}
)

// countingCatalog records how often defaults are requested.
type countingCatalog struct {
	*catalog.Registry
	defaultCalls [][2]bool
}

func newCatalog(audio, video []definitions.MediaDevice) *countingCatalog {
	r := catalog.NewRegistry()
	r.Update(audio, video)
	return &countingCatalog{Registry: r}
}

func (c *countingCatalog) DefaultDevices(needAudio, needVideo bool) []definitions.MediaDevice {
	c.defaultCalls = append(c.defaultCalls, [2]bool{needAudio, needVideo})
	return c.Registry.DefaultDevices(needAudio, needVideo)
}

type frameSet map[definitions.FrameID]bool

func (s frameSet) LookupFrame(processID, frameID int) (arbiter.Frame, bool) {
	id := definitions.FrameID{ProcessID: processID, FrameID: frameID}
	if !s[id] {
		return arbiter.Frame{}, false
	}
	return arbiter.Frame{ID: id}, true
}

type mockConsent struct {
	mock.Mock
}

func (m *mockConsent) TryResolve(ctx context.Context, req definitions.CaptureRequest, cb *arbiter.Callback) bool {
	args := m.Called(ctx, req, cb)
	return args.Bool(0)
}

// recorder collects every resolution delivered to it.
type recorder struct {
	calls []definitions.Resolution
}

func (r *recorder) fn(devices []definitions.MediaDevice, result definitions.ResultCode) {
	r.calls = append(r.calls, definitions.Resolution{Devices: devices, Result: result})
}

func (r *recorder) last() definitions.Resolution {
	return r.calls[len(r.calls)-1]
}

func defaultDeps(c arbiter.DeviceCatalog) arbiter.Dependencies {
	return arbiter.Dependencies{
		Catalog: c,
		Frames:  frameSet{liveFrame: true},
	}
}
