package arbiter

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// DeviceSelector turns an accepted request into concrete devices. It only
// reads from the catalog.
type DeviceSelector struct {
	Catalog DeviceCatalog
}

func NewDeviceSelector(catalog DeviceCatalog) *DeviceSelector {
	return &DeviceSelector{Catalog: catalog}
}

// SelectDevices panics for a device update that asks for new hardware:
// updates never legitimately request devices.
func (s *DeviceSelector) SelectDevices(req definitions.CaptureRequest, micRequested, camRequested bool) []definitions.MediaDevice {
	if !micRequested && !camRequested {
		return nil
	}

	switch req.RequestType {
	case definitions.OpenDevicePepperOnly:
		if device, ok := s.pepperDevice(req); ok {
			return []definitions.MediaDevice{device}
		}
		return nil
	case definitions.GenerateStream:
		return s.streamDevices(req, micRequested, camRequested)
	case definitions.DeviceAccess:
		return s.Catalog.DefaultDevices(micRequested, camRequested)
	case definitions.DeviceUpdate:
		panic("arbiter: device update request asked for capture devices")
	default:
		panic(fmt.Sprintf("arbiter: unknown request type %d", req.RequestType))
	}
}

// pepperDevice opens one device per call: the requested id of the declared
// kind, else the first device of that kind.
func (s *DeviceSelector) pepperDevice(req definitions.CaptureRequest) (definitions.MediaDevice, bool) {
	if req.AudioType == definitions.DeviceAudioCapture {
		if device, ok := s.Catalog.FindAudioDevice(req.RequestedAudioDeviceID); ok {
			return device, true
		}
		return lo.First(s.Catalog.AudioDevices())
	}
	if req.VideoType == definitions.DeviceVideoCapture {
		if device, ok := s.Catalog.FindVideoDevice(req.RequestedVideoDeviceID); ok {
			return device, true
		}
		return lo.First(s.Catalog.VideoDevices())
	}
	return definitions.MediaDevice{}, false
}

func (s *DeviceSelector) streamDevices(req definitions.CaptureRequest, micRequested, camRequested bool) []definitions.MediaDevice {
	var devices []definitions.MediaDevice
	needsAudio := micRequested
	needsVideo := camRequested

	if req.RequestedAudioDeviceID != "" {
		if device, ok := s.Catalog.FindAudioDevice(req.RequestedAudioDeviceID); ok {
			devices = append(devices, device)
			needsAudio = false
		}
	}
	if req.RequestedVideoDeviceID != "" {
		if device, ok := s.Catalog.FindVideoDevice(req.RequestedVideoDeviceID); ok {
			devices = append(devices, device)
			needsVideo = false
		}
	}

	if needsAudio || needsVideo {
		devices = append(devices, s.Catalog.DefaultDevices(needsAudio, needsVideo)...)
	}
	return devices
}
