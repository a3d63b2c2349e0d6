package arbiter

import (
	"github.com/rs/zerolog/log"
	"github.com/spance/capture-arbiter/arbiter/definitions"
	"github.com/spance/capture-arbiter/arbiter/helper"
	"github.com/spance/capture-arbiter/constants"
)

// ResolveScreenCapture grants tab and desktop capture targets. Such targets
// were already authorized by whoever minted the requested id, so neither the
// consent authority nor the device catalog is consulted.
func ResolveScreenCapture(req definitions.CaptureRequest) ([]definitions.MediaDevice, definitions.ResultCode) {
	var devices []definitions.MediaDevice

	if req.AudioType == definitions.TabAudioCapture {
		devices = append(devices, definitions.MediaDevice{Type: definitions.TabAudioCapture})
	}
	if req.VideoType == definitions.TabVideoCapture {
		devices = append(devices, definitions.MediaDevice{Type: definitions.TabVideoCapture})
	}
	if req.AudioType == definitions.DesktopAudioCapture {
		devices = append(devices, definitions.MediaDevice{
			Type:  definitions.DesktopAudioCapture,
			ID:    constants.LoopbackDeviceID,
			Label: constants.SystemAudioLabel,
		})
	}
	if req.VideoType == definitions.DesktopVideoCapture {
		devices = append(devices, definitions.MediaDevice{
			Type:  definitions.DesktopVideoCapture,
			ID:    desktopTarget(req.RequestedVideoDeviceID).String(),
			Label: constants.ScreenLabel,
		})
	}

	if len(devices) == 0 {
		return nil, definitions.ResultDeniedNoHardware
	}
	return devices, definitions.ResultOK
}

// desktopTarget picks the capture target for desktop video. An empty id means
// the page asked for the screen without going through a source picker.
func desktopTarget(requestedID string) helper.DesktopMediaID {
	if requestedID == "" {
		return helper.FullDesktop()
	}
	id, err := helper.ParseDesktopMediaID(requestedID)
	if err != nil {
		log.Warn().Err(err).Str("requested_id", requestedID).Msg("[ResolveScreenCapture] unparsable desktop media id")
	}
	return id
}
