package hardware

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spance/capture-arbiter/arbiter/catalog"
	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// ErrUnsupported is returned where a platform offers no enumeration.
var ErrUnsupported = errors.New("capture device enumeration not supported on this platform")

// Probe enumerates attached capture hardware and publishes it into r. A
// failure on one media type leaves that list empty and is reported alongside
// the other type's result.
func Probe(ctx context.Context, r *catalog.Registry) error {
	audio, defaultAudio, audioErr := ListAudioCaptureDevices(ctx)
	if audioErr != nil {
		log.Warn().Err(audioErr).Msg("[Probe] list audio capture devices failed")
	}
	video, videoErr := ListVideoCaptureDevices(ctx)
	if videoErr != nil {
		log.Warn().Err(videoErr).Msg("[Probe] list video capture devices failed")
	}

	r.Replace(audio, video, defaultAudio, "")
	log.Info().Int("audio", len(audio)).Int("video", len(video)).Msg("[Probe] capture devices found")
	return errors.Join(audioErr, videoErr)
}

func toDevices(typ definitions.StreamType, ids, labels []string) []definitions.MediaDevice {
	devices := make([]definitions.MediaDevice, 0, len(ids))
	for i := range ids {
		devices = append(devices, definitions.MediaDevice{Type: typ, ID: ids[i], Label: labels[i]})
	}
	return devices
}
