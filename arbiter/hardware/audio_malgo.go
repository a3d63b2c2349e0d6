//go:build cgo

package hardware

import (
	"context"
	"encoding/hex"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog/log"
	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// ListAudioCaptureDevices asks the system audio backend for its capture
// devices. The second result is the id of the backend's default device.
func ListAudioCaptureDevices(ctx context.Context) ([]definitions.MediaDevice, string, error) {
	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
	}()

	infos, err := malgoCtx.Devices(malgo.Capture)
	if err != nil {
		return nil, "", err
	}

	var (
		ids, labels []string
		defaultID   string
	)
	for _, dev := range infos {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		full, err := malgoCtx.DeviceInfo(malgo.Capture, dev.ID, malgo.Shared)
		if err != nil {
			log.Warn().Err(err).Str("device", dev.Name()).Msg("[ListAudioCaptureDevices] unable to get device info")
			continue
		}
		id := hex.EncodeToString(full.ID[:])
		ids = append(ids, id)
		labels = append(labels, full.Name())
		if full.IsDefault == 1 && defaultID == "" {
			defaultID = id
		}
	}
	return toDevices(definitions.DeviceAudioCapture, ids, labels), defaultID, nil
}
