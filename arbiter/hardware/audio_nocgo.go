//go:build !cgo

package hardware

import (
	"context"

	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// ListAudioCaptureDevices needs the cgo audio backend.
func ListAudioCaptureDevices(ctx context.Context) ([]definitions.MediaDevice, string, error) {
	return nil, "", ErrUnsupported
}
