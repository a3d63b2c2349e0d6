//go:build !linux

package hardware

import (
	"context"

	"github.com/spance/capture-arbiter/arbiter/definitions"
)

func ListVideoCaptureDevices(ctx context.Context) ([]definitions.MediaDevice, error) {
	return nil, ErrUnsupported
}
