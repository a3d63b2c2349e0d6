//go:build linux

package hardware

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spance/capture-arbiter/arbiter/definitions"
)

var videoClassDir = "/sys/class/video4linux"

// ListVideoCaptureDevices lists V4L2 nodes that can capture. Metadata nodes
// that share a camera are skipped by keeping index 0 of each device.
func ListVideoCaptureDevices(ctx context.Context) ([]definitions.MediaDevice, error) {
	entries, err := os.ReadDir(videoClassDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", videoClassDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "video") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var ids, labels []string
	for _, name := range names {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		dir := filepath.Join(videoClassDir, name)
		if index := readAttr(dir, "index"); index != "" && index != "0" {
			continue
		}
		label := readAttr(dir, "name")
		if label == "" {
			label = name
		}
		ids = append(ids, "/dev/"+name)
		labels = append(labels, label)
	}
	return toDevices(definitions.DeviceVideoCapture, ids, labels), nil
}

func readAttr(dir, attr string) string {
	raw, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
