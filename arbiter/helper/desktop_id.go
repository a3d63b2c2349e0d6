package helper

import (
	"fmt"
	"strconv"
	"strings"
)

type DesktopMediaType int

const (
	DesktopMediaNone DesktopMediaType = iota
	DesktopMediaScreen
	DesktopMediaWindow
	DesktopMediaWebContents
)

const (
	screenPrefix      = "screen"
	windowPrefix      = "window"
	webContentsScheme = "web-contents-media-stream://"

	// FullDesktopScreenID selects the whole desktop on the default screen.
	FullDesktopScreenID int64 = -1
	// NullID marks an absent native window id.
	NullID int64 = 0
)

// DesktopMediaID names a desktop capture target. Screen and window targets
// serialize as "<type>:<id>:<window_id>", tab targets as
// "web-contents-media-stream://<render_process_id>:<main_render_frame_id>".
type DesktopMediaID struct {
	Type     DesktopMediaType
	ID       int64
	WindowID int64

	RenderProcessID   int
	MainRenderFrameID int
}

// FullDesktop is the target used when no explicit id was requested.
func FullDesktop() DesktopMediaID {
	return DesktopMediaID{Type: DesktopMediaScreen, ID: FullDesktopScreenID, WindowID: NullID}
}

func (d DesktopMediaID) IsNull() bool {
	return d.Type == DesktopMediaNone
}

// String serializes d; the null id serializes to "".
func (d DesktopMediaID) String() string {
	switch d.Type {
	case DesktopMediaScreen:
		return fmt.Sprintf("%s:%d:%d", screenPrefix, d.ID, d.WindowID)
	case DesktopMediaWindow:
		return fmt.Sprintf("%s:%d:%d", windowPrefix, d.ID, d.WindowID)
	case DesktopMediaWebContents:
		return fmt.Sprintf("%s%d:%d", webContentsScheme, d.RenderProcessID, d.MainRenderFrameID)
	default:
		return ""
	}
}

// ParseDesktopMediaID is the inverse of String. Malformed input yields the
// null id together with an error describing the problem.
func ParseDesktopMediaID(s string) (DesktopMediaID, error) {
	s = strings.TrimSpace(s)

	// case 1: web-contents-media-stream://pid:frame
	if rest, ok := strings.CutPrefix(s, webContentsScheme); ok {
		pid, frame, found := strings.Cut(rest, ":")
		if !found {
			return DesktopMediaID{}, fmt.Errorf("invalid web contents id: %q", s)
		}
		p, err := strconv.Atoi(pid)
		if err != nil {
			return DesktopMediaID{}, fmt.Errorf("invalid render process id in %q: %w", s, err)
		}
		f, err := strconv.Atoi(frame)
		if err != nil {
			return DesktopMediaID{}, fmt.Errorf("invalid render frame id in %q: %w", s, err)
		}
		return DesktopMediaID{Type: DesktopMediaWebContents, RenderProcessID: p, MainRenderFrameID: f}, nil
	}

	// case 2: screen:id[:window] / window:id[:window]
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return DesktopMediaID{}, fmt.Errorf("invalid desktop media id: %q", s)
	}

	var typ DesktopMediaType
	switch parts[0] {
	case screenPrefix:
		typ = DesktopMediaScreen
	case windowPrefix:
		typ = DesktopMediaWindow
	default:
		return DesktopMediaID{}, fmt.Errorf("unknown desktop media type %q", parts[0])
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return DesktopMediaID{}, fmt.Errorf("invalid desktop media id %q: %w", s, err)
	}

	windowID := NullID
	if len(parts) == 3 {
		windowID, err = strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return DesktopMediaID{}, fmt.Errorf("invalid window id %q: %w", s, err)
		}
	}

	return DesktopMediaID{Type: typ, ID: id, WindowID: windowID}, nil
}
