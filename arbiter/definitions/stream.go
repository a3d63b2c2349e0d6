package definitions

// StreamType is the capture kind declared for one media side of a request.
type StreamType int

const (
	StreamNone StreamType = iota
	DeviceAudioCapture
	DeviceVideoCapture
	TabAudioCapture
	TabVideoCapture
	DesktopAudioCapture
	DesktopVideoCapture
)

func (t StreamType) String() string {
	names := [...]string{
		"none",
		"device_audio_capture",
		"device_video_capture",
		"tab_audio_capture",
		"tab_video_capture",
		"desktop_audio_capture",
		"desktop_video_capture",
	}
	if t < StreamNone || int(t) >= len(names) {
		return "unknown"
	}
	return names[t]
}

// IsAudio reports whether t captures sound.
func (t StreamType) IsAudio() bool {
	return t == DeviceAudioCapture || t == TabAudioCapture || t == DesktopAudioCapture
}

// IsVideo reports whether t captures pictures.
func (t StreamType) IsVideo() bool {
	return t == DeviceVideoCapture || t == TabVideoCapture || t == DesktopVideoCapture
}

// IsScreenCapture reports whether t targets a tab or the desktop rather than
// an attached device.
func (t StreamType) IsScreenCapture() bool {
	switch t {
	case TabAudioCapture, TabVideoCapture, DesktopAudioCapture, DesktopVideoCapture:
		return true
	}
	return false
}

// ParseStreamType accepts the names produced by String plus the short CLI
// aliases (mic, camera, tab, desktop).
func ParseStreamType(s string, audio bool) (StreamType, bool) {
	switch s {
	case "", "none":
		return StreamNone, true
	case "device", "mic", "camera":
		if audio {
			return DeviceAudioCapture, true
		}
		return DeviceVideoCapture, true
	case "tab":
		if audio {
			return TabAudioCapture, true
		}
		return TabVideoCapture, true
	case "desktop":
		if audio {
			return DesktopAudioCapture, true
		}
		return DesktopVideoCapture, true
	}
	for t := StreamNone; t <= DesktopVideoCapture; t++ {
		if t.String() == s && (t == StreamNone || t.IsAudio() == audio) {
			return t, true
		}
	}
	return StreamNone, false
}

// RequestType selects the device selection policy.
type RequestType int

const (
	GenerateStream RequestType = iota
	OpenDevicePepperOnly
	DeviceAccess
	DeviceUpdate
)

func (t RequestType) String() string {
	switch t {
	case GenerateStream:
		return "generate_stream"
	case OpenDevicePepperOnly:
		return "open_device_pepper_only"
	case DeviceAccess:
		return "device_access"
	case DeviceUpdate:
		return "device_update"
	default:
		return "unknown"
	}
}

func ParseRequestType(s string) (RequestType, bool) {
	switch s {
	case "generate_stream", "generate-stream", "":
		return GenerateStream, true
	case "open_device_pepper_only", "open-device-pepper", "pepper":
		return OpenDevicePepperOnly, true
	case "device_access", "device-access":
		return DeviceAccess, true
	case "device_update", "device-update":
		return DeviceUpdate, true
	}
	return GenerateStream, false
}

// ResultCode accompanies every resolution.
type ResultCode int

const (
	ResultOK ResultCode = iota
	ResultDeniedNoHardware
	ResultDeniedOther
	ResultFailedDueToShutdown
)

func (c ResultCode) String() string {
	switch c {
	case ResultOK:
		return "ok"
	case ResultDeniedNoHardware:
		return "no_hardware"
	case ResultDeniedOther:
		return "permission_denied"
	case ResultFailedDueToShutdown:
		return "failed_due_to_shutdown"
	default:
		return "unknown"
	}
}

// MarshalText lets JSON output carry the readable code.
func (c ResultCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (t StreamType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
