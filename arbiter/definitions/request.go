package definitions

// FrameID identifies the frame that issued a request.
type FrameID struct {
	ProcessID int `json:"render_process_id"`
	FrameID   int `json:"render_frame_id"`
}

// CaptureRequest is read-only for the lifetime of an arbitration.
type CaptureRequest struct {
	Frame                  FrameID     `json:"frame"`
	SecurityOrigin         string      `json:"security_origin,omitempty"`
	RequestType            RequestType `json:"request_type"`
	AudioType              StreamType  `json:"audio_type"`
	VideoType              StreamType  `json:"video_type"`
	RequestedAudioDeviceID string      `json:"requested_audio_device_id,omitempty"`
	RequestedVideoDeviceID string      `json:"requested_video_device_id,omitempty"`
}

// IsScreenCapture reports whether either side asks for tab or desktop capture.
func (r *CaptureRequest) IsScreenCapture() bool {
	return r.AudioType.IsScreenCapture() || r.VideoType.IsScreenCapture()
}

// MicrophoneRequested is true for device audio, and for every pepper open so
// that one consent covers both media types.
func (r *CaptureRequest) MicrophoneRequested() bool {
	return r.AudioType == DeviceAudioCapture || r.RequestType == OpenDevicePepperOnly
}

func (r *CaptureRequest) WebcamRequested() bool {
	return r.VideoType == DeviceVideoCapture || r.RequestType == OpenDevicePepperOnly
}

// MediaDevice is both a catalog entry and a granted device.
type MediaDevice struct {
	Type  StreamType `json:"type"`
	ID    string     `json:"id"`
	Label string     `json:"label"`
}

// Resolution is the single outcome delivered to a request's callback.
type Resolution struct {
	Devices []MediaDevice `json:"devices"`
	Result  ResultCode    `json:"result"`
}
