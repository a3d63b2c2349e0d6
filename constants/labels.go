package constants

const (
	// LoopbackDeviceID is the id granted for system audio capture.
	LoopbackDeviceID = "loopback"
	SystemAudioLabel = "System Audio"
	ScreenLabel      = "Screen"
)

// Supported prompt languages.
const (
	LangCN = "cn"
	LangEN = "en"
)
