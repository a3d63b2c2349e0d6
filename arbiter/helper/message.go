package helper

import (
	"strings"

	"github.com/spance/capture-arbiter/arbiter/definitions"
	"github.com/spance/capture-arbiter/constants"
	"github.com/valyala/fasttemplate"
)

func GetMessage(key string, lang string) string {
	if lang == constants.LangEN {
		return constants.MESSAGES_EN_MAP[key]
	}
	return constants.MESSAGES_ZH_MAP[key]
}

// DescribeDevices names the hardware a request wants, e.g. "microphone and camera".
func DescribeDevices(req definitions.CaptureRequest, lang string) string {
	var parts []string
	if req.MicrophoneRequested() {
		parts = append(parts, GetMessage("microphone", lang))
	}
	if req.WebcamRequested() {
		parts = append(parts, GetMessage("camera", lang))
	}
	sep := " " + GetMessage("and", lang) + " "
	if lang != constants.LangEN {
		sep = GetMessage("and", lang)
	}
	return strings.Join(parts, sep)
}

// BuildConsentPrompt renders the Y/N question shown for req.
func BuildConsentPrompt(req definitions.CaptureRequest, lang string) string {
	tmpl := constants.ConsentPrompt_ZH
	if lang == constants.LangEN {
		tmpl = constants.ConsentPrompt_EN
	}

	origin := req.SecurityOrigin
	if origin == "" {
		origin = GetMessage("unknown_origin", lang)
	}

	return fasttemplate.ExecuteString(tmpl, "{{", "}}", map[string]interface{}{
		"origin":       origin,
		"devices":      DescribeDevices(req, lang),
		"request_type": req.RequestType.String(),
	})
}

// DescribeResolution summarizes res for a person, e.g. "Result: allowed".
func DescribeResolution(res definitions.Resolution, lang string) string {
	status := GetMessage("denied", lang)
	switch {
	case res.Result == definitions.ResultOK && len(res.Devices) == 0:
		status = GetMessage("no_devices", lang)
	case res.Result == definitions.ResultOK:
		status = GetMessage("allowed", lang)
	}
	return GetMessage("result", lang) + ": " + status
}
