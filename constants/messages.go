package constants

const (
	ConsentPrompt_ZH = `{{origin}} 请求使用您的{{devices}}。
请求类型: {{request_type}}
是否允许? (Y/N): `

	ConsentPrompt_EN = `{{origin}} wants to use your {{devices}}.
Request type: {{request_type}}
Allow? (Y/N): `
)

var MESSAGES_ZH_MAP = map[string]string{
	"microphone":     "麦克风",
	"camera":         "摄像头",
	"and":            "和",
	"unknown_origin": "未知来源",
	"allowed":        "已允许",
	"denied":         "已拒绝",
	"no_devices":     "没有可用的采集设备",
	"result":         "结果",
}

var MESSAGES_EN_MAP = map[string]string{
	"microphone":     "microphone",
	"camera":         "camera",
	"and":            "and",
	"unknown_origin": "An unknown site",
	"allowed":        "allowed",
	"denied":         "denied",
	"no_devices":     "No capture devices available",
	"result":         "Result",
}
