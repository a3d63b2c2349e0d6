package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// ParseRequestLine reads a request written as space separated key=value
// pairs, for example:
//
//	audio=mic video=camera type=generate_stream origin=https://meet.example.com
//
// Keys: audio, video, type, audio_device, video_device, origin, process, frame.
// Values may be double quoted to contain spaces.
func ParseRequestLine(line string) (definitions.CaptureRequest, error) {
	var req definitions.CaptureRequest

	args, err := splitArgs(strings.TrimSpace(line))
	if err != nil {
		return req, err
	}
	if len(args) == 0 {
		return req, fmt.Errorf("empty request")
	}

	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return req, fmt.Errorf("invalid argument: %s", arg)
		}
		key = strings.TrimSpace(key)
		val = unquote(strings.TrimSpace(val))

		switch key {
		case "audio":
			t, ok := definitions.ParseStreamType(val, true)
			if !ok {
				return req, fmt.Errorf("invalid audio type: %s", val)
			}
			req.AudioType = t
		case "video":
			t, ok := definitions.ParseStreamType(val, false)
			if !ok {
				return req, fmt.Errorf("invalid video type: %s", val)
			}
			req.VideoType = t
		case "type":
			t, ok := definitions.ParseRequestType(val)
			if !ok {
				return req, fmt.Errorf("invalid request type: %s", val)
			}
			req.RequestType = t
		case "audio_device":
			req.RequestedAudioDeviceID = val
		case "video_device":
			req.RequestedVideoDeviceID = val
		case "origin":
			req.SecurityOrigin = val
		case "process", "frame":
			n, err := strconv.Atoi(val)
			if err != nil {
				return req, fmt.Errorf("invalid value for %s: %w", key, err)
			}
			if key == "process" {
				req.Frame.ProcessID = n
			} else {
				req.Frame.FrameID = n
			}
		default:
			return req, fmt.Errorf("unknown key: %s", key)
		}
	}
	return req, nil
}

func splitArgs(s string) ([]string, error) {
	var (
		args     []string
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuotes:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args, nil
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
