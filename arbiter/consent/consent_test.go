package consent

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spance/capture-arbiter/arbiter"
	"github.com/spance/capture-arbiter/arbiter/definitions"
	"github.com/spance/capture-arbiter/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	calls  int
	result definitions.ResultCode
}

func newCallback() (*arbiter.Callback, *outcome) {
	o := &outcome{}
	return arbiter.NewCallback(func(_ []definitions.MediaDevice, result definitions.ResultCode) {
		o.calls++
		o.result = result
	}), o
}

var micRequest = definitions.CaptureRequest{
	SecurityOrigin: "https://meet.example.com",
	AudioType:      definitions.DeviceAudioCapture,
}

func TestDecline(t *testing.T) {
	cb, o := newCallback()
	assert.False(t, Decline{}.TryResolve(context.Background(), micRequest, cb))
	assert.Zero(t, o.calls)
}

func TestDeny(t *testing.T) {
	cb, o := newCallback()
	assert.True(t, Deny{}.TryResolve(context.Background(), micRequest, cb))
	assert.Equal(t, outcome{calls: 1, result: definitions.ResultDeniedOther}, *o)
}

func TestChain(t *testing.T) {
	t.Run("first claim wins", func(t *testing.T) {
		cb, o := newCallback()
		claimed := Chain{nil, Decline{}, Deny{}, Deny{}}.TryResolve(context.Background(), micRequest, cb)
		assert.True(t, claimed)
		assert.Equal(t, 1, o.calls)
	})

	t.Run("all decline", func(t *testing.T) {
		cb, o := newCallback()
		assert.False(t, Chain{Decline{}, Decline{}}.TryResolve(context.Background(), micRequest, cb))
		assert.False(t, Chain{}.TryResolve(context.Background(), micRequest, cb))
		assert.Zero(t, o.calls)
	})
}

func TestPolicy(t *testing.T) {
	cases := []struct {
		name    string
		policy  Policy
		origin  string
		claimed bool
	}{
		{"empty policy lets everything through", Policy{}, "https://any.example.org", false},
		{"blocked host", Policy{Block: []string{"evil.example.com"}}, "https://evil.example.com:8443", true},
		{"blocked full origin", Policy{Block: []string{"https://evil.example.com"}}, "https://evil.example.com", true},
		{"block matching ignores case", Policy{Block: []string{"EVIL.example.com"}}, "https://evil.example.com", true},
		{"allow list hit", Policy{Allow: []string{"meet.example.com"}}, "https://meet.example.com", false},
		{"allow list miss", Policy{Allow: []string{"meet.example.com"}}, "https://other.example.com", true},
		{"block beats allow", Policy{Allow: []string{"meet.example.com"}, Block: []string{"meet.example.com"}}, "https://meet.example.com", true},
		{"bare origin string", Policy{Allow: []string{"local-app"}}, "local-app", false},
		{"blank entries are ignored", Policy{Allow: []string{"  "}}, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cb, o := newCallback()
			req := micRequest
			req.SecurityOrigin = tc.origin

			assert.Equal(t, tc.claimed, tc.policy.TryResolve(context.Background(), req, cb))
			if tc.claimed {
				assert.Equal(t, outcome{calls: 1, result: definitions.ResultDeniedOther}, *o)
			} else {
				assert.Zero(t, o.calls)
			}
		})
	}
}

func TestPromptAnswers(t *testing.T) {
	cases := []struct {
		answer  string
		claimed bool
	}{
		{"Y\n", false},
		{" y \n", false},
		{"y", false},
		{"n\n", true},
		{"yes\n", true},
		{"\n", true},
	}

	for _, tc := range cases {
		t.Run(strings.TrimSpace(tc.answer), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompt(utils.NewLineReader(strings.NewReader(tc.answer)), &out, "en")
			cb, o := newCallback()

			assert.Equal(t, tc.claimed, p.TryResolve(context.Background(), micRequest, cb))
			assert.Contains(t, out.String(), "https://meet.example.com wants to use your microphone.")
			if tc.claimed {
				assert.Equal(t, outcome{calls: 1, result: definitions.ResultDeniedOther}, *o)
			} else {
				assert.Zero(t, o.calls)
			}
		})
	}
}

func TestPromptReadsOneLinePerRequest(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(utils.NewLineReader(strings.NewReader("y\nn\n")), &out, "cn")

	cb1, o1 := newCallback()
	assert.False(t, p.TryResolve(context.Background(), micRequest, cb1))
	assert.Zero(t, o1.calls)

	cb2, o2 := newCallback()
	assert.True(t, p.TryResolve(context.Background(), micRequest, cb2))
	assert.Equal(t, 1, o2.calls)
	assert.Contains(t, out.String(), "请求使用您的麦克风")
}

func TestPromptIgnoresNonDeviceRequests(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(utils.NewLineReader(strings.NewReader("n\n")), &out, "en")
	cb, o := newCallback()

	req := definitions.CaptureRequest{AudioType: definitions.TabAudioCapture}
	assert.False(t, p.TryResolve(context.Background(), req, cb))
	assert.Zero(t, o.calls)
	assert.Empty(t, out.String())
}

func TestPromptEOFDenies(t *testing.T) {
	p := NewPrompt(utils.NewLineReader(strings.NewReader("")), io.Discard, "en")
	cb, o := newCallback()
	assert.True(t, p.TryResolve(context.Background(), micRequest, cb))
	assert.Equal(t, definitions.ResultDeniedOther, o.result)
}

func TestPromptContextCancelDenies(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := NewPrompt(utils.NewLineReader(pr), io.Discard, "en")
	cb, o := newCallback()
	require.True(t, p.TryResolve(ctx, micRequest, cb))
	assert.Equal(t, outcome{calls: 1, result: definitions.ResultDeniedOther}, *o)
}

func TestPromptAnswerAfterCancelledPrompt(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	p := NewPrompt(utils.NewLineReader(pr), io.Discard, "en")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	cb1, o1 := newCallback()
	require.True(t, p.TryResolve(ctx, micRequest, cb1))
	assert.Equal(t, definitions.ResultDeniedOther, o1.result)

	go func() { _, _ = io.WriteString(pw, "y\n") }()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	cb2, o2 := newCallback()
	assert.False(t, p.TryResolve(ctx2, micRequest, cb2), "the answer belongs to the next prompt")
	assert.Zero(t, o2.calls)
}
