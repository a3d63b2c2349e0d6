package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullDesktop(t *testing.T) {
	id := FullDesktop()
	assert.False(t, id.IsNull())
	assert.Equal(t, "screen:-1:0", id.String())
}

func TestParseDesktopMediaID(t *testing.T) {
	cases := []struct {
		in   string
		want DesktopMediaID
	}{
		{"screen:-1:0", FullDesktop()},
		{"screen:3", DesktopMediaID{Type: DesktopMediaScreen, ID: 3}},
		{"window:12:99", DesktopMediaID{Type: DesktopMediaWindow, ID: 12, WindowID: 99}},
		{" window:5:0 ", DesktopMediaID{Type: DesktopMediaWindow, ID: 5}},
		{"web-contents-media-stream://7:42", DesktopMediaID{Type: DesktopMediaWebContents, RenderProcessID: 7, MainRenderFrameID: 42}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDesktopMediaID(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDesktopMediaIDErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"screen",
		"screen:1:2:3",
		"tab:1:0",
		"screen:abc:0",
		"window:1:x",
		"web-contents-media-stream://7",
		"web-contents-media-stream://a:1",
		"web-contents-media-stream://1:b",
	} {
		t.Run(in, func(t *testing.T) {
			got, err := ParseDesktopMediaID(in)
			assert.Error(t, err)
			assert.True(t, got.IsNull())
			assert.Empty(t, got.String())
		})
	}
}

func TestDesktopMediaIDRoundTrip(t *testing.T) {
	for _, id := range []DesktopMediaID{
		FullDesktop(),
		{Type: DesktopMediaScreen, ID: 1, WindowID: 0},
		{Type: DesktopMediaWindow, ID: 88, WindowID: 4},
		{Type: DesktopMediaWebContents, RenderProcessID: 3, MainRenderFrameID: 1},
	} {
		parsed, err := ParseDesktopMediaID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
}
