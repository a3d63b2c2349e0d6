package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spance/capture-arbiter/arbiter/definitions"
	"github.com/spance/capture-arbiter/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCatalog = `audio:
  - id: mic-a
    label: Mic A
  - id: mic-b
    label: Mic B
video:
  - id: cam-a
    label: Cam A
default_audio: mic-b
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	file, err := LoadFile(writeFile(t, "devices.yaml", yamlCatalog))
	require.NoError(t, err)

	assert.Equal(t, constants.CatalogFile{
		Audio:        []constants.CatalogEntry{{ID: "mic-a", Label: "Mic A"}, {ID: "mic-b", Label: "Mic B"}},
		Video:        []constants.CatalogEntry{{ID: "cam-a", Label: "Cam A"}},
		DefaultAudio: "mic-b",
	}, file)
}

func TestLoadFileJSON(t *testing.T) {
	file, err := LoadFile(writeFile(t, "devices.JSON", `{"audio":[],"video":[{"id":"cam-a","label":"Cam A"}],"default_video":"cam-a"}`))
	require.NoError(t, err)

	assert.Empty(t, file.Audio)
	assert.Equal(t, []constants.CatalogEntry{{ID: "cam-a", Label: "Cam A"}}, file.Video)
	assert.Equal(t, "cam-a", file.DefaultVideo)
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "devices.toml", "audio = []"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "devices.json", `{"audio": [`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse catalog")
	})

	t.Run("empty and duplicate ids", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "devices.yaml", `audio:
  - id: ""
    label: nameless
video:
  - id: cam
  - id: cam
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "audio device #0 has no id")
		assert.Contains(t, err.Error(), `duplicate video device id "cam"`)
	})
}

func TestApply(t *testing.T) {
	file, err := LoadFile(writeFile(t, "devices.yml", yamlCatalog))
	require.NoError(t, err)

	r := NewRegistry()
	Apply(r, file)

	assert.Equal(t, []definitions.MediaDevice{
		{Type: definitions.DeviceAudioCapture, ID: "mic-b", Label: "Mic B"},
		{Type: definitions.DeviceVideoCapture, ID: "cam-a", Label: "Cam A"},
	}, r.DefaultDevices(true, true))
}

func TestLoadDemo(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, LoadDemo(r))

	assert.Len(t, r.AudioDevices(), 3)
	assert.Len(t, r.VideoDevices(), 2)
	d, ok := r.FindAudioDevice("3f1c0a6e9b2d")
	require.True(t, ok)
	assert.Equal(t, definitions.DeviceAudioCapture, d.Type)
}
