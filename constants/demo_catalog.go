package constants

import (
	_ "embed"
	"errors"
	"sync"

	json "github.com/bytedance/sonic"
)

//go:embed demo_devices.json
var demoDevicesJSON []byte

// CatalogEntry is one device row in a catalog file.
type CatalogEntry struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// CatalogFile is the on-disk shape of a device catalog.
type CatalogFile struct {
	Audio []CatalogEntry `json:"audio" yaml:"audio"`
	Video []CatalogEntry `json:"video" yaml:"video"`
	// Optional preferred defaults; the first entry of each list otherwise.
	DefaultAudio string `json:"default_audio,omitempty" yaml:"default_audio,omitempty"`
	DefaultVideo string `json:"default_video,omitempty" yaml:"default_video,omitempty"`
}

var (
	demoCatalog CatalogFile
	errLoad     error
	once        = new(sync.Once)
)

// DemoCatalog loads the embedded demo device table used when no catalog
// file is configured.
func DemoCatalog() (CatalogFile, error) {
	once.Do(func() {
		if err := json.Unmarshal(demoDevicesJSON, &demoCatalog); err != nil {
			errLoad = errors.Join(err, errors.New("failed to unmarshal embedded demo_devices.json"))
		}
	})
	return demoCatalog, errLoad
}
