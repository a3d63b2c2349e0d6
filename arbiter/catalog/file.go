package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/bytedance/sonic"
	"github.com/samber/lo"
	"github.com/spance/capture-arbiter/arbiter/definitions"
	"github.com/spance/capture-arbiter/constants"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown catalog file format")

// LoadFile reads a catalog from a .yaml/.yml or .json file.
func LoadFile(path string) (constants.CatalogFile, error) {
	var file constants.CatalogFile

	raw, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("read catalog %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &file)
	case ".json":
		err = json.Unmarshal(raw, &file)
	default:
		return file, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return file, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	if err := validate(file); err != nil {
		return file, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return file, nil
}

func validate(file constants.CatalogFile) error {
	var errs []error
	check := func(kind string, entries []constants.CatalogEntry) {
		seen := make(map[string]bool, len(entries))
		for i, e := range entries {
			switch {
			case e.ID == "":
				errs = append(errs, fmt.Errorf("%s device #%d has no id", kind, i))
			case seen[e.ID]:
				errs = append(errs, fmt.Errorf("duplicate %s device id %q", kind, e.ID))
			}
			seen[e.ID] = true
		}
	}
	check("audio", file.Audio)
	check("video", file.Video)
	return errors.Join(errs...)
}

// Apply publishes file into r, including its preferred defaults.
func Apply(r *Registry, file constants.CatalogFile) {
	toDevices := func(entries []constants.CatalogEntry) []definitions.MediaDevice {
		return lo.Map(entries, func(e constants.CatalogEntry, _ int) definitions.MediaDevice {
			return definitions.MediaDevice{ID: e.ID, Label: e.Label}
		})
	}
	r.Replace(toDevices(file.Audio), toDevices(file.Video), file.DefaultAudio, file.DefaultVideo)
}

// LoadDemo fills r with the embedded demo devices.
func LoadDemo(r *Registry) error {
	file, err := constants.DemoCatalog()
	if err != nil {
		return err
	}
	Apply(r, file)
	return nil
}
