package catalog

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// snapshot is never mutated after it is published.
type snapshot struct {
	audio        []definitions.MediaDevice
	video        []definitions.MediaDevice
	defaultAudio string
	defaultVideo string
}

// Registry is the process-wide view of attached capture devices. Readers see
// a consistent snapshot without locking; Update swaps in a new one.
type Registry struct {
	current atomic.Pointer[snapshot]

	mu        sync.Mutex
	listeners []func()
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.current.Store(&snapshot{})
	return r
}

// Update replaces the device lists. Device types are forced to the list they
// were given in, so callers may pass bare id/label pairs.
func (r *Registry) Update(audio, video []definitions.MediaDevice) {
	prev := r.current.Load()
	r.publish(&snapshot{
		audio:        retype(audio, definitions.DeviceAudioCapture),
		video:        retype(video, definitions.DeviceVideoCapture),
		defaultAudio: prev.defaultAudio,
		defaultVideo: prev.defaultVideo,
	})
}

// Replace swaps in device lists and preferred defaults in one step.
func (r *Registry) Replace(audio, video []definitions.MediaDevice, defaultAudio, defaultVideo string) {
	r.publish(&snapshot{
		audio:        retype(audio, definitions.DeviceAudioCapture),
		video:        retype(video, definitions.DeviceVideoCapture),
		defaultAudio: defaultAudio,
		defaultVideo: defaultVideo,
	})
}

// SetPreferredDefaults names the devices DefaultDevices should prefer. An
// empty id or one that is not attached falls back to the first device.
func (r *Registry) SetPreferredDefaults(audioID, videoID string) {
	prev := r.current.Load()
	r.publish(&snapshot{
		audio:        prev.audio,
		video:        prev.video,
		defaultAudio: audioID,
		defaultVideo: videoID,
	})
}

// OnDeviceChange registers fn to run after every published change: Update,
// Replace and SetPreferredDefaults.
func (r *Registry) OnDeviceChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *Registry) publish(s *snapshot) {
	r.current.Store(s)
	log.Debug().Int("audio", len(s.audio)).Int("video", len(s.video)).Msg("[Registry] devices updated")

	r.mu.Lock()
	listeners := append([]func(){}, r.listeners...)
	r.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// AudioDevices returns the current audio inputs in enumeration order. The
// slice is shared and must not be modified.
func (r *Registry) AudioDevices() []definitions.MediaDevice {
	return r.current.Load().audio
}

func (r *Registry) VideoDevices() []definitions.MediaDevice {
	return r.current.Load().video
}

func (r *Registry) FindAudioDevice(id string) (definitions.MediaDevice, bool) {
	return findByID(r.current.Load().audio, id)
}

func (r *Registry) FindVideoDevice(id string) (definitions.MediaDevice, bool) {
	return findByID(r.current.Load().video, id)
}

func (r *Registry) DefaultDevices(needAudio, needVideo bool) []definitions.MediaDevice {
	s := r.current.Load()
	var devices []definitions.MediaDevice
	if needAudio {
		if device, ok := defaultOf(s.audio, s.defaultAudio); ok {
			devices = append(devices, device)
		}
	}
	if needVideo {
		if device, ok := defaultOf(s.video, s.defaultVideo); ok {
			devices = append(devices, device)
		}
	}
	return devices
}

func findByID(devices []definitions.MediaDevice, id string) (definitions.MediaDevice, bool) {
	if id == "" {
		return definitions.MediaDevice{}, false
	}
	return lo.Find(devices, func(d definitions.MediaDevice) bool {
		return d.ID == id
	})
}

func defaultOf(devices []definitions.MediaDevice, preferred string) (definitions.MediaDevice, bool) {
	if device, ok := findByID(devices, preferred); ok {
		return device, true
	}
	return lo.First(devices)
}

func retype(devices []definitions.MediaDevice, typ definitions.StreamType) []definitions.MediaDevice {
	return lo.Map(devices, func(d definitions.MediaDevice, _ int) definitions.MediaDevice {
		d.Type = typ
		return d
	})
}
