package frames

import (
	"sync"

	"github.com/spance/capture-arbiter/arbiter"
	"github.com/spance/capture-arbiter/arbiter/definitions"
)

// Table is an in-memory FrameResolver for embedders that track frame
// lifetimes themselves. The zero value is ready to use.
type Table struct {
	mu     sync.RWMutex
	frames map[definitions.FrameID]arbiter.Frame
}

func NewTable() *Table {
	return &Table{frames: make(map[definitions.FrameID]arbiter.Frame)}
}

func (t *Table) Register(id definitions.FrameID, origin string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.frames == nil {
		t.frames = make(map[definitions.FrameID]arbiter.Frame)
	}
	t.frames[id] = arbiter.Frame{ID: id, Origin: origin}
}

func (t *Table) Unregister(id definitions.FrameID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.frames, id)
}

func (t *Table) LookupFrame(processID, frameID int) (arbiter.Frame, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.frames[definitions.FrameID{ProcessID: processID, FrameID: frameID}]
	return f, ok
}

// AnyFrame treats every frame as alive. Useful for one-shot tools that have
// no renderer behind them.
type AnyFrame struct{}

func (AnyFrame) LookupFrame(processID, frameID int) (arbiter.Frame, bool) {
	return arbiter.Frame{ID: definitions.FrameID{ProcessID: processID, FrameID: frameID}}, true
}
