package main

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spance/capture-arbiter/arbiter"
	"github.com/spance/capture-arbiter/arbiter/catalog"
	"github.com/spance/capture-arbiter/arbiter/consent"
	"github.com/spance/capture-arbiter/arbiter/frames"
	"github.com/spance/capture-arbiter/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interactiveDeps(t *testing.T, lines *utils.LineReader) (*catalog.Registry, arbiter.Dependencies) {
	t.Helper()
	registry := catalog.NewRegistry()
	require.NoError(t, catalog.LoadDemo(registry))
	return registry, arbiter.Dependencies{
		Catalog: registry,
		Frames:  frames.AnyFrame{},
		Consent: consent.NewPrompt(lines, io.Discard, "en"),
	}
}

func TestInteractiveStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	lines := utils.NewLineReader(pr)
	registry, deps := interactiveDeps(t, lines)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- interactive(ctx, lines, registry, deps, "en") }()

	// Leave a consent prompt waiting for an answer, then interrupt.
	_, err := io.WriteString(pw, "audio=mic\n")
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("interactive loop kept running after cancel")
	}
}

func TestInteractiveQuits(t *testing.T) {
	lines := utils.NewLineReader(strings.NewReader("devices\n\naudio=bogus\naudio=mic\ny\nquit\nnever read\n"))
	registry, deps := interactiveDeps(t, lines)

	require.NoError(t, interactive(context.Background(), lines, registry, deps, "en"))

	line, err := lines.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "never read\n", line)
}
