// Package testdata provides recorded tracking service frames for tests.
package testdata

import (
	"embed"
	"fmt"
	"sort"

	"github.com/ayusman/mudra/internal/tracker"
)

//go:embed frames/*
var framesFS embed.FS

// LoadFrame loads a recorded anchor frame by name.
func LoadFrame(name string) (*tracker.Frame, error) {
	data, err := framesFS.ReadFile("frames/" + name)
	if err != nil {
		return nil, fmt.Errorf("load frame %s: %w", name, err)
	}

	frame, err := tracker.ParseFrame(data)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", name, err)
	}

	return frame, nil
}

// LoadSequence loads a directory of recorded frames in filename order, for
// replaying a gesture through the pipeline.
func LoadSequence(dir string) ([]*tracker.Frame, error) {
	entries, err := framesFS.ReadDir("frames/" + dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	frames := make([]*tracker.Frame, 0, len(names))
	for _, name := range names {
		frame, err := LoadFrame(dir + "/" + name)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	return frames, nil
}
