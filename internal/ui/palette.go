package ui

import "hash/fnv"

// taskPalette holds the colours assignable to work slices. Green and
// teal shades are reserved for breaks, and gray/slate for paused or
// other-group slices, so they are absent here.
var taskPalette = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#f59e0b", // amber
	"#06b6d4", // cyan
	"#0ea5e9", // sky
	"#3b82f6", // blue
	"#6366f1", // indigo
	"#8b5cf6", // violet
	"#d946ef", // fuchsia
	"#ec4899", // pink
	"#f43f5e", // rose
}

// TaskColor deterministically assigns a palette colour to a key.
// Callers derive the key from session identity and name so the colour
// is stable across renders.
func TaskColor(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return taskPalette[h.Sum32()%uint32(len(taskPalette))]
}
