package output

import (
	"encoding/json"
	"fmt"
	"os"

	"panocam/internal/placement"
)

// ManifestEntry summarises one room of a run.
type ManifestEntry struct {
	Room       string `json:"room"`
	Skipped    bool   `json:"skipped,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Panoramas  int    `json:"panoramas"`
	Rejected   int    `json:"rejected"`
	Iterations int    `json:"iterations"`
	// FreeRegions is the number of disconnected placeable floor areas.
	FreeRegions int `json:"free_regions"`
	// FirstCamera is the line of the room's first camera in the camera
	// files, or -1 when the room has none.
	FirstCamera int `json:"first_camera"`
	Cameras     int `json:"cameras"`
}

// Manifest converts room results into manifest entries. Camera lines are
// numbered in the order PlaceScene emits them.
func Manifest(results []placement.RoomResult) []ManifestEntry {
	entries := make([]ManifestEntry, len(results))
	line := 0
	for i, r := range results {
		first := -1
		if len(r.Cameras) > 0 {
			first = line
		}
		entries[i] = ManifestEntry{
			Room:        r.Room,
			Skipped:     r.Skipped,
			Reason:      r.Reason,
			Panoramas:   r.Panoramas,
			Rejected:    r.Rejected,
			Iterations:  r.Iterations,
			FreeRegions: r.FreeRegions,
			FirstCamera: first,
			Cameras:     len(r.Cameras),
		}
		line += len(r.Cameras)
	}
	return entries
}

// WriteManifest writes the manifest JSON to path.
func WriteManifest(path string, results []placement.RoomResult) error {
	data, err := json.MarshalIndent(Manifest(results), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}
