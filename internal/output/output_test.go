package output

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panocam/internal/camera"
	"panocam/internal/mathutil"
	"panocam/internal/placement"
)

func testCameras() []camera.Camera {
	c := camera.LookDir(mathutil.Vec3{1, 1.5, 2}, mathutil.PosX, math.Atan(1), math.Atan(1.6), 0.01, 100)
	c.Name = camera.PanoramaName("Room#0_1", 0, 0)
	c.Score = 2.5
	unnamed := c
	unnamed.Name = ""
	unnamed.Score = 0
	return []camera.Camera{c, unnamed}
}

func fields(t *testing.T, line string) []float64 {
	t.Helper()
	var out []float64
	for _, f := range strings.Fields(line) {
		v, err := strconv.ParseFloat(f, 64)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestWriteCameras(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCameras(&buf, testCameras()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1 1.5 2  1 0 0  0 1 0  0.785398 1.0122  2.5", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "  0"))
}

func TestWriteExtrinsics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExtrinsics(&buf, testCameras()[:1]))

	v := fields(t, buf.String())
	require.Len(t, v, 12)
	// columns: right, up, backward, origin
	want := []float64{
		0, 0, -1, 1,
		0, 1, 0, 1.5,
		1, 0, 0, 2,
	}
	for i := range want {
		assert.InDelta(t, want[i], v[i], 1e-9, "entry %d", i)
	}
}

func TestWriteIntrinsics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIntrinsics(&buf, testCameras()[:1], 80, 128))
	assert.Equal(t, "40 0 40   0 40 64  0 0 1\n", buf.String())
}

func TestWriteNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNames(&buf, testCameras()))
	assert.Equal(t, "Room#0_1#0#0\n-\n", buf.String())
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	cams := testCameras()

	require.NoError(t, WriteCamerasFile(filepath.Join(dir, "cameras.txt"), cams))
	require.NoError(t, WriteExtrinsicsFile(filepath.Join(dir, "extrinsics.txt"), cams))
	require.NoError(t, WriteIntrinsicsFile(filepath.Join(dir, "intrinsics.txt"), cams, 80, 128))
	require.NoError(t, WriteNamesFile(filepath.Join(dir, "names.txt"), cams))

	for _, name := range []string{"cameras.txt", "extrinsics.txt", "intrinsics.txt", "names.txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(data), "\n"), name)
	}
}

func TestWriteFileUnopenable(t *testing.T) {
	err := WriteCamerasFile(filepath.Join(t.TempDir(), "missing", "cameras.txt"), testCameras())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output:")
}

func TestManifest(t *testing.T) {
	cams := testCameras()
	results := []placement.RoomResult{
		{Room: "Room#0_0", Skipped: true, Reason: placement.ReasonTooShort},
		{Room: "Room#0_1", Panoramas: 1, Rejected: 3, Iterations: 4, Cameras: cams},
		{Room: "Room#0_2", Panoramas: 1, Iterations: 1, Cameras: cams},
	}

	entries := Manifest(results)
	require.Len(t, entries, 3)
	assert.Equal(t, -1, entries[0].FirstCamera)
	assert.Equal(t, 0, entries[1].FirstCamera)
	assert.Equal(t, 2, entries[2].FirstCamera)
	assert.Equal(t, 2, entries[2].Cameras)

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, true, decoded[0]["skipped"])
	assert.Equal(t, placement.ReasonTooShort, decoded[0]["reason"])
	assert.NotContains(t, decoded[1], "skipped")
	assert.Equal(t, float64(3), decoded[1]["rejected"])
}
