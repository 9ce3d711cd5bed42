// Package output writes accepted cameras in the plain-text formats consumed
// by downstream renderers, plus a JSON summary per room.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"panocam/internal/camera"
)

// WriteCameras writes one line per camera:
// eye(3)  towards(3)  up(3)  xfov yfov  score.
func WriteCameras(w io.Writer, cams []camera.Camera) error {
	for _, c := range cams {
		_, err := fmt.Fprintf(w, "%.6g %.6g %.6g  %.6g %.6g %.6g  %.6g %.6g %.6g  %.6g %.6g  %.6g\n",
			c.Origin[0], c.Origin[1], c.Origin[2],
			c.Towards[0], c.Towards[1], c.Towards[2],
			c.Up[0], c.Up[1], c.Up[2],
			c.XFOV, c.YFOV,
			c.Score)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteExtrinsics writes the rows of each camera's 3×4 camera-to-world
// matrix on one line.
func WriteExtrinsics(w io.Writer, cams []camera.Camera) error {
	for _, c := range cams {
		m := c.Extrinsics()
		_, err := fmt.Fprintf(w, "%.6g %.6g %.6g %.6g   %.6g %.6g %.6g %.6g  %.6g %.6g %.6g %.6g\n",
			m[0][0], m[0][1], m[0][2], m[0][3],
			m[1][0], m[1][1], m[1][2], m[1][3],
			m[2][0], m[2][1], m[2][2], m[2][3])
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteIntrinsics writes each camera's pinhole matrix for a width×height
// image as "fx 0 cx   0 fy cy  0 0 1".
func WriteIntrinsics(w io.Writer, cams []camera.Camera, width, height int) error {
	for _, c := range cams {
		k := c.Intrinsics(width, height)
		_, err := fmt.Fprintf(w, "%.6g 0 %.6g   0 %.6g %.6g  0 0 1\n", k[0][0], k[0][2], k[1][1], k[1][2])
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteNames writes one camera name per line, "-" for unnamed cameras.
func WriteNames(w io.Writer, cams []camera.Camera) error {
	for _, c := range cams {
		name := c.Name
		if name == "" {
			name = "-"
		}
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return f.Close()
}

func WriteCamerasFile(path string, cams []camera.Camera) error {
	return writeFile(path, func(w io.Writer) error { return WriteCameras(w, cams) })
}

func WriteExtrinsicsFile(path string, cams []camera.Camera) error {
	return writeFile(path, func(w io.Writer) error { return WriteExtrinsics(w, cams) })
}

func WriteIntrinsicsFile(path string, cams []camera.Camera, width, height int) error {
	return writeFile(path, func(w io.Writer) error { return WriteIntrinsics(w, cams, width, height) })
}

func WriteNamesFile(path string, cams []camera.Camera) error {
	return writeFile(path, func(w io.Writer) error { return WriteNames(w, cams) })
}
