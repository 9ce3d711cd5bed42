package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"panocam/internal/mathutil"
)

// jsonScene matches the scene file schema:
//
//	{"root": {"name": "...", "info": {...}, "triangles": [[[x,y,z],[x,y,z],[x,y,z]]],
//	          "boxes": [{"min": [x,y,z], "max": [x,y,z]}], "children": [...]}}
type jsonScene struct {
	Root *jsonNode `json:"root"`
}

type jsonNode struct {
	Name      string            `json:"name"`
	Info      map[string]string `json:"info,omitempty"`
	Triangles [][3][3]float64   `json:"triangles,omitempty"`
	Boxes     []jsonBox         `json:"boxes,omitempty"`
	Children  []*jsonNode       `json:"children,omitempty"`
}

type jsonBox struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Load reads a JSON scene file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	return s, nil
}

// Decode parses a JSON scene from r.
func Decode(r io.Reader) (*Scene, error) {
	var js jsonScene
	if err := json.NewDecoder(r).Decode(&js); err != nil {
		return nil, err
	}
	if js.Root == nil {
		return nil, ErrNoRoot
	}
	return New(buildNode(js.Root))
}

func buildNode(jn *jsonNode) *Node {
	n := NewNode(jn.Name)
	for k, v := range jn.Info {
		n.SetInfo(k, v)
	}
	for _, t := range jn.Triangles {
		n.AddTriangles(Triangle{
			mathutil.Vec3(t[0]),
			mathutil.Vec3(t[1]),
			mathutil.Vec3(t[2]),
		})
	}
	for _, b := range jn.Boxes {
		n.AddBox(mathutil.Vec3(b.Min), mathutil.Vec3(b.Max))
	}
	for _, c := range jn.Children {
		if c == nil {
			continue
		}
		n.AddChild(buildNode(c))
	}
	return n
}

// Encode writes s as a JSON scene. Boxes are written as their triangles.
func Encode(w io.Writer, s *Scene) error {
	enc := json.NewEncoder(w)
	return enc.Encode(jsonScene{Root: toJSON(s.Root())})
}

// Save writes s to a JSON scene file.
func Save(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scene: create %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, s); err != nil {
		return fmt.Errorf("scene: write %s: %w", path, err)
	}
	return f.Close()
}

func toJSON(n *Node) *jsonNode {
	jn := &jsonNode{Name: n.Name()}
	if len(n.info) > 0 {
		jn.Info = make(map[string]string, len(n.info))
		for k, v := range n.info {
			jn.Info[k] = v
		}
	}
	for _, t := range n.Triangles() {
		jn.Triangles = append(jn.Triangles, [3][3]float64{t[0], t[1], t[2]})
	}
	for _, c := range n.Children() {
		jn.Children = append(jn.Children, toJSON(c))
	}
	return jn
}
