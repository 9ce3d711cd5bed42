package scene

import (
	"errors"

	"panocam/internal/mathutil"
)

// ErrNoRoot is returned when a scene has no root node.
var ErrNoRoot = errors.New("scene has no root node")

// Scene is a frozen node hierarchy with a flat, stable node index.
type Scene struct {
	root  *Node
	nodes []*Node
}

// New freezes the hierarchy under root: nodes are indexed in pre-order
// (root = 0) and bounding boxes are computed bottom-up.
func New(root *Node) (*Scene, error) {
	if root == nil {
		return nil, ErrNoRoot
	}
	root.parent = nil
	s := &Scene{root: root}
	root.Walk(func(n *Node) bool {
		n.index = len(s.nodes)
		s.nodes = append(s.nodes, n)
		return true
	})
	computeBBox(root)
	return s, nil
}

func computeBBox(n *Node) mathutil.Box3 {
	b := mathutil.EmptyBox()
	for _, t := range n.triangles {
		b = b.Union(t.BBox())
	}
	for _, c := range n.children {
		b = b.Union(computeBBox(c))
	}
	n.bbox = b
	return b
}

func (s *Scene) Root() *Node { return s.root }
func (s *Scene) Nodes() []*Node { return s.nodes }
func (s *Scene) NNodes() int { return len(s.nodes) }
func (s *Scene) Node(i int) *Node { return s.nodes[i] }
func (s *Scene) BBox() mathutil.Box3 { return s.root.bbox }

// DiagonalRadius is half the scene bounding-box diagonal.
func (s *Scene) DiagonalRadius() float64 {
	return s.root.bbox.DiagonalRadius()
}

// NTriangles counts renderable triangles across all nodes.
func (s *Scene) NTriangles() int {
	n := 0
	for _, node := range s.nodes {
		n += len(node.triangles)
	}
	return n
}
