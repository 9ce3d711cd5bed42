package scene

import (
	"strings"

	"panocam/internal/mathutil"
)

// Triangle holds three world-space vertex positions.
type Triangle [3]mathutil.Vec3

// BBox returns the triangle's bounding box.
func (t Triangle) BBox() mathutil.Box3 {
	return mathutil.EmptyBox().UnionPoint(t[0]).UnionPoint(t[1]).UnionPoint(t[2])
}

// Node is one element of the scene hierarchy. Nodes are assembled with
// NewNode/AddChild and frozen by New; after that they are read-only.
type Node struct {
	name      string
	info      map[string]string
	triangles []Triangle

	parent   *Node
	children []*Node
	index    int
	bbox     mathutil.Box3
}

// NewNode allocates a detached node.
func NewNode(name string) *Node {
	return &Node{name: name, index: -1, bbox: mathutil.EmptyBox()}
}

// AddChild appends c under n and returns c.
func (n *Node) AddChild(c *Node) *Node {
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// AddTriangles appends renderable triangles to the node.
func (n *Node) AddTriangles(tris ...Triangle) *Node {
	n.triangles = append(n.triangles, tris...)
	return n
}

// AddBox appends the 12 triangles of an axis-aligned box.
func (n *Node) AddBox(min, max mathutil.Vec3) *Node {
	return n.AddTriangles(BoxTriangles(min, max)...)
}

// SetInfo stores a metadata value on the node.
func (n *Node) SetInfo(key, value string) *Node {
	if n.info == nil {
		n.info = make(map[string]string)
	}
	n.info[key] = value
	return n
}

func (n *Node) Name() string { return n.name }
func (n *Node) Parent() *Node { return n.parent }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) Triangles() []Triangle { return n.triangles }
func (n *Node) BBox() mathutil.Box3 { return n.bbox }
func (n *Node) HasPrefix(p string) bool { return strings.HasPrefix(n.name, p) }

// Index is the node's position in Scene.Nodes, or -1 before the scene is built.
func (n *Node) Index() int { return n.index }

// Info returns the node's own metadata value for key.
func (n *Node) Info(key string) (string, bool) {
	v, ok := n.info[key]
	return v, ok
}

// InheritedInfo returns the value of key on n or its nearest ancestor
// that defines it.
func (n *Node) InheritedInfo(key string) (string, bool) {
	for a := n; a != nil; a = a.parent {
		if v, ok := a.info[key]; ok {
			return v, true
		}
	}
	return "", false
}

// IsDescendantOf reports whether anc is n or one of n's ancestors.
func (n *Node) IsDescendantOf(anc *Node) bool {
	for a := n; a != nil; a = a.parent {
		if a == anc {
			return true
		}
	}
	return false
}

// Walk visits n and its subtree in pre-order. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// BoxTriangles returns the 12 outward-facing triangles of a box.
func BoxTriangles(min, max mathutil.Vec3) []Triangle {
	c := func(i, j, k int) mathutil.Vec3 {
		v := min
		if i == 1 {
			v[0] = max[0]
		}
		if j == 1 {
			v[1] = max[1]
		}
		if k == 1 {
			v[2] = max[2]
		}
		return v
	}
	quad := func(a, b, cc, d mathutil.Vec3) []Triangle {
		return []Triangle{{a, b, cc}, {a, cc, d}}
	}
	var tris []Triangle
	tris = append(tris, quad(c(0, 0, 0), c(0, 0, 1), c(0, 1, 1), c(0, 1, 0))...) // -X
	tris = append(tris, quad(c(1, 0, 0), c(1, 1, 0), c(1, 1, 1), c(1, 0, 1))...) // +X
	tris = append(tris, quad(c(0, 0, 0), c(1, 0, 0), c(1, 0, 1), c(0, 0, 1))...) // -Y
	tris = append(tris, quad(c(0, 1, 0), c(0, 1, 1), c(1, 1, 1), c(1, 1, 0))...) // +Y
	tris = append(tris, quad(c(0, 0, 0), c(0, 1, 0), c(1, 1, 0), c(1, 0, 0))...) // -Z
	tris = append(tris, quad(c(0, 0, 1), c(1, 0, 1), c(1, 1, 1), c(0, 1, 1))...) // +Z
	return tris
}
