package scene

import (
	"fmt"

	"panocam/internal/mathutil"
)

// DefaultWallThickness is used by AddBoxRoom when wall <= 0.
const DefaultWallThickness = 0.1

// AddBoxRoom appends a rectangular room spanning [min, max] to parent: a
// floor quad at min.Y, a ceiling quad at max.Y and four walls of the given
// thickness just inside the boundary. It returns the room node.
func AddBoxRoom(parent *Node, name string, min, max mathutil.Vec3, wall float64) *Node {
	if wall <= 0 {
		wall = DefaultWallThickness
	}
	room := parent.AddChild(NewNode(name))

	room.AddChild(NewNode("Floor#" + name)).AddTriangles(quadY(min, max, min[1])...)
	room.AddChild(NewNode("Ceiling#" + name)).AddTriangles(quadY(min, max, max[1])...)

	walls := [4][2]mathutil.Vec3{
		{{min[0], min[1], min[2]}, {min[0] + wall, max[1], max[2]}},
		{{max[0] - wall, min[1], min[2]}, {max[0], max[1], max[2]}},
		{{min[0], min[1], min[2]}, {max[0], max[1], min[2] + wall}},
		{{min[0], min[1], max[2] - wall}, {max[0], max[1], max[2]}},
	}
	for i, w := range walls {
		room.AddChild(NewNode(fmt.Sprintf("Wall#%s_%d", name, i))).AddBox(w[0], w[1])
	}
	return room
}

// AddObject appends a box-shaped object node to parent.
func AddObject(parent *Node, name string, min, max mathutil.Vec3) *Node {
	return parent.AddChild(NewNode(name)).AddBox(min, max)
}

func quadY(min, max mathutil.Vec3, y float64) []Triangle {
	a := mathutil.Vec3{min[0], y, min[2]}
	b := mathutil.Vec3{max[0], y, min[2]}
	c := mathutil.Vec3{max[0], y, max[2]}
	d := mathutil.Vec3{min[0], y, max[2]}
	return []Triangle{{a, b, c}, {a, c, d}}
}
