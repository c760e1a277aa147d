package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Vertex is a triangle corner. HasNormal distinguishes a shading normal
// supplied by the scene from one that must be derived from the face.
type Vertex struct {
	Position  core.Vec3
	Normal    core.Vec3
	HasNormal bool
}

// NewVertex creates a vertex without a shading normal
func NewVertex(position core.Vec3) Vertex {
	return Vertex{Position: position}
}

// NewVertexWithNormal creates a vertex carrying a shading normal
func NewVertexWithNormal(position, normal core.Vec3) Vertex {
	return Vertex{Position: position, Normal: normal, HasNormal: true}
}

// Triangle represents a triangle shape
type Triangle struct {
	V0, V1, V2 Vertex
}

// NewTriangle creates a new triangle
func NewTriangle(v0, v1, v2 Vertex) Triangle {
	return Triangle{V0: v0, V1: v1, V2: v2}
}

// planeNormal returns the unnormalized plane normal from the edge cross
// product. Its length is twice the triangle area, so it vanishes for
// degenerate triangles.
func (t Triangle) planeNormal() core.Vec3 {
	edge1 := t.V1.Position.Subtract(t.V0.Position)
	edge2 := t.V2.Position.Subtract(t.V0.Position)
	return edge1.Cross(edge2)
}

// FaceNormal returns the unit geometric normal of the triangle plane
func (t Triangle) FaceNormal() core.Vec3 {
	return t.planeNormal().Normalize()
}

// Area returns the area of the triangle
func (t Triangle) Area() float64 {
	return t.planeNormal().Length() / 2
}

// HasShadingNormals reports whether every vertex carries a shading normal
func (t Triangle) HasShadingNormals() bool {
	return t.V0.HasNormal && t.V1.HasNormal && t.V2.HasNormal
}

// Intersect tests if a ray intersects the triangle and returns the hit
// distance. Near-parallel rays miss; because the plane normal scales with
// the triangle area, this also rejects degenerate triangles.
func (t Triangle) Intersect(ray core.Ray) (float64, bool) {
	normal := t.planeNormal()

	denominator := ray.Direction.Dot(normal)
	if math.Abs(denominator) < core.Epsilon {
		return 0, false
	}

	distance := (t.V0.Position.Dot(normal) - ray.Origin.Dot(normal)) / denominator
	if distance < core.Epsilon {
		return 0, false
	}

	point := ray.At(distance)
	if !insideEdge(t.V0.Position, t.V1.Position, point, normal) ||
		!insideEdge(t.V1.Position, t.V2.Position, point, normal) ||
		!insideEdge(t.V2.Position, t.V0.Position, point, normal) {
		return 0, false
	}

	return distance, true
}

// insideEdge reports whether point lies on the triangle's side of the edge
// running from a to b, with the shared tolerance so points on the edge
// itself count as inside.
func insideEdge(a, b, point, normal core.Vec3) bool {
	edge := b.Subtract(a)
	return edge.Cross(point.Subtract(a)).Dot(normal) >= -core.Epsilon
}

// InterpolateNormal returns the shading normal at a point on the triangle by
// weighting the vertex normals with barycentric coordinates derived from
// sub-triangle areas. A degenerate triangle falls back to the face normal.
func (t Triangle) InterpolateNormal(point core.Vec3) core.Vec3 {
	area := t.Area()
	if area == 0 {
		return t.FaceNormal()
	}

	w0 := pointArea(point, t.V1.Position, t.V2.Position) / area
	w1 := pointArea(point, t.V0.Position, t.V2.Position) / area
	w2 := pointArea(point, t.V1.Position, t.V0.Position) / area

	return t.V0.Normal.Multiply(w0).
		Add(t.V1.Normal.Multiply(w1)).
		Add(t.V2.Normal.Multiply(w2)).
		Normalize()
}

// pointArea returns the area of the triangle spanned by three points
func pointArea(a, b, c core.Vec3) float64 {
	return b.Subtract(a).Cross(c.Subtract(a)).Length() / 2
}

// Bounds returns the axis-aligned bounding box of the triangle
func (t Triangle) Bounds() Bounds {
	return NewBoundsFromPoints(t.V0.Position, t.V1.Position, t.V2.Position)
}
