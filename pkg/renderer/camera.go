package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraOptions configures the pinhole camera
type CameraOptions struct {
	LookFrom core.Vec3 // camera position in world space
	LookTo   core.Vec3 // point the camera faces
	FOV      float64   // vertical field of view in radians
	Width    int       // image width in pixels
	Height   int       // image height in pixels
}

// Camera generates world-space rays through pixel centers
type Camera struct {
	origin      core.Vec3
	right       core.Vec3
	up          core.Vec3
	forward     core.Vec3
	halfHeight  float64
	aspectRatio float64
	width       int
	height      int
}

// NewCamera creates a camera looking from LookFrom toward LookTo. The
// camera basis is built against the world up axis; when the view direction
// is parallel to it the right vector degenerates and falls back to the
// world x axis.
func NewCamera(options CameraOptions) *Camera {
	forward := options.LookFrom.Subtract(options.LookTo).Normalize()

	right := core.NewVec3(0, 1, 0).Cross(forward)
	if right.IsZero() {
		right = core.NewVec3(1, 0, 0)
	} else {
		right = right.Normalize()
	}
	up := forward.Cross(right)

	return &Camera{
		origin:      options.LookFrom,
		right:       right,
		up:          up,
		forward:     forward,
		halfHeight:  math.Tan(options.FOV / 2),
		aspectRatio: float64(options.Width) / float64(options.Height),
		width:       options.Width,
		height:      options.Height,
	}
}

// GetRay generates the world-space ray through the center of pixel
// (row, col), with row 0 at the top of the image
func (c *Camera) GetRay(row, col int) core.Ray {
	x := (2*(float64(col)+0.5)/float64(c.width) - 1) * c.halfHeight * c.aspectRatio
	y := (1 - 2*(float64(row)+0.5)/float64(c.height)) * c.halfHeight

	direction := c.right.Multiply(x).Add(c.up.Multiply(y)).Subtract(c.forward)
	return core.NewRay(c.origin, direction)
}
