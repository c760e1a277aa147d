package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewBoundsFromPoints(t *testing.T) {
	bounds := NewBoundsFromPoints(
		core.NewVec3(1, -2, 3),
		core.NewVec3(-1, 4, 0),
		core.NewVec3(2, 1, -5),
	)

	expectedMin := core.NewVec3(-1, -2, -5)
	expectedMax := core.NewVec3(2, 4, 3)

	const tolerance = 1e-9
	if bounds.Min.Subtract(expectedMin).Length() > tolerance {
		t.Errorf("Expected min %v, got %v", expectedMin, bounds.Min)
	}
	if bounds.Max.Subtract(expectedMax).Length() > tolerance {
		t.Errorf("Expected max %v, got %v", expectedMax, bounds.Max)
	}
}

func TestBounds_Union(t *testing.T) {
	a := NewBoundsFromPoints(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	b := NewBoundsFromPoints(core.NewVec3(-1, 2, 0), core.NewVec3(0.5, 3, -2))

	union := a.Union(b)

	expectedMin := core.NewVec3(-1, 0, -2)
	expectedMax := core.NewVec3(1, 3, 1)

	const tolerance = 1e-9
	if union.Min.Subtract(expectedMin).Length() > tolerance {
		t.Errorf("Expected min %v, got %v", expectedMin, union.Min)
	}
	if union.Max.Subtract(expectedMax).Length() > tolerance {
		t.Errorf("Expected max %v, got %v", expectedMax, union.Max)
	}
}

func TestBounds_CenterAndSize(t *testing.T) {
	bounds := NewBoundsFromPoints(core.NewVec3(-1, -2, -3), core.NewVec3(3, 2, 5))

	const tolerance = 1e-9
	if bounds.Center().Subtract(core.NewVec3(1, 0, 1)).Length() > tolerance {
		t.Errorf("Expected center (1,0,1), got %v", bounds.Center())
	}
	if bounds.Size().Subtract(core.NewVec3(4, 4, 8)).Length() > tolerance {
		t.Errorf("Expected size (4,4,8), got %v", bounds.Size())
	}
}
