package material

import "testing"

func TestMaterial_Default(t *testing.T) {
	m := Default()

	if m.Ni != 1 {
		t.Errorf("Expected default refractive index 1, got %f", m.Ni)
	}
	if m.Transparent() {
		t.Error("Expected default material to be opaque")
	}
	if m.Reflective() {
		t.Error("Expected default material to be non-reflective")
	}
}

func TestMaterial_Reflective(t *testing.T) {
	tests := []struct {
		name     string
		illum    int
		expected bool
	}{
		{name: "local only", illum: 2, expected: false},
		{name: "mirror", illum: 3, expected: true},
		{name: "glass", illum: 7, expected: true},
		{name: "zero", illum: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Material{Illum: tt.illum}
			if got := m.Reflective(); got != tt.expected {
				t.Errorf("Expected reflective=%t for illum %d, got %t", tt.expected, tt.illum, got)
			}
		})
	}
}

func TestMaterial_Transparent(t *testing.T) {
	if (Material{Tr: 0}).Transparent() {
		t.Error("Expected Tr=0 to be opaque")
	}
	if !(Material{Tr: 0.5}).Transparent() {
		t.Error("Expected Tr=0.5 to be transparent")
	}
}
