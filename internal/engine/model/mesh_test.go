package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/t0yman/opengl-model-viewer/pkg/formats"
)

// quadDoc builds a two-triangle document with a shared edge.
func quadDoc() *formats.OBJ {
	return &formats.OBJ{
		Positions: []mgl32.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{1, 1, 0},
		},
		Normals: []mgl32.Vec3{
			{0, 0, 1},
		},
		Faces: []formats.Face{
			{Corners: [3]formats.Corner{{Position: 0}, {Position: 1}, {Position: 2}}},
			{Corners: [3]formats.Corner{{Position: 1}, {Position: 3}, {Position: 2}}},
		},
	}
}

func TestBuildMesh_Denormalizes(t *testing.T) {
	mesh := BuildMesh(quadDoc())

	if len(mesh.Vertices) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(mesh.Vertices))
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", mesh.TriangleCount())
	}

	wantPositions := []mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	for i, want := range wantPositions {
		if mesh.Vertices[i].Position != want {
			t.Errorf("vertex %d: expected position %v, got %v", i, want, mesh.Vertices[i].Position)
		}
		if mesh.Vertices[i].Normal != (mgl32.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d: expected normal (0,0,1), got %v", i, mesh.Vertices[i].Normal)
		}
	}
}

func TestBuildMesh_SharedCornersDuplicated(t *testing.T) {
	mesh := BuildMesh(quadDoc())

	// Position 1 is referenced by both faces and must appear twice.
	count := 0
	for _, v := range mesh.Vertices {
		if v.Position == (mgl32.Vec3{1, 0, 0}) {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected shared corner to appear 2 times, got %d", count)
	}
}

func TestBuildMesh_Bounds(t *testing.T) {
	doc := &formats.OBJ{
		Positions: []mgl32.Vec3{
			{-2, 0, 1},
			{3, -1, 0},
			{0, 4, -5},
		},
		Normals: []mgl32.Vec3{{0, 1, 0}},
		Faces: []formats.Face{
			{Corners: [3]formats.Corner{{Position: 0}, {Position: 1}, {Position: 2}}},
		},
	}

	mesh := BuildMesh(doc)

	wantMin := mgl32.Vec3{-2, -1, -5}
	wantMax := mgl32.Vec3{3, 4, 1}
	if mesh.Bounds.Min != wantMin {
		t.Errorf("expected bounds min %v, got %v", wantMin, mesh.Bounds.Min)
	}
	if mesh.Bounds.Max != wantMax {
		t.Errorf("expected bounds max %v, got %v", wantMax, mesh.Bounds.Max)
	}
}

func TestBuildMesh_UnreferencedPositionsIgnored(t *testing.T) {
	doc := quadDoc()
	// An outlier that no face references must not affect bounds.
	doc.Positions = append(doc.Positions, mgl32.Vec3{100, 100, 100})

	mesh := BuildMesh(doc)
	if mesh.Bounds.Max != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("expected bounds max (1,1,0), got %v", mesh.Bounds.Max)
	}
}

func TestBuildMesh_Empty(t *testing.T) {
	mesh := BuildMesh(&formats.OBJ{})

	if len(mesh.Vertices) != 0 {
		t.Errorf("expected no vertices, got %d", len(mesh.Vertices))
	}
	if mesh.TriangleCount() != 0 {
		t.Errorf("expected 0 triangles, got %d", mesh.TriangleCount())
	}
	if mesh.Bounds != (Bounds{}) {
		t.Errorf("expected zero bounds, got %+v", mesh.Bounds)
	}
}

func TestBounds_CenterAndSize(t *testing.T) {
	b := Bounds{
		Min: mgl32.Vec3{-1, 0, 2},
		Max: mgl32.Vec3{3, 2, 4},
	}

	if b.Center() != (mgl32.Vec3{1, 1, 3}) {
		t.Errorf("expected center (1,1,3), got %v", b.Center())
	}
	if b.Size() != (mgl32.Vec3{4, 2, 2}) {
		t.Errorf("expected size (4,2,2), got %v", b.Size())
	}
}

func TestLoadFile(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`
	path := filepath.Join(t.TempDir(), "triangle.obj")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	mesh, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", mesh.TriangleCount())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.obj"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, formats.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}
