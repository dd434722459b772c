package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/Shadow-Cast/internal/shadow"
)

func defaultConfig() reportConfig {
	return reportConfig{
		block:  shadow.DefaultBlockSize,
		origin: shadow.Vec{X: 100, Y: 100},
		radius: shadow.DefaultRadius,
	}
}

func TestLoadLayout_BuiltInArena(t *testing.T) {
	g, err := loadLayout("")
	if err != nil {
		t.Fatal(err)
	}
	if g.Cols != 40 || g.Rows != 30 {
		t.Fatalf("arena is %dx%d, want 40x30", g.Cols, g.Rows)
	}
	if !g.At(1, 1).Boundary || g.At(8, 6).Boundary || !g.Occupied(8, 6) {
		t.Fatal("border and pillar cells not parsed as expected")
	}
}

func TestLoadLayout_FileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := loadLayout(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("missing file should fail")
	}
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("...\n..\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadLayout(bad); !errors.Is(err, shadow.ErrBadLayout) {
		t.Fatalf("ragged layout: err=%v, want ErrBadLayout", err)
	}
}

func TestRunReport_Arena(t *testing.T) {
	g, err := loadLayout("")
	if err != nil {
		t.Fatal(err)
	}
	rs, err := runReport(g, defaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	// Border outline 8, four 2x2 pillars 16, two walls 8.
	if rs.edges != 32 {
		t.Fatalf("edges=%d, want 32", rs.edges)
	}
	if rs.raysCast != rs.edges*6 || rs.raysHit != rs.raysCast {
		t.Fatalf("rays cast=%d hit=%d, want %d each", rs.raysCast, rs.raysHit, rs.edges*6)
	}
	if rs.vertices == 0 || rs.vertices > rs.raysHit {
		t.Fatalf("vertices=%d out of range", rs.vertices)
	}
	interior := 36.0 * 26.0 * 16 * 16
	if rs.area <= 0 || rs.area >= interior {
		t.Fatalf("visible area %.1f should be positive and below the interior %.1f", rs.area, interior)
	}

	var buf bytes.Buffer
	printReport(&buf, rs)
	out := buf.String()
	for _, want := range []string{"grid=40x30", "edges=32", "rays_cast=192", "visible_area="} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRunReport_VerboseLogsQuery(t *testing.T) {
	g, err := loadLayout("")
	if err != nil {
		t.Fatal(err)
	}
	cfg := defaultConfig()
	cfg.verbose = true
	rs, err := runReport(g, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(rs.events.Filter("rebuild", "edges")); n != 1 {
		t.Fatalf("rebuild entries=%d, want 1", n)
	}
	if n := len(rs.events.Filter("query", "visibility")); n != 1 {
		t.Fatalf("query entries=%d, want 1", n)
	}
}

func TestRunReport_BadRadius(t *testing.T) {
	g, err := loadLayout("")
	if err != nil {
		t.Fatal(err)
	}
	cfg := defaultConfig()
	cfg.radius = 0
	if _, err := runReport(g, cfg); !errors.Is(err, shadow.ErrBadRadius) {
		t.Fatalf("err=%v, want ErrBadRadius", err)
	}
}

func TestSweep_EnclosedRoomUniformArea(t *testing.T) {
	g, err := shadow.ParseLayout(`
######
#BBBB#
#B..B#
#B..B#
#BBBB#
######
`)
	if err != nil {
		t.Fatal(err)
	}
	rs, err := runReport(g, reportConfig{block: 16, origin: shadow.Vec{X: 48, Y: 48}, radius: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if rs.edges != 4 {
		t.Fatalf("enclosed room should only have its inner outline, got %d edges", rs.edges)
	}
	ss, err := sweep(rs.world, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if ss.samples != 4 {
		t.Fatalf("samples=%d, want the 4 interior cells", ss.samples)
	}
	if ss.minArea < 1023 || ss.maxArea > 1025 {
		t.Fatalf("every interior viewpoint sees the 32x32 room, area %.1f..%.1f", ss.minArea, ss.maxArea)
	}
	if ss.meanVertices < 4 {
		t.Fatalf("mean vertices %.1f, want at least the 4 corners", ss.meanVertices)
	}
}

func TestWriteGeoJSON(t *testing.T) {
	g, err := loadLayout("")
	if err != nil {
		t.Fatal(err)
	}
	rs, err := runReport(g, defaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "scene.geojson")
	if err := writeGeoJSON(path, rs); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Features) != rs.edges+2 {
		t.Fatalf("features=%d, want %d", len(doc.Features), rs.edges+2)
	}
}
