package export

import (
	"strings"
	"testing"

	"github.com/mohammed-7/habitat-sim/internal/storage"
	"github.com/mohammed-7/habitat-sim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	out := CanvasToSVG(c, 10, viz.ThemeOcean)
	if got := strings.Count(out, "<circle"); got != 2 {
		t.Fatalf("want 2 dots, got %d", got)
	}
	if !strings.Contains(out, `cx="5.0" cy="5.0"`) {
		t.Errorf("first dot misplaced:\n%s", out)
	}
	if !strings.Contains(out, `cx="35.0" cy="35.0"`) {
		t.Errorf("last dot misplaced:\n%s", out)
	}
	if !strings.Contains(out, `width="40" height="40"`) {
		t.Errorf("unexpected size:\n%s", out)
	}

	if CanvasToSVG(nil, 10, viz.ThemeOcean) != "" {
		t.Error("nil canvas should render nothing")
	}
}

func TestTrajectoriesToSVG(t *testing.T) {
	samples := []storage.Sample{
		{Time: 0, ObjectID: 0, Position: [3]float32{0, 1, 0}},
		{Time: 0, ObjectID: 1, Position: [3]float32{1, 1, 1}},
		{Time: 1, ObjectID: 0, Position: [3]float32{2, 0, 2}},
		{Time: 1, ObjectID: 1, Position: [3]float32{1, 0, 1}},
		{Time: 0, ObjectID: 7, Position: [3]float32{5, 5, 5}},
	}
	out := TrajectoriesToSVG(samples, 100, 100)
	if got := strings.Count(out, "<path"); got != 2 {
		t.Fatalf("want 2 paths, got %d", got)
	}
	if strings.Contains(out, "object-7") {
		t.Error("single-sample object should be skipped")
	}
	if !strings.Contains(out, `d="M8.3,8.3 L91.7,91.7"`) {
		t.Errorf("object 0 path not scaled to the padded bounds:\n%s", out)
	}
}

func TestTrajectoriesToSVGEmpty(t *testing.T) {
	if TrajectoriesToSVG(nil, 100, 100) != "" {
		t.Error("empty samples should render nothing")
	}
	one := []storage.Sample{{ObjectID: 0}}
	if TrajectoriesToSVG(one, 100, 100) != "" {
		t.Error("a single sample should render nothing")
	}
}
