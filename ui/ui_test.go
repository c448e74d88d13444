package ui

import (
	"strings"
	"testing"

	"github.com/pthm-cable/life3d/automaton"
)

func TestHintColor(t *testing.T) {
	c := HintColor(automaton.ZoneHint(automaton.ZoneGrowth))
	if c.R != 0xFF || c.G != 0x88 || c.B != 0x88 {
		t.Errorf("growth colour = %02x%02x%02x, want ff8888", c.R, c.G, c.B)
	}
	if c.A != 191 {
		t.Errorf("alpha = %d, want 191 (0.75)", c.A)
	}

	d := HintColor(automaton.ZoneHint(automaton.ZoneDecaying))
	if d.A != 85 {
		t.Errorf("decaying alpha = %d, want 85 (1/3)", d.A)
	}
}

func TestHintColorClamps(t *testing.T) {
	c := HintColor(automaton.VisualHint{Color: automaton.Color{R: 2, G: -1, B: 0.5}, Opacity: 3})
	if c.R != 255 || c.G != 0 || c.B != 128 || c.A != 255 {
		t.Errorf("unexpected clamped colour %+v", c)
	}
}

func TestHexColor(t *testing.T) {
	c := HexColor(0x76BDFB)
	if c.R != 0x76 || c.G != 0xBD || c.B != 0xFB || c.A != 255 {
		t.Errorf("HexColor = %+v", c)
	}
}

func TestHUDStatusText(t *testing.T) {
	tests := []struct {
		running, stagnant bool
		want              string
	}{
		{false, false, "PAUSED"},
		{false, true, "PAUSED"},
		{true, false, "RUNNING"},
		{true, true, "RUNNING (stagnant)"},
	}
	for _, tt := range tests {
		d := HUDData{Running: tt.running, Stagnant: tt.stagnant}
		if got := d.StatusText(); got != tt.want {
			t.Errorf("StatusText(running=%v, stagnant=%v) = %q, want %q", tt.running, tt.stagnant, got, tt.want)
		}
	}
}

func TestHUDLines(t *testing.T) {
	hover := automaton.Coord{I: 1, J: 2, K: 3}
	d := HUDData{
		Generation: 12,
		Population: 25,
		Cells:      100,
		Rules:      automaton.DefaultRules(),
		Mode:       automaton.DensityBased,
		Hover:      &hover,
	}
	got := map[string]string{}
	for _, l := range d.Lines() {
		got[l[0]] = l[1]
	}
	if got["Generation"] != "12" || got["Rules"] != "5766" || got["Coloring"] != "density" {
		t.Errorf("unexpected lines %v", got)
	}
	if !strings.Contains(got["Population"], "25.0%") {
		t.Errorf("population = %q, want percentage", got["Population"])
	}
	if got["Cell"] != "1,2,3" {
		t.Errorf("cell = %q, want 1,2,3", got["Cell"])
	}
}

func TestControlPanelContains(t *testing.T) {
	p := NewControlPanel(1280, 240)
	b := p.Bounds()
	if b.X+b.Width > 1280 {
		t.Fatalf("panel overflows the screen: %+v", b)
	}
	if !p.Contains(b.X+1, b.Y+1) {
		t.Error("point inside the panel not contained")
	}
	if p.Contains(10, 10) {
		t.Error("top-left point reported on the panel")
	}
	p.Toggle()
	if p.Contains(b.X+1, b.Y+1) {
		t.Error("hidden panel should not capture the pointer")
	}
}
