package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gaste/heuristic-ccp/pkg/driver"
)

func sampleEvents() []driver.Event {
	return []driver.Event{
		{Seq: 1, Kind: driver.EventChoice, Lit: 9, Name: "vertex_color(a,1)"},
		{Seq: 2, Kind: driver.EventConflict, Lit: 9, Level: 1},
		{Seq: 3, Kind: driver.EventBacktrack, Lit: -9, Name: "vertex_color(a,1)", Level: 1},
		{Seq: 4, Kind: driver.EventFallback, Steps: 1000, Level: 1},
		{Seq: 5, Kind: driver.EventDefault, Lit: -12, Name: "vertex_bin(a,1)", Level: 1},
		{Seq: 6, Kind: driver.EventModel, Level: 2},
	}
}

func press(m traceModel, keys ...string) traceModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down", "up", "end", "home", "pgdown", "pgup":
			msg = tea.KeyMsg{Type: map[string]tea.KeyType{
				"down": tea.KeyDown, "up": tea.KeyUp, "end": tea.KeyEnd,
				"home": tea.KeyHome, "pgdown": tea.KeyPgDown, "pgup": tea.KeyPgUp,
			}[k]}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(traceModel)
	}
	return m
}

func TestTraceModelNavigation(t *testing.T) {
	m := newTraceModel("run", sampleEvents())
	m.height = 2

	tests := []struct {
		name   string
		keys   []string
		cursor int
		offset int
	}{
		{"down", []string{"down", "j"}, 2, 1},
		{"clamped at top", []string{"up", "k"}, 0, 0},
		{"end", []string{"end"}, 5, 4},
		{"end then home", []string{"G", "g"}, 0, 0},
		{"next conflict", []string{"n"}, 1, 0},
		{"next fallback", []string{"f"}, 3, 2},
		{"no further conflict", []string{"n", "n"}, 1, 0},
		{"page down", []string{"pgdown", "pgdown", "pgdown"}, 5, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := press(m, tt.keys...)
			if got.cursor != tt.cursor || got.offset != tt.offset {
				t.Errorf("cursor, offset = %d, %d, want %d, %d", got.cursor, got.offset, tt.cursor, tt.offset)
			}
		})
	}
}

func TestTraceModelQuit(t *testing.T) {
	_, cmd := newTraceModel("run", sampleEvents()).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q returned %T, want tea.QuitMsg", cmd())
	}
}

func TestTraceModelView(t *testing.T) {
	m := newTraceModel("run", sampleEvents())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	view := next.(traceModel).View()

	for _, want := range []string{"Trace run", "vertex_color(a,1)", "1000 steps", "[1/6]", "1 choice"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}

	if empty := newTraceModel("none", nil).View(); !strings.Contains(empty, "no events recorded") {
		t.Errorf("empty View() = %q", empty)
	}
}

func TestEventRow(t *testing.T) {
	row := eventRow(driver.Event{Seq: 4, Kind: driver.EventFallback, Steps: 1000, Level: 1})
	want := []string{"4", "fallback", "1", "", "1000 steps"}
	if strings.Join(row, "|") != strings.Join(want, "|") {
		t.Errorf("eventRow() = %v, want %v", row, want)
	}
}

func TestTracePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	if err := writeTrace(path, sampleEvents()); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "trace", path, "--plain")
	if err != nil {
		t.Fatalf("trace error: %v", err)
	}
	if !strings.HasPrefix(out, "#1 choice 9 vertex_color(a,1)\n#2 conflict 9\n") {
		t.Errorf("trace --plain output:\n%s", out)
	}

	out, err = execute(t, "trace", abcPath, "--plain")
	if err != nil {
		t.Fatalf("trace of a cnf error: %v", err)
	}
	if !strings.HasSuffix(out, "model\n") {
		t.Errorf("trace of a cnf should end with the model event:\n%s", out)
	}

	var buf bytes.Buffer
	printEvents(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("printEvents(nil) wrote %q", buf.String())
	}
}
