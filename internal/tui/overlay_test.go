package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestOverlayRenderAddsOverlay(t *testing.T) {
	overlay := NewOverlayModel(lipgloss.Color("#0c0c0c"))

	width := 30
	height := 12
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	content := "DELETE TASK"
	got := overlay.Render(base, width, height, content)

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}

	boxW, boxH := overlay.boxSize(width, height)
	if boxW <= 0 || boxH <= 0 {
		t.Fatalf("expected non-zero box size")
	}
	top := (height - boxH) / 2
	bgSeq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(overlay.bgColor))).String()
	stripped := ansi.Strip(got)
	if !strings.Contains(stripped, content) {
		t.Fatalf("expected rendered content to include modal text")
	}

	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth != width {
			t.Fatalf("expected line width %d, got %d", width, lineWidth)
		}

		hasBg := strings.Contains(line, bgSeq)
		if i >= top && i < top+boxH {
			if !hasBg {
				t.Fatalf("expected overlay background on line %d", i)
			}
		} else if hasBg {
			t.Fatalf("expected no overlay background on line %d", i)
		}
	}
}

func TestOverlayRenderUsesBackgroundColor(t *testing.T) {
	overlay := NewOverlayModel("")
	overlay.SetBackground(lipgloss.Color("#123456"))

	width := 20
	height := 6
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := overlay.Render(base, width, height, "x")

	bgSeq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(overlay.bgColor))).String()
	if !strings.Contains(got, bgSeq) {
		t.Fatalf("expected overlay background sequence in output")
	}
}

func TestOverlayRenderAt(t *testing.T) {
	overlay := NewOverlayModel("")
	width, height := 12, 4
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row

	tests := []struct {
		name string
		x, y int
		want []string
	}{
		{
			name: "inside",
			x:    2, y: 1,
			want: []string{"............", "..ab........", "..cd........", "............"},
		},
		{
			name: "clipped left and bottom",
			x:    -1, y: 3,
			want: []string{"............", "............", "............", "b..........."},
		},
		{
			name: "clipped right",
			x:    11, y: 0,
			want: []string{"...........a", "...........c", "............", "............"},
		},
		{
			name: "off screen",
			x:    20, y: 0,
			want: []string{row, row, row, row},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(overlay.RenderAt(base, width, height, "ab\ncd", tt.x, tt.y))
			lines := strings.Split(got, "\n")
			if len(lines) != height {
				t.Fatalf("got %d lines, want %d", len(lines), height)
			}
			for i := range lines {
				if lines[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, lines[i], tt.want[i])
				}
			}
		})
	}
}
