package components

import (
	"strings"
	"testing"
)

func TestProgressBarCells(t *testing.T) {
	tests := []struct {
		percent int
		width   int
		want    int
	}{
		{0, 20, 0},
		{50, 20, 10},
		{99, 20, 19},
		{100, 20, 20},
		{150, 20, 20},
		{-5, 20, 0},
	}
	for _, tt := range tests {
		got := ProgressBar{Percent: tt.percent}.Cells(tt.width)
		if got != tt.want {
			t.Errorf("Cells(%d%% of %d) = %d, want %d", tt.percent, tt.width, got, tt.want)
		}
	}
}

func TestProgressBarView(t *testing.T) {
	out := NewProgressBar("beginner", 46, true, 40).View()
	if !strings.Contains(out, "beginner") {
		t.Errorf("view missing label: %q", out)
	}
	if !strings.Contains(out, "46%") {
		t.Errorf("view missing percent: %q", out)
	}
	if !strings.Contains(out, "█") || !strings.Contains(out, "░") {
		t.Errorf("view missing bar cells: %q", out)
	}
}
