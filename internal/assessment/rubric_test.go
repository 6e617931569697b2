package assessment

import (
	"strings"
	"testing"
)

func TestDefaultRubric_Shape(t *testing.T) {
	r := DefaultRubric()
	cats := r.Categories()
	if len(cats) != 5 {
		t.Fatalf("got %d categories, want 5", len(cats))
	}
	for i, c := range cats {
		if c.Key != AllCategories()[i] {
			t.Errorf("category %d = %q, want %q", i, c.Key, AllCategories()[i])
		}
		if len(c.Criteria) != 5 {
			t.Errorf("category %q: %d criteria, want 5", c.Key, len(c.Criteria))
		}
		if c.MaxPoints() != 20 {
			t.Errorf("category %q: max %d, want 20", c.Key, c.MaxPoints())
		}
	}
	if r.MaxPoints() != 100 {
		t.Errorf("MaxPoints = %d, want 100", r.MaxPoints())
	}
}

func TestRubric_Criterion(t *testing.T) {
	r := DefaultRubric()
	cr, err := r.Criterion(CategoryKnowledge, "trend_sideway")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cr.Points != 4 {
		t.Errorf("points = %d, want 4", cr.Points)
	}

	tests := []struct {
		category  CategoryKey
		criterion string
	}{
		{CategoryKnowledge, "nope"},
		{"astrology", "trend_sideway"},
		{CategoryRisk, "trend_sideway"},
	}
	for _, tt := range tests {
		if _, err := r.Criterion(tt.category, tt.criterion); err == nil {
			t.Errorf("Criterion(%q, %q): expected error", tt.category, tt.criterion)
		}
	}
}

func TestBandFor_TotalAndNonOverlapping(t *testing.T) {
	r := DefaultRubric()
	for score := 0; score <= 100; score++ {
		matches := 0
		for _, b := range r.Bands() {
			if b.Contains(score) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("score %d matches %d bands, want exactly 1", score, matches)
		}
	}
}

func TestBandFor_Boundaries(t *testing.T) {
	r := DefaultRubric()
	tests := []struct {
		score int
		want  BandKey
		label string
	}{
		{0, BandNew, "Mới (0–35)"},
		{35, BandNew, "Mới (0–35)"},
		{36, BandDeveloping, "Đang Phát Triển (36–65)"},
		{65, BandDeveloping, "Đang Phát Triển (36–65)"},
		{66, BandStable, "Ổn Định (66–85)"},
		{85, BandStable, "Ổn Định (66–85)"},
		{86, BandProfessional, "Chuyên Nghiệp (86–100)"},
		{100, BandProfessional, "Chuyên Nghiệp (86–100)"},
	}
	for _, tt := range tests {
		b := r.BandFor(tt.score)
		if b.Key != tt.want {
			t.Errorf("BandFor(%d) = %q, want %q", tt.score, b.Key, tt.want)
		}
		if b.Label() != tt.label {
			t.Errorf("BandFor(%d).Label() = %q, want %q", tt.score, b.Label(), tt.label)
		}
		if b.Guidance == "" {
			t.Errorf("BandFor(%d) has no guidance", tt.score)
		}
	}
}

func TestBandFor_ClampsOutOfRange(t *testing.T) {
	r := DefaultRubric()
	if got := r.BandFor(-5).Key; got != BandNew {
		t.Errorf("BandFor(-5) = %q, want %q", got, BandNew)
	}
	if got := r.BandFor(500).Key; got != BandProfessional {
		t.Errorf("BandFor(500) = %q, want %q", got, BandProfessional)
	}
}

func validCategories() []Category {
	var cats []Category
	for _, k := range AllCategories() {
		cats = append(cats, Category{
			Key:      k,
			Title:    string(k),
			Criteria: []Criterion{{Key: "a", Label: "A", Points: 2}, {Key: "b", Label: "B", Points: 2}},
		})
	}
	return cats
}

func TestNewRubric_Valid(t *testing.T) {
	r, err := NewRubric(validCategories(), []Band{
		{Key: "low", Name: "Low", Min: 0, Max: 9},
		{Key: "high", Name: "High", Min: 10, Max: 20},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.MaxPoints() != 20 {
		t.Errorf("MaxPoints = %d, want 20", r.MaxPoints())
	}
}

func TestNewRubric_Invalid(t *testing.T) {
	goodBands := []Band{{Key: "all", Name: "All", Min: 0, Max: 20}}

	tests := []struct {
		name    string
		mutate  func([]Category) []Category
		bands   []Band
		wantErr string
	}{
		{
			name:    "zero points",
			mutate:  func(c []Category) []Category { c[0].Criteria[0].Points = 0; c[0].Criteria[1].Points = 4; return c },
			bands:   goodBands,
			wantErr: "points must be > 0",
		},
		{
			name:    "duplicate criterion",
			mutate:  func(c []Category) []Category { c[1].Criteria[1].Key = "a"; return c },
			bands:   goodBands,
			wantErr: "duplicate criterion key",
		},
		{
			name:    "missing category",
			mutate:  func(c []Category) []Category { return c[:4] },
			bands:   []Band{{Key: "all", Name: "All", Min: 0, Max: 16}},
			wantErr: "is missing",
		},
		{
			name:    "unknown category",
			mutate:  func(c []Category) []Category { c[0].Key = "astrology"; return c },
			bands:   goodBands,
			wantErr: "unknown category key",
		},
		{
			name:    "overlapping bands",
			mutate:  func(c []Category) []Category { return c },
			bands:   []Band{{Key: "a", Min: 0, Max: 10}, {Key: "b", Min: 10, Max: 20}},
			wantErr: "must start at 11",
		},
		{
			name:    "gap in bands",
			mutate:  func(c []Category) []Category { return c },
			bands:   []Band{{Key: "a", Min: 0, Max: 8}, {Key: "b", Min: 10, Max: 20}},
			wantErr: "must start at 9",
		},
		{
			name:    "bands short of max",
			mutate:  func(c []Category) []Category { return c },
			bands:   []Band{{Key: "a", Min: 0, Max: 19}},
			wantErr: "must end at 20",
		},
		{
			name:    "no bands",
			mutate:  func(c []Category) []Category { return c },
			bands:   nil,
			wantErr: "no level bands",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRubric(tt.mutate(validCategories()), tt.bands)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}
