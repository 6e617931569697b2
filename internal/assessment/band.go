package assessment

import "fmt"

// BandKey identifies a maturity level band.
type BandKey string

const (
	BandNew          BandKey = "new"
	BandDeveloping   BandKey = "developing"
	BandStable       BandKey = "stable"
	BandProfessional BandKey = "professional"
)

// Band is a named inclusive score range with its guidance text.
type Band struct {
	Key      BandKey
	Name     string
	Min      int
	Max      int
	Guidance string
}

// Contains reports whether score falls inside the band.
func (b Band) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// Label renders the band name with its range, e.g. "Mới (0–35)".
func (b Band) Label() string {
	return fmt.Sprintf("%s (%d–%d)", b.Name, b.Min, b.Max)
}
