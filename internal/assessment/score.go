package assessment

// CategoryScore is one category's line on the scoreboard.
type CategoryScore struct {
	Key   CategoryKey
	Title string
	Score int
	Max   int
}

// Scoreboard is derived from answers and the rubric; it is never stored.
type Scoreboard struct {
	PerCategory map[CategoryKey]int
	Categories  []CategoryScore // display order
	Total       int
	Max         int
	Band        Band
	Guidance    string
}

// CategoryPoints sums the points of the criteria answered true in one category.
func CategoryPoints(r *Rubric, a Answers, key CategoryKey) int {
	c, ok := r.Category(key)
	if !ok {
		return 0
	}
	score := 0
	for _, cr := range c.Criteria {
		if a.Get(key, cr.Key) {
			score += cr.Points
		}
	}
	return score
}

// Score computes the scoreboard for answers. It has no side effects.
func Score(r *Rubric, a Answers) Scoreboard {
	sb := Scoreboard{
		PerCategory: make(map[CategoryKey]int),
		Max:         r.MaxPoints(),
	}
	for _, c := range r.Categories() {
		pts := CategoryPoints(r, a, c.Key)
		sb.PerCategory[c.Key] = pts
		sb.Categories = append(sb.Categories, CategoryScore{
			Key:   c.Key,
			Title: c.Title,
			Score: pts,
			Max:   c.MaxPoints(),
		})
		sb.Total += pts
	}
	sb.Band = r.BandFor(sb.Total)
	sb.Guidance = sb.Band.Guidance
	return sb
}
