package harvest

// Stats summarizes a session for the end screen.
type Stats struct {
	Caught       map[Kind]int
	TotalCaught  int
	BombsHit     int
	Missed       int // Fruit that fell off the field
	LongestCombo int
}

func newStats() Stats {
	return Stats{Caught: make(map[Kind]int)}
}

func (s *Stats) recordCatch(k Kind, combo int) {
	s.Caught[k]++
	s.TotalCaught++
	if combo > s.LongestCombo {
		s.LongestCombo = combo
	}
}

// Accuracy is the percentage of fruit caught out of fruit caught or missed.
// It is 0 before any fruit has been resolved.
func (s Stats) Accuracy() float64 {
	seen := s.TotalCaught + s.Missed
	if seen == 0 {
		return 0
	}
	return float64(s.TotalCaught) / float64(seen) * 100
}

func (s Stats) clone() Stats {
	c := s
	c.Caught = make(map[Kind]int, len(s.Caught))
	for k, v := range s.Caught {
		c.Caught[k] = v
	}
	return c
}
