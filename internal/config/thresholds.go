package config

import "math"

// ScoreNeeded returns the score needed to win round (0-based).
// Past the end of the table the last ratio between entries keeps
// compounding.
func ScoreNeeded(table []float64, round int) float64 {
	round = max(round, 0)
	switch {
	case len(table) == 0:
		return 1000 * math.Pow(2, float64(round))
	case round < len(table):
		return table[round]
	}

	last := table[len(table)-1]
	ratio := 2.0
	if len(table) > 1 && table[len(table)-2] > 0 {
		ratio = last / table[len(table)-2]
	}
	extra := round - (len(table) - 1)
	return math.Round(last * math.Pow(ratio, float64(extra)))
}
