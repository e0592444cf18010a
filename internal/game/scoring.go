package game

// ClearResult describes the most recent lock.
type ClearResult struct {
	Rows   []int
	Points int
}

func (c Config) lineClearScore(lines, level int) int {
	if lines <= 0 {
		return 0
	}
	if lines >= len(c.LineClearScores) {
		lines = len(c.LineClearScores) - 1
	}
	return c.LineClearScores[lines] * (level + 1)
}

// levelFor is a step function of cumulative lines. It never returns less
// than current, so level cannot go down.
func (c Config) levelFor(lines, current int) int {
	lvl := c.StartLevel + lines/c.LinesPerLevel
	if lvl < current {
		return current
	}
	return lvl
}
