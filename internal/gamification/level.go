package gamification

// PointsPerLevel is the width of every level band.
const PointsPerLevel = 100

// Level is floor(points/100)+1. Negative totals are treated as zero.
func Level(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

type LevelProgress struct {
	Level         int `json:"level"`
	PointsInLevel int `json:"points_in_level"`
	NextLevelAt   int `json:"next_level_at"`
	Percent       int `json:"percent"`
}

func Progress(points int) LevelProgress {
	if points < 0 {
		points = 0
	}
	lvl := Level(points)
	in := points % PointsPerLevel
	return LevelProgress{
		Level:         lvl,
		PointsInLevel: in,
		NextLevelAt:   lvl * PointsPerLevel,
		Percent:       in * 100 / PointsPerLevel,
	}
}
