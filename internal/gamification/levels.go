package gamification

import (
	"math"

	"github.com/julianstephens/ripple/internal/models"
)

// LevelThresholds holds the points needed to reach levels 1 through 11.
var LevelThresholds = []int{0, 100, 250, 500, 1000, 2000, 3500, 5500, 8000, 11000, 15000}

// PointsPerLevelBeyondTable is the step between levels past the last threshold.
const PointsPerLevelBeyondTable = 5000

// Threshold returns the total points at which level begins.
func Threshold(level int) int {
	if level <= 1 {
		return 0
	}
	if level <= len(LevelThresholds) {
		return LevelThresholds[level-1]
	}
	top := LevelThresholds[len(LevelThresholds)-1]
	return top + (level-len(LevelThresholds))*PointsPerLevelBeyondTable
}

// Level is the highest 1-indexed level whose threshold points reaches.
func Level(points int) int {
	top := LevelThresholds[len(LevelThresholds)-1]
	if points >= top {
		return len(LevelThresholds) + (points-top)/PointsPerLevelBeyondTable
	}
	for i := len(LevelThresholds) - 1; i >= 0; i-- {
		if points >= LevelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// ExperienceToNextLevel is how many points are still missing for the next level.
func ExperienceToNextLevel(points int) int {
	return Threshold(Level(points)+1) - points
}

// Progress places points within the current level.
func Progress(points int) models.LevelProgress {
	level := Level(points)
	floor := Threshold(level)
	span := Threshold(level+1) - floor
	current := points - floor
	return models.LevelProgress{
		Level:           level,
		CurrentXP:       current,
		XPToNext:        span,
		PercentComplete: math.Min(float64(current)/float64(span)*100, 100),
	}
}
