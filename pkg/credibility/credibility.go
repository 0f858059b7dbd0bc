// Package credibility derives a presentation-only trust score from the number
// of web sources that back an answer. It says nothing about factual accuracy.
package credibility

import "github.com/mikeboe/verifact/pkg/analysis"

// Level is the qualitative band a score falls into.
type Level string

const (
	LevelUnknown  Level = "unknown"
	LevelVeryLow  Level = "very-low"
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelVeryHigh Level = "very-high"
)

type display struct {
	label string
	color string
	bar   string
}

var displays = map[Level]display{
	LevelUnknown:  {"未知", "text-slate-400", "bg-slate-700"},
	LevelVeryLow:  {"极低", "text-red-400", "bg-red-500"},
	LevelLow:      {"低", "text-orange-400", "bg-orange-500"},
	LevelMedium:   {"中等", "text-blue-400", "bg-blue-500"},
	LevelVeryHigh: {"极高", "text-green-400", "bg-green-500"},
}

// Label returns the user-facing name of the level.
func (l Level) Label() string {
	return displays[l].label
}

// Metrics is the derived credibility of a result.
type Metrics struct {
	Score     int    `json:"score"`
	Level     Level  `json:"level"`
	Label     string `json:"label"`
	ColorHint string `json:"colorHint"`
	BarHint   string `json:"barHint"`
}

func metricsFor(score int, level Level) Metrics {
	d := displays[level]
	return Metrics{
		Score:     score,
		Level:     level,
		Label:     d.label,
		ColorHint: d.color,
		BarHint:   d.bar,
	}
}

// Unknown is reported when there is no result to score.
func Unknown() Metrics {
	return metricsFor(0, LevelUnknown)
}

// SourceScore maps a citation count to a score in [10, 95].
func SourceScore(sourceCount int) int {
	switch {
	case sourceCount <= 0:
		return 10
	case sourceCount <= 2:
		return 40 + sourceCount*10
	case sourceCount <= 5:
		return 70 + sourceCount*4
	default:
		return 95
	}
}

// LevelFor bands a score. Boundaries are inclusive at 40, 60 and 80.
func LevelFor(score int) Level {
	switch {
	case score >= 80:
		return LevelVeryHigh
	case score >= 60:
		return LevelMedium
	case score >= 40:
		return LevelLow
	default:
		return LevelVeryLow
	}
}

// Score computes the metrics for a citation count.
func Score(sourceCount int) Metrics {
	score := SourceScore(sourceCount)
	return metricsFor(score, LevelFor(score))
}

// ForResult scores a result, or returns Unknown when r is nil.
func ForResult(r *analysis.Result) Metrics {
	if r == nil {
		return Unknown()
	}
	return Score(len(r.Sources))
}
