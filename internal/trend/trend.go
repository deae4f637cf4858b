// Package trend derives progress analytics from a body-mass time series:
// a least-squares trend slope, its classification against a maintenance
// threshold, and a scatter+trend plot.
package trend

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Point is one (date, mass) observation, dates ascending in a series.
type Point struct {
	Date time.Time
	Mass float64
}

type Classification int

const (
	Unknown Classification = iota
	Maintaining
	Surplus
	Deficit
)

func (c Classification) String() string {
	switch c {
	case Maintaining:
		return "maintaining"
	case Surplus:
		return "surplus"
	case Deficit:
		return "deficit"
	default:
		return "unknown"
	}
}

// Result is derived on every request and never stored.
type Result struct {
	// HasTrend is false when the series has fewer than two points; the
	// remaining fields are meaningless in that case except MeanMass.
	HasTrend   bool
	WeeklyRate float64 // kg per week, rounded to 2 decimals
	MeanMass   float64
	Class      Classification

	// slope/intercept of the fit over day ordinals, kept for plotting.
	alpha, beta float64
}

// LastDays keeps only points within the trailing window of the given length.
func LastDays(points []Point, now time.Time, days int) []Point {
	cutoff := now.AddDate(0, 0, -days)
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Date.Before(cutoff) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Analyze fits mass = beta*day + alpha over the series and classifies the
// weekly rate. Classification is maintaining iff |weekly| is strictly below
// mean mass times thresholdRatio.
func Analyze(points []Point, thresholdRatio float64) Result {
	if len(points) == 0 {
		return Result{}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = dayOrdinal(p.Date)
		ys[i] = p.Mass
	}
	mean := stat.Mean(ys, nil)

	if len(points) < 2 {
		return Result{MeanMass: mean}
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	weekly := math.Round(beta*7*100) / 100

	res := Result{
		HasTrend:   true,
		WeeklyRate: weekly,
		MeanMass:   mean,
		alpha:      alpha,
		beta:       beta,
	}
	switch {
	case math.Abs(weekly) < mean*thresholdRatio:
		res.Class = Maintaining
	case weekly > 0:
		res.Class = Surplus
	default:
		res.Class = Deficit
	}
	return res
}

// dayOrdinal maps a date to a fractional day count since the Unix epoch.
func dayOrdinal(t time.Time) float64 {
	return float64(t.Unix()) / 86400
}
