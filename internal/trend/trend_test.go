package trend

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestAnalyzeTwoPointsOneWeekApart(t *testing.T) {
	points := []Point{
		{Date: day(0), Mass: 70},
		{Date: day(7), Mass: 71},
	}

	res := Analyze(points, 0.001)
	require.True(t, res.HasTrend)
	assert.InDelta(t, 1.0, res.WeeklyRate, 0.001)
	assert.InDelta(t, 70.5, res.MeanMass, 0.001)
	assert.Equal(t, Surplus, res.Class)
}

func TestAnalyzeDeficit(t *testing.T) {
	points := []Point{
		{Date: day(0), Mass: 80},
		{Date: day(7), Mass: 79},
		{Date: day(14), Mass: 78},
	}

	res := Analyze(points, 0.001)
	require.True(t, res.HasTrend)
	assert.InDelta(t, -1.0, res.WeeklyRate, 0.001)
	assert.Equal(t, Deficit, res.Class)
}

func TestAnalyzeTooFewPoints(t *testing.T) {
	assert.False(t, Analyze(nil, 0.001).HasTrend)

	res := Analyze([]Point{{Date: day(0), Mass: 70}}, 0.001)
	assert.False(t, res.HasTrend)
	assert.Equal(t, Unknown, res.Class)
	assert.InDelta(t, 70, res.MeanMass, 0.001)
}

// Classification is maintaining iff |weekly| is strictly below mean times
// the ratio, so a ratio just above the observed rate flips the class and a
// ratio just below does not.
func TestClassificationThresholdBothSides(t *testing.T) {
	points := []Point{
		{Date: day(0), Mass: 70},
		{Date: day(7), Mass: 70.07},
	}

	base := Analyze(points, 0.001)
	require.True(t, base.HasTrend)
	require.Positive(t, base.WeeklyRate)
	boundary := base.WeeklyRate / base.MeanMass

	assert.Equal(t, Maintaining, Analyze(points, boundary*1.01).Class,
		"rate below threshold must classify as maintaining")
	assert.Equal(t, Surplus, Analyze(points, boundary*0.99).Class,
		"rate above threshold must keep its sign classification")
}

func TestLastDays(t *testing.T) {
	now := day(20)
	points := []Point{
		{Date: day(0), Mass: 71},
		{Date: day(7), Mass: 70.5},
		{Date: day(14), Mass: 70},
		{Date: day(20), Mass: 69.5},
	}

	got := LastDays(points, now, 14)
	require.Len(t, got, 3)
	assert.Equal(t, day(7), got[0].Date)
}

func pngMagic(t *testing.T, b []byte) {
	t.Helper()
	require.Greater(t, len(b), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, b[:4])
}

func TestRenderPointsOnly(t *testing.T) {
	points := []Point{{Date: day(0), Mass: 70}}
	res := Analyze(points, 0.001)
	require.False(t, res.HasTrend)

	img, err := Render(points, res)
	require.NoError(t, err)
	pngMagic(t, img)
}

func TestRenderWithTrendLine(t *testing.T) {
	points := []Point{
		{Date: day(0), Mass: 70},
		{Date: day(3), Mass: 70.4},
		{Date: day(7), Mass: 71},
	}
	res := Analyze(points, 0.001)
	require.True(t, res.HasTrend)

	img, err := Render(points, res)
	require.NoError(t, err)
	pngMagic(t, img)
}

func TestRenderConcurrent(t *testing.T) {
	seriesA := []Point{{Date: day(0), Mass: 70}, {Date: day(7), Mass: 71}}
	seriesB := []Point{{Date: day(0), Mass: 90}, {Date: day(7), Mass: 89}, {Date: day(14), Mass: 88}}

	var wg sync.WaitGroup
	images := make([][]byte, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		images[0], errs[0] = Render(seriesA, Analyze(seriesA, 0.001))
	}()
	go func() {
		defer wg.Done()
		images[1], errs[1] = Render(seriesB, Analyze(seriesB, 0.001))
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	pngMagic(t, images[0])
	pngMagic(t, images[1])
	assert.NotEqual(t, images[0], images[1])
}
