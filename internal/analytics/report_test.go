package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linklytics/internal/models"
)

func postsFixture() *models.PostsTable {
	return &models.PostsTable{Rows: []models.Post{
		{
			Title:          "Launching #DOTC cohort",
			CreatedDate:    models.Time(day(2024, time.June, 3)),
			Impressions:    models.Int64(1200),
			Clicks:         models.Int64(48),
			Likes:          models.Int64(30),
			CTR:            models.Float64(4.0),
			EngagementRate: models.Float64(6.5),
		},
		{
			Title:          "Weekly #OSIG roundup",
			CreatedDate:    models.Time(day(2024, time.June, 10)),
			Impressions:    models.Int64(800),
			Clicks:         models.Int64(16),
			Likes:          models.Int64(12),
			CTR:            models.Float64(2.0),
			EngagementRate: models.Float64(3.5),
		},
	}}
}

func TestBuildReportFullPipeline(t *testing.T) {
	posts := postsFixture()
	metrics := metricsFixture()
	now := day(2024, time.July, 1)

	rep := BuildReport(posts, metrics, models.FilterState{}, now)

	require.NotNil(t, rep.Interval)
	assert.Equal(t, day(2024, time.June, 3), rep.Interval.Start)
	assert.Equal(t, day(2024, time.June, 10), rep.Interval.End)

	assert.Equal(t, []string{"#DOTC", "#OSIG"}, rep.AllTags)
	assert.Equal(t, 2, rep.TotalPosts)
	assert.Equal(t, 2, rep.FilteredCount)
	assert.InDelta(t, 5.0, rep.Benchmarks.AvgEngagementRate, 1e-9)
	require.Len(t, rep.Flagged, 2)
	assert.Equal(t, FlagAbove, rep.Flagged[0].EngagementRateFlag)
	assert.Equal(t, FlagBelow, rep.Flagged[1].EngagementRateFlag)

	// No explicit metric selection: the first three ordered metrics.
	assert.Equal(t, []string{"Impressions (total)", "Clicks (total)", "Page views"}, rep.SelectedMetrics)
	assert.Len(t, rep.Trends, 6)
}

func TestBuildReportAppliesFilterState(t *testing.T) {
	posts := postsFixture()
	metrics := metricsFixture()
	now := day(2024, time.July, 1)

	fs := models.FilterState{
		Start: models.Time(day(2024, time.June, 5)),
		Tags:  []string{"#OSIG"},
	}
	rep := BuildReport(posts, metrics, fs, now)

	assert.Equal(t, day(2024, time.June, 5), rep.Interval.Start)
	require.Equal(t, 1, rep.FilteredCount)
	assert.Equal(t, "Weekly #OSIG roundup", rep.Filtered[0].Title)

	// The post interval also clips trend dates; the fixture's metric days
	// (June 1 and 2) fall outside June 5 through 10.
	assert.Empty(t, rep.Trends)
}

func TestBuildReportEmptyMetricSelection(t *testing.T) {
	rep := BuildReport(nil, metricsFixture(), models.FilterState{Metrics: []string{}}, time.Now())
	assert.Empty(t, rep.SelectedMetrics)
	assert.Empty(t, rep.Trends)

	// Stale names from an older upload fall away, order kept otherwise.
	rep = BuildReport(nil, metricsFixture(), models.FilterState{Metrics: []string{"Page views", "Gone (total)"}}, time.Now())
	assert.Equal(t, []string{"Page views"}, rep.SelectedMetrics)
}

func TestBuildReportWithoutTables(t *testing.T) {
	rep := BuildReport(nil, nil, models.FilterState{}, time.Now())
	assert.Nil(t, rep.Interval)
	assert.Zero(t, rep.TotalPosts)
	assert.Empty(t, rep.Trends)
}
