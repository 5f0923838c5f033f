package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/puzzles/taquin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	start := taquin.MustNew([][]int{{1, 2, 3}, {4, 5, 6}, {0, 7, 8}})
	goal := taquin.MustNew([][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}})

	var expanded, relaxed int
	count := domain.SearchHooks{
		OnExpand: func(*domain.ExpandEvent) { expanded++ },
		OnRelax:  func(*domain.RelaxEvent) { relaxed++ },
	}

	res, err := arbor.Search(start, goal, taquin.Manhattan, arbor.WithHooks(domain.ChainHooks(m.Hooks(), count)))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues(OutcomeFound)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Searches.WithLabelValues(OutcomeNotFound)))
	assert.Equal(t, float64(res.Expanded()), testutil.ToFloat64(m.Expansions))
	assert.Equal(t, float64(expanded), testutil.ToFloat64(m.Expansions))
	assert.Equal(t, float64(relaxed), testutil.ToFloat64(m.Relaxations))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PathLength))

	n, err := testutil.GatherAndCount(reg, "arbor_searches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_NotFound(t *testing.T) {
	m := NewMetrics(nil)

	start := taquin.MustNew([][]int{{1, 2}, {3, 0}})
	goal := taquin.MustNew([][]int{{2, 1}, {3, 0}})

	_, err := arbor.Search(start, goal, taquin.Manhattan, arbor.WithHooks(m.Hooks()))
	require.ErrorIs(t, err, arbor.ErrNoPath)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues(OutcomeNotFound)))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.Expansions))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	start := taquin.MustNew([][]int{{1, 0}, {3, 2}})
	goal := taquin.MustNew([][]int{{1, 2}, {3, 0}})

	_, err := arbor.Search(start, goal, taquin.Manhattan, arbor.WithHooks(LogHooks(logger)))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "search_finish")
	assert.Contains(t, out, "found=true")
	assert.NotContains(t, out, "state_expand")
}
