package observability

import (
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
)

// LogHooks returns search hooks that log every event at debug level, except
// the finish event which is logged at info.
func LogHooks(logger *slog.Logger) domain.SearchHooks {
	return domain.SearchHooks{
		OnStart: func(e *domain.SearchEvent) {
			logger.Debug("search_start", "start", e.StartKey, "goal", e.GoalKey, "step_cost", e.StepCost)
		},
		OnExpand: func(e *domain.ExpandEvent) {
			logger.Debug("state_expand", "key", e.Key, "rank", e.Rank, "g", e.G, "h", e.H, "frontier", e.FrontierSize)
		},
		OnRelax: func(e *domain.RelaxEvent) {
			logger.Debug("state_relax", "key", e.Key, "parent", e.ParentKey, "g", e.G, "improved", e.Improved, "requeued", e.Requeued)
		},
		OnFinish: func(e *domain.FinishEvent) {
			logger.Info("search_finish",
				"found", e.Found,
				"expanded", e.Expanded,
				"discovered", e.Discovered,
				"cost", e.Cost,
				"duration", e.Duration,
			)
		},
	}
}
