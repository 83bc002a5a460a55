package badge

import (
	"ALH_backend/internal/model"
	"ALH_backend/pkg/logger"

	"go.uber.org/zap"
)

// Evaluate returns the rules whose predicates hold for the snapshot and
// whose IDs are not yet in the earned set, in catalog declaration order.
//
// The function is pure with respect to its inputs: it never mutates the
// snapshot or the earned set, and calling it repeatedly with the same
// arguments yields the same result. Turning the returned rules into
// persisted awards is the caller's job.
//
// A panicking predicate only loses its own rule for this pass; the
// remaining rules are still evaluated.
func (c *Catalog) Evaluate(snapshot model.ProgressSnapshot, earned map[string]struct{}) []Rule {
	var fired []Rule
	for _, rule := range c.rules {
		if _, already := earned[rule.ID]; already {
			continue
		}
		if c.satisfied(rule, snapshot) {
			fired = append(fired, rule)
		}
	}
	return fired
}

func (c *Catalog) satisfied(rule Rule, snapshot model.ProgressSnapshot) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logger().Error("badge predicate panicked",
				zap.String("badge_id", rule.ID),
				zap.Any("panic", r))
			ok = false
		}
	}()
	return rule.Predicate(snapshot)
}

// EarnedSet builds the set of already-earned badge IDs from award records.
func EarnedSet(badges []*model.UserBadge) map[string]struct{} {
	set := make(map[string]struct{}, len(badges))
	for _, b := range badges {
		set[b.BadgeID] = struct{}{}
	}
	return set
}
