package service

import (
	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/policy"
	"github.com/salon/booking-api/internal/pkg/metrics"
)

// authorize consults the gate and records the decision.
func authorize(caller *domain.Identity, action policy.Action, target policy.Target) error {
	d := policy.Decide(caller, action, target)
	metrics.AuthorizationDecisionsTotal.WithLabelValues(string(action), string(d.Reason)).Inc()
	return d.Err()
}

func callerLabel(caller *domain.Identity) string {
	if caller == nil {
		return "anonymous"
	}
	return string(caller.Role)
}
