package billing

import (
	"time"
)

// fallbackPeriodSeconds estimates one billing period when Stripe omits the
// period end: billing cycle anchor plus 30 days. A fixed monthly assumption,
// not calendar-month arithmetic; the plan interval is not part of the
// snapshot, so a finer estimate is not derivable here.
const fallbackPeriodSeconds = 30 * 24 * 60 * 60

// ResolvePeriodEnd determines when the access paid for by the snapshot
// expires. The current_period_end field wins when present; otherwise the
// billing cycle anchor provides an estimate so callers are never blocked on
// an unknown expiration while a reasonable one exists. Returns the normalized
// timestamp plus the raw epoch that was selected (0 when no source was
// available), echoed for diagnostics.
func ResolvePeriodEnd(snap Snapshot) (*time.Time, int64) {
	var periodEnd int64
	switch {
	case snap.CurrentPeriodEnd > 0:
		periodEnd = snap.CurrentPeriodEnd
	case snap.BillingCycleAnchor > 0:
		periodEnd = snap.BillingCycleAnchor + fallbackPeriodSeconds
	default:
		return nil, 0
	}
	return NormalizeEpoch(periodEnd), periodEnd
}
