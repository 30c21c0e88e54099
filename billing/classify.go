package billing

import (
	"github.com/alvr10/caffeine-tracker-backend/models"
)

// rawStatusActive is the only Stripe status that counts as paid-up.
const rawStatusActive = "active"

// ClassifyStatus folds a raw Stripe subscription status and the scheduled
// cancellation flag into the canonical enum. Every non-active raw status
// (incomplete, past_due, unpaid, canceled, ...) maps to inactive; the
// taxonomy does not distinguish failure reasons.
func ClassifyStatus(rawStatus string, cancelAtPeriodEnd bool) models.SubscriptionStatus {
	if rawStatus != rawStatusActive {
		return models.SubscriptionInactive
	}
	if cancelAtPeriodEnd {
		return models.SubscriptionActiveUntilPeriodEnd
	}
	return models.SubscriptionActive
}
