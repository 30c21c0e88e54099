package billing

import (
	"errors"
	"time"

	"github.com/alvr10/caffeine-tracker-backend/models"
	"github.com/alvr10/caffeine-tracker-backend/utils"
)

// ErrNoSubscription is returned by the cancellation operations when the user
// has no subscription on record.
var ErrNoSubscription = errors.New("no subscription on record")

// Stripe webhook event types the reconciler reacts to. Everything else is
// acknowledged without a state change.
const (
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventSubscriptionUpdated = "customer.subscription.updated"
)

// StatusView is the user-facing projection of the canonical subscription
// state, returned by the status, cancel and reactivate endpoints. The raw
// period-end epoch is echoed alongside the normalized timestamp for client
// diagnostics.
type StatusView struct {
	Status            models.SubscriptionStatus `json:"status"`
	CurrentPeriodEnd  int64                     `json:"current_period_end,omitempty"`
	ExpiresAt         *time.Time                `json:"expires_at,omitempty"`
	CancelAtPeriodEnd bool                      `json:"cancel_at_period_end"`
	WillRenew         bool                      `json:"will_renew"`
}

func viewOf(status models.SubscriptionStatus, cancelAtPeriodEnd bool, periodEnd int64, expiresAt *time.Time) StatusView {
	return StatusView{
		Status:            status,
		CurrentPeriodEnd:  periodEnd,
		ExpiresAt:         expiresAt,
		CancelAtPeriodEnd: cancelAtPeriodEnd,
		WillRenew:         status == models.SubscriptionActive,
	}
}

// ReconcileFromQuery refreshes a user's stored state from Stripe and returns
// the current view. Users without a subscription id on record are reported
// inactive without a provider round trip.
func ReconcileFromQuery(userID string) (*StatusView, error) {
	sub, err := GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.StripeSubscriptionId == "" {
		return &StatusView{Status: models.SubscriptionInactive}, nil
	}

	snap, err := Client.RetrieveSubscription(sub.StripeSubscriptionId)
	if err != nil {
		return nil, err
	}

	if snap.Status != rawStatusActive {
		// The subscription lapsed outside the explicit cancellation flow.
		// Normalize to a clean inactive record: id and expiry cleared.
		if _, err := applyState(sub, models.SubscriptionInactive, "", nil); err != nil {
			return nil, err
		}
		return &StatusView{Status: models.SubscriptionInactive}, nil
	}

	status := ClassifyStatus(snap.Status, snap.CancelAtPeriodEnd)
	expiresAt, periodEnd := ResolvePeriodEnd(snap)
	if _, err := applyState(sub, status, sub.StripeSubscriptionId, expiresAt); err != nil {
		return nil, err
	}

	view := viewOf(status, snap.CancelAtPeriodEnd, periodEnd, expiresAt)
	return &view, nil
}

// ReconcileFromEvent applies a webhook snapshot. Events are keyed by the
// Stripe customer id since they carry no user identity. Delivery is at least
// once, so the whole path is a pure function of the snapshot plus a compare
// against the stored row; reapplying the same event is a no-op.
func ReconcileFromEvent(eventType string, snap Snapshot) error {
	sub, err := GetByCustomerID(snap.CustomerID)
	if err != nil {
		return err
	}
	if sub == nil {
		utils.LogInfo("No subscription record for Stripe customer " + snap.CustomerID + " in ReconcileFromEvent")
		return nil
	}

	switch eventType {
	case EventSubscriptionDeleted:
		_, err = applyState(sub, models.SubscriptionCancelled, "", nil)
		return err
	case EventSubscriptionUpdated:
		if snap.Status != rawStatusActive {
			// Non-active updates are left to the next poll; the deleted event
			// is the terminal signal.
			return nil
		}
		status := ClassifyStatus(snap.Status, snap.CancelAtPeriodEnd)
		expiresAt, _ := ResolvePeriodEnd(snap)
		_, err = applyState(sub, status, snap.SubscriptionID, expiresAt)
		return err
	default:
		return nil
	}
}

// RecordNewSubscription runs a freshly created subscription through the
// classification pipeline. Unlike the poll path it always keeps the
// subscription id: an incomplete first payment must stay trackable until a
// later poll or webhook settles it.
func RecordNewSubscription(userID string, snap Snapshot) (*StatusView, error) {
	sub, err := EnsureForUser(userID)
	if err != nil {
		return nil, err
	}

	status := ClassifyStatus(snap.Status, snap.CancelAtPeriodEnd)
	expiresAt, periodEnd := ResolvePeriodEnd(snap)
	if _, err := applyState(sub, status, snap.SubscriptionID, expiresAt); err != nil {
		return nil, err
	}

	view := viewOf(status, snap.CancelAtPeriodEnd, periodEnd, expiresAt)
	return &view, nil
}

// ScheduleCancellation asks Stripe to cancel at period end and reflects the
// change locally right away; the definitive demotion to cancelled arrives
// later through the deletion webhook or a poll. Access stays granted until
// the period actually ends.
func ScheduleCancellation(userID string) (*StatusView, error) {
	return setCancelAtPeriodEnd(userID, true)
}

// CancelReactivation removes a scheduled cancellation so the subscription
// renews again.
func CancelReactivation(userID string) (*StatusView, error) {
	return setCancelAtPeriodEnd(userID, false)
}

func setCancelAtPeriodEnd(userID string, cancel bool) (*StatusView, error) {
	sub, err := GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.StripeSubscriptionId == "" {
		return nil, ErrNoSubscription
	}

	snap, err := Client.UpdateSubscription(sub.StripeSubscriptionId, cancel)
	if err != nil {
		return nil, err
	}

	status := ClassifyStatus(snap.Status, snap.CancelAtPeriodEnd)
	if status == models.SubscriptionInactive {
		if _, err := applyState(sub, models.SubscriptionInactive, "", nil); err != nil {
			return nil, err
		}
		return &StatusView{Status: models.SubscriptionInactive}, nil
	}

	expiresAt, periodEnd := ResolvePeriodEnd(snap)
	if _, err := applyState(sub, status, sub.StripeSubscriptionId, expiresAt); err != nil {
		return nil, err
	}

	view := viewOf(status, snap.CancelAtPeriodEnd, periodEnd, expiresAt)
	return &view, nil
}
