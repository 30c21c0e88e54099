package models

import (
	"time"
)

// SubscriptionStatus is the canonical four-state enum the application reasons
// about, independent of Stripe's own status vocabulary.
type SubscriptionStatus string

const (
	SubscriptionInactive             SubscriptionStatus = "inactive"
	SubscriptionActive               SubscriptionStatus = "active"
	SubscriptionActiveUntilPeriodEnd SubscriptionStatus = "active_until_period_end"
	SubscriptionCancelled            SubscriptionStatus = "cancelled"
)

// GrantsAccess reports whether the status unlocks subscriber features. A
// scheduled cancellation keeps access until the paid period actually ends.
func (s SubscriptionStatus) GrantsAccess() bool {
	return s == SubscriptionActive || s == SubscriptionActiveUntilPeriodEnd
}

// UserSubscription is the local record of a user's billing state, one row per
// user. Stripe stays the source of truth; this row is a cache that the
// reconciler refreshes on every poll, mutation and webhook. An empty
// StripeSubscriptionId means no subscription exists or it fully terminated.
type UserSubscription struct {
	ID                   string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID               string             `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	StripeCustomerId     string             `json:"stripeCustomerId" gorm:"index"`
	StripeSubscriptionId string             `json:"stripeSubscriptionId"`
	Status               SubscriptionStatus `json:"status" gorm:"type:varchar(30);default:'inactive'"`
	ExpiresAt            *time.Time         `json:"expiresAt"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}
