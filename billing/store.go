package billing

import (
	"errors"
	"time"

	"github.com/alvr10/caffeine-tracker-backend/db"
	"github.com/alvr10/caffeine-tracker-backend/models"

	"gorm.io/gorm"
)

// GetByUserID returns the subscription row for a user, or nil when the user
// never touched billing.
func GetByUserID(userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	if err := db.DB.First(&sub, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// GetByCustomerID looks a row up by the Stripe customer id. Webhook events
// carry no user identity, so the customer id acts as a secondary key.
func GetByCustomerID(customerID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	if err := db.DB.First(&sub, "stripe_customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// EnsureForUser returns the user's subscription row, creating an inactive one
// on the first billing touch.
func EnsureForUser(userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := db.DB.Where("user_id = ?", userID).
		Attrs(models.UserSubscription{Status: models.SubscriptionInactive}).
		FirstOrCreate(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// EnsureBillingAccount returns the user's subscription row with a Stripe
// customer attached, creating both lazily. The customer mapping is created
// once and never reassigned.
func EnsureBillingAccount(user *models.User) (*models.UserSubscription, error) {
	sub, err := EnsureForUser(user.ID)
	if err != nil {
		return nil, err
	}
	if sub.StripeCustomerId != "" {
		return sub, nil
	}

	customerID, err := Client.CreateCustomer(user.Email, map[string]string{"user_id": user.ID})
	if err != nil {
		return nil, err
	}

	if err := db.DB.Model(sub).Update("stripe_customer_id", customerID).Error; err != nil {
		return nil, err
	}
	sub.StripeCustomerId = customerID
	return sub, nil
}

// applyState writes the computed canonical fields, suppressing the write when
// nothing changed. Write-suppression keeps repeated polls and redelivered
// webhooks idempotent without any deduplication bookkeeping. Returns whether
// a write happened.
func applyState(sub *models.UserSubscription, status models.SubscriptionStatus, subscriptionID string, expiresAt *time.Time) (bool, error) {
	if sub.Status == status && sub.StripeSubscriptionId == subscriptionID && sameInstant(sub.ExpiresAt, expiresAt) {
		return false, nil
	}

	err := db.DB.Model(sub).Updates(map[string]interface{}{
		"status":                 status,
		"stripe_subscription_id": subscriptionID,
		"expires_at":             expiresAt,
	}).Error
	if err != nil {
		return false, err
	}

	sub.Status = status
	sub.StripeSubscriptionId = subscriptionID
	sub.ExpiresAt = expiresAt
	return true, nil
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
