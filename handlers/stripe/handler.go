package stripe

import (
	"errors"
	"net/http"
	"os"

	"github.com/alvr10/caffeine-tracker-backend/billing"
	"github.com/alvr10/caffeine-tracker-backend/db"
	"github.com/alvr10/caffeine-tracker-backend/models"
	"github.com/alvr10/caffeine-tracker-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetSubscriptionStatus reconciles the stored state against Stripe and
// returns the canonical view.
// @Summary Subscription status
// @Description Return the canonical subscription status, refreshed from Stripe when a subscription exists
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} billing.StatusView
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /subscriptions/status [get]
func GetSubscriptionStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetSubscriptionStatus")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	view, err := billing.ReconcileFromQuery(userID.(string))
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error reconciling subscription status in GetSubscriptionStatus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching subscription status"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// CreateSetupIntent returns a setup intent client secret so the frontend can
// collect a payment method. First billing touch: creates the local
// subscription record and the Stripe customer lazily.
// @Summary Create a setup intent
// @Description Create a Stripe SetupIntent for collecting a payment method
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "clientSecret: SetupIntent client secret"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /subscriptions/setup-intent [post]
func CreateSetupIntent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CreateSetupIntent")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreateSetupIntent")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	account, err := billing.EnsureBillingAccount(&user)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe customer in CreateSetupIntent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
		return
	}

	intent, err := billing.Client.CreateSetupIntent(account.StripeCustomerId)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the setup intent in CreateSetupIntent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the setup intent"})
		return
	}

	utils.LogSuccessWithUser(userID, "Setup intent created in CreateSetupIntent")
	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}

// CreateSubscription subscribes the user to the premium plan and records the
// resulting state.
// @Summary Subscribe to the premium plan
// @Description Create a Stripe subscription on the configured price and return the canonical status
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} billing.StatusView
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 409 {object} map[string]string "error: Already subscribed"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /subscriptions [post]
func CreateSubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CreateSubscription")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreateSubscription")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	account, err := billing.EnsureBillingAccount(&user)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe customer in CreateSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
		return
	}

	if account.StripeSubscriptionId != "" && account.Status.GrantsAccess() {
		utils.LogErrorWithUser(userID, nil, "Subscription already active in CreateSubscription")
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active subscription"})
		return
	}

	priceID := os.Getenv("STRIPE_PRICE_ID")
	if priceID == "" {
		utils.LogError(nil, "Variable STRIPE_PRICE_ID is not set in CreateSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Subscription price is not configured"})
		return
	}

	snap, err := billing.Client.CreateSubscription(account.StripeCustomerId, priceID)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe subscription in CreateSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe subscription"})
		return
	}

	view, err := billing.RecordNewSubscription(user.ID, snap)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error recording the subscription in CreateSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording the subscription"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription created in CreateSubscription")
	c.JSON(http.StatusOK, view)
}

// CancelSubscription schedules the cancellation at period end. Access stays
// granted until the paid period runs out.
// @Summary Cancel the subscription
// @Description Schedule the Stripe subscription to cancel at period end
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} billing.StatusView
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: No subscription on record"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /subscriptions [delete]
func CancelSubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CancelSubscription")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	view, err := billing.ScheduleCancellation(userID.(string))
	if err != nil {
		if errors.Is(err, billing.ErrNoSubscription) {
			utils.LogErrorWithUser(userID, err, "No subscription to cancel in CancelSubscription")
			c.JSON(http.StatusNotFound, gin.H{"error": "No subscription on record"})
			return
		}
		utils.LogErrorWithUser(userID, err, "Error cancelling the Stripe subscription in CancelSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error cancelling the Stripe subscription"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription cancellation scheduled in CancelSubscription")
	c.JSON(http.StatusOK, view)
}

// ReactivateSubscription removes a scheduled cancellation.
// @Summary Reactivate the subscription
// @Description Remove a scheduled cancellation so the subscription renews again
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} billing.StatusView
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: No subscription on record"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /subscriptions/reactivate [post]
func ReactivateSubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in ReactivateSubscription")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	view, err := billing.CancelReactivation(userID.(string))
	if err != nil {
		if errors.Is(err, billing.ErrNoSubscription) {
			utils.LogErrorWithUser(userID, err, "No subscription to reactivate in ReactivateSubscription")
			c.JSON(http.StatusNotFound, gin.H{"error": "No subscription on record"})
			return
		}
		utils.LogErrorWithUser(userID, err, "Error reactivating the Stripe subscription in ReactivateSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reactivating the Stripe subscription"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription reactivated in ReactivateSubscription")
	c.JSON(http.StatusOK, view)
}
