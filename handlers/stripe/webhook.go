package stripe

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/alvr10/caffeine-tracker-backend/billing"
	"github.com/alvr10/caffeine-tracker-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookHandler verifies and dispatches Stripe events. The signature
// check runs before any payload data is trusted; a failed verification aborts
// with no state mutation and Stripe's retry takes care of redelivery.
func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to read the request body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stripe signature verification failed"})
		return
	}

	switch event.Type {
	case billing.EventSubscriptionDeleted, billing.EventSubscriptionUpdated:
		handleSubscriptionEvent(c, event)
	default:
		// Unmodeled event types are acknowledged so Stripe stops retrying.
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
	}
}

func handleSubscriptionEvent(c *gin.Context, event stripe.Event) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing subscription payload"})
		return
	}

	if sub.Customer == nil || sub.Customer.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer missing on the event"})
		return
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(event.Data.Raw, &raw)

	snap := billing.SnapshotFromEvent(&sub, raw)
	if err := billing.ReconcileFromEvent(string(event.Type), snap); err != nil {
		utils.LogError(err, "Error applying subscription event in StripeWebhookHandler")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error applying subscription event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription event processed"})
}
