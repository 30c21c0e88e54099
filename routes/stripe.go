package routes

import (
	"github.com/alvr10/caffeine-tracker-backend/handlers/stripe"
	"github.com/alvr10/caffeine-tracker-backend/middleware"

	"github.com/gin-gonic/gin"
)

func StripeRoutes(r *gin.Engine) {
	subscriptionRoutes := r.Group("/subscriptions")
	subscriptionRoutes.Use(middleware.JWTAuth())
	{
		subscriptionRoutes.GET("/status", stripe.GetSubscriptionStatus)
		subscriptionRoutes.POST("/setup-intent", stripe.CreateSetupIntent)
		subscriptionRoutes.POST("/", stripe.CreateSubscription)
		subscriptionRoutes.DELETE("/", stripe.CancelSubscription)
		subscriptionRoutes.POST("/reactivate", stripe.ReactivateSubscription)
	}
	r.POST("/stripe/webhook", stripe.StripeWebhookHandler)
}
