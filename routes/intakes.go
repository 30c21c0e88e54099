package routes

import (
	"github.com/alvr10/caffeine-tracker-backend/handlers/intakes"
	"github.com/alvr10/caffeine-tracker-backend/middleware"

	"github.com/gin-gonic/gin"
)

func IntakesRoutes(r *gin.Engine) {
	intakeRoutes := r.Group("/intakes")
	intakeRoutes.Use(middleware.JWTAuth())
	{
		intakeRoutes.POST("/", intakes.CreateIntake)
		intakeRoutes.GET("/", intakes.GetUserIntakes)
		intakeRoutes.GET("/:intakeId", intakes.GetIntakeDetail)
		intakeRoutes.PUT("/:intakeId", intakes.UpdateIntake)
		intakeRoutes.DELETE("/:intakeId", intakes.DeleteIntake)
	}
	// The summary is a subscriber feature, gated on the canonical status.
	r.GET("/intakes/summary", middleware.SubscriberAuth(), intakes.GetDailySummary)
}
