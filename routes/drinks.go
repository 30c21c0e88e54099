package routes

import (
	"github.com/alvr10/caffeine-tracker-backend/handlers/drinks"
	"github.com/alvr10/caffeine-tracker-backend/middleware"

	"github.com/gin-gonic/gin"
)

func DrinksRoutes(r *gin.Engine) {
	drinkRoutes := r.Group("/drinks")
	{
		drinkRoutes.GET("/", drinks.GetAllDrinks)
		drinkRoutes.GET("/:drinkId", drinks.GetDrinkByID)
		drinkRoutes.POST("/", middleware.AdminAuth(), drinks.CreateDrink)
		drinkRoutes.PUT("/:drinkId", middleware.AdminAuth(), drinks.UpdateDrink)
		drinkRoutes.DELETE("/:drinkId", middleware.AdminAuth(), drinks.DeleteDrink)
	}
}
