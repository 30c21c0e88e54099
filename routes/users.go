package routes

import (
	"github.com/alvr10/caffeine-tracker-backend/handlers/users"
	"github.com/alvr10/caffeine-tracker-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	userRoutes := r.Group("/users")
	userRoutes.Use(middleware.JWTAuth())
	{
		userRoutes.GET("/me", users.GetMyProfile)
		userRoutes.PUT("/me", users.UpdateMyProfile)
		userRoutes.POST("/me/picture", users.UploadProfilePicture)
	}
}
