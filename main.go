package main

import (
	"log"

	"github.com/alvr10/caffeine-tracker-backend/db"
	_ "github.com/alvr10/caffeine-tracker-backend/docs"
	"github.com/alvr10/caffeine-tracker-backend/routes"
	"github.com/alvr10/caffeine-tracker-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title Caffeine Tracker API
// @version 1.0
// @description API for the caffeine tracking application
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Warning: Cloudinary initialization failed: %v", err)
		log.Println("Profile picture uploads will not work.")
	}

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
