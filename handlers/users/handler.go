package users

import (
	"net/http"

	"github.com/alvr10/caffeine-tracker-backend/db"
	"github.com/alvr10/caffeine-tracker-backend/models"
	"github.com/alvr10/caffeine-tracker-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetMyProfile returns the connected user's profile.
// @Summary My profile
// @Description Return the connected user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [get]
func GetMyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetMyProfile")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in GetMyProfile")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// UpdateMyProfile changes the connected user's username or daily limit.
// @Summary Update my profile
// @Description Update the connected user's username or daily caffeine limit
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [put]
func UpdateMyProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in UpdateMyProfile")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in UpdateMyProfile")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.UserName != nil {
		updates["user_name"] = *input.UserName
	}
	if input.DailyLimitMg != nil {
		if *input.DailyLimitMg <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "The daily limit must be positive"})
			return
		}
		updates["daily_limit_mg"] = *input.DailyLimitMg
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error updating the profile in UpdateMyProfile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the profile"})
			return
		}
	}

	user.Password = ""
	utils.LogSuccessWithUser(userID, "Profile updated in UpdateMyProfile")
	c.JSON(http.StatusOK, user)
}

// UploadProfilePicture stores a new profile picture on Cloudinary.
// @Summary Upload profile picture
// @Description Upload a profile picture for the connected user
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param picture formData file true "Image file"
// @Security BearerAuth
// @Success 200 {object} map[string]string "profilePicture: URL of the uploaded image"
// @Failure 400 {object} map[string]string "error: Invalid file"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Upload error"
// @Router /users/me/picture [post]
func UploadProfilePicture(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in UploadProfilePicture")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in UploadProfilePicture")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	file, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing picture file"})
		return
	}

	url, err := utils.UploadImage(file, "profile_pictures")
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error uploading the picture in UploadProfilePicture")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading the picture"})
		return
	}

	if err := db.DB.Model(&user).Update("profile_picture", url).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error saving the picture URL in UploadProfilePicture")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving the picture URL"})
		return
	}

	utils.LogSuccessWithUser(userID, "Profile picture updated in UploadProfilePicture")
	c.JSON(http.StatusOK, gin.H{"profilePicture": url})
}
