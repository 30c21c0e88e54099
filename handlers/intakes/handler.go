package intakes

import (
	"net/http"
	"time"

	"github.com/alvr10/caffeine-tracker-backend/db"
	"github.com/alvr10/caffeine-tracker-backend/models"
	"github.com/alvr10/caffeine-tracker-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateIntake logs a consumption for the connected user. The caffeine amount
// is computed from the drink at log time.
// @Summary Log an intake
// @Description Log a caffeine intake for the connected user
// @Tags intakes
// @Accept json
// @Produce json
// @Param intake body models.IntakeCreate true "Intake information"
// @Security BearerAuth
// @Success 201 {object} models.Intake
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Drink not found"
// @Failure 500 {object} map[string]string "error: Error creating the intake"
// @Router /intakes [post]
func CreateIntake(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CreateIntake")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.IntakeCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if _, err := uuid.Parse(input.DrinkID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drink ID"})
		return
	}

	var drink models.Drink
	if err := db.DB.First(&drink, "id = ?", input.DrinkID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Drink not found in CreateIntake")
		c.JSON(http.StatusNotFound, gin.H{"error": "Drink not found"})
		return
	}

	servings := input.Servings
	if servings <= 0 {
		servings = 1
	}

	consumedAt := time.Now()
	if input.ConsumedAt != nil {
		consumedAt = *input.ConsumedAt
	}

	intake := models.Intake{
		UserID:     userID.(string),
		DrinkID:    drink.ID,
		Servings:   servings,
		CaffeineMg: int(float64(drink.CaffeineMg) * servings),
		ConsumedAt: consumedAt,
		Notes:      input.Notes,
	}

	if err := db.DB.Create(&intake).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the intake in CreateIntake")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the intake"})
		return
	}

	utils.LogSuccessWithUser(userID, "Intake logged in CreateIntake")
	c.JSON(http.StatusCreated, intake)
}

// GetUserIntakes lists the connected user's intakes, newest first, optionally
// restricted to one calendar day.
// @Summary List intakes
// @Description Return the connected user's intakes, optionally for one day (YYYY-MM-DD)
// @Tags intakes
// @Produce json
// @Param date query string false "Day filter, format 2006-01-02"
// @Security BearerAuth
// @Success 200 {array} models.Intake
// @Failure 400 {object} map[string]string "error: Invalid date"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /intakes [get]
func GetUserIntakes(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetUserIntakes")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Where("user_id = ?", userID)

	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected format 2006-01-02"})
			return
		}
		query = query.Where("consumed_at >= ? AND consumed_at < ?", day, day.AddDate(0, 0, 1))
	}

	var intakes []models.Intake
	if err := query.Order("consumed_at DESC").Find(&intakes).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching intakes in GetUserIntakes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching intakes"})
		return
	}

	c.JSON(http.StatusOK, intakes)
}

// GetIntakeDetail returns one intake of the connected user.
// @Summary Intake detail
// @Description Return one intake of the connected user
// @Tags intakes
// @Produce json
// @Param intakeId path string true "ID of the intake"
// @Security BearerAuth
// @Success 200 {object} models.Intake
// @Failure 400 {object} map[string]string "error: Invalid intake ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized to view this intake"
// @Failure 404 {object} map[string]string "error: Intake not found"
// @Router /intakes/{intakeId} [get]
func GetIntakeDetail(c *gin.Context) {
	intakeId := c.Param("intakeId")

	if _, err := uuid.Parse(intakeId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid intake ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetIntakeDetail")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var intake models.Intake
	if err := db.DB.First(&intake, "id = ?", intakeId).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Intake not found in GetIntakeDetail")
		c.JSON(http.StatusNotFound, gin.H{"error": "Intake not found"})
		return
	}

	if intake.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not authorized to view this intake in GetIntakeDetail")
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to view this intake"})
		return
	}

	c.JSON(http.StatusOK, intake)
}

// UpdateIntake modifies one intake of the connected user.
// @Summary Update an intake
// @Description Update servings, timestamp or notes of an intake
// @Tags intakes
// @Accept json
// @Produce json
// @Param intakeId path string true "ID of the intake"
// @Param intake body models.IntakeUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.Intake
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized to update this intake"
// @Failure 404 {object} map[string]string "error: Intake not found"
// @Router /intakes/{intakeId} [put]
func UpdateIntake(c *gin.Context) {
	intakeId := c.Param("intakeId")

	if _, err := uuid.Parse(intakeId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid intake ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in UpdateIntake")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var intake models.Intake
	if err := db.DB.First(&intake, "id = ?", intakeId).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Intake not found in UpdateIntake")
		c.JSON(http.StatusNotFound, gin.H{"error": "Intake not found"})
		return
	}

	if intake.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not authorized to update this intake in UpdateIntake")
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update this intake"})
		return
	}

	var input models.IntakeUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Servings != nil && *input.Servings > 0 {
		var drink models.Drink
		if err := db.DB.First(&drink, "id = ?", intake.DrinkID).Error; err == nil {
			updates["caffeine_mg"] = int(float64(drink.CaffeineMg) * *input.Servings)
		}
		updates["servings"] = *input.Servings
	}
	if input.ConsumedAt != nil {
		updates["consumed_at"] = *input.ConsumedAt
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&intake).Updates(updates).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error updating the intake in UpdateIntake")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the intake"})
			return
		}
	}

	utils.LogSuccessWithUser(userID, "Intake updated in UpdateIntake")
	c.JSON(http.StatusOK, intake)
}

// DeleteIntake removes one intake of the connected user.
// @Summary Delete an intake
// @Description Remove one intake of the connected user
// @Tags intakes
// @Produce json
// @Param intakeId path string true "ID of the intake"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Intake deleted successfully"
// @Failure 400 {object} map[string]string "error: Invalid intake ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized to delete this intake"
// @Failure 404 {object} map[string]string "error: Intake not found"
// @Router /intakes/{intakeId} [delete]
func DeleteIntake(c *gin.Context) {
	intakeId := c.Param("intakeId")

	if _, err := uuid.Parse(intakeId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid intake ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in DeleteIntake")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var intake models.Intake
	if err := db.DB.First(&intake, "id = ?", intakeId).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Intake not found in DeleteIntake")
		c.JSON(http.StatusNotFound, gin.H{"error": "Intake not found"})
		return
	}

	if intake.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not authorized to delete this intake in DeleteIntake")
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this intake"})
		return
	}

	if err := db.DB.Delete(&intake).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting the intake in DeleteIntake")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting the intake"})
		return
	}

	utils.LogSuccessWithUser(userID, "Intake deleted in DeleteIntake")
	c.JSON(http.StatusOK, gin.H{"message": "Intake deleted successfully"})
}

// GetDailySummary aggregates the connected user's caffeine for one day and
// compares it to their limit. Subscriber-only endpoint.
// @Summary Daily caffeine summary
// @Description Total caffeine for one day against the user's daily limit (subscriber feature)
// @Tags intakes
// @Produce json
// @Param date query string false "Day, format 2006-01-02 (defaults to today)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "date, totalCaffeineMg, dailyLimitMg, overLimit, intakeCount"
// @Failure 400 {object} map[string]string "error: Invalid date"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Active subscription required"
// @Router /intakes/summary [get]
func GetDailySummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetDailySummary")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	day := time.Now().Truncate(24 * time.Hour)
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected format 2006-01-02"})
			return
		}
		day = parsed
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in GetDailySummary")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var intakes []models.Intake
	err := db.DB.Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, day, day.AddDate(0, 0, 1)).
		Find(&intakes).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching intakes in GetDailySummary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching intakes"})
		return
	}

	total := 0
	for _, intake := range intakes {
		total += intake.CaffeineMg
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            day.Format("2006-01-02"),
		"totalCaffeineMg": total,
		"dailyLimitMg":    user.DailyLimitMg,
		"overLimit":       total > user.DailyLimitMg,
		"intakeCount":     len(intakes),
	})
}
