package drinks

import (
	"errors"
	"net/http"

	"github.com/alvr10/caffeine-tracker-backend/db"
	"github.com/alvr10/caffeine-tracker-backend/models"
	"github.com/alvr10/caffeine-tracker-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDrinks returns the drinks catalog, optionally filtered by category.
// @Summary List drinks
// @Description Return the drinks catalog, optionally filtered by category
// @Tags drinks
// @Produce json
// @Param category query string false "Category filter (COFFEE, TEA, ENERGY, SODA, OTHER)"
// @Success 200 {array} models.Drink
// @Failure 500 {object} map[string]string "error: Error fetching drinks"
// @Router /drinks [get]
func GetAllDrinks(c *gin.Context) {
	query := db.DB.Order("name ASC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var drinks []models.Drink
	if err := query.Find(&drinks).Error; err != nil {
		utils.LogError(err, "Error fetching drinks in GetAllDrinks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching drinks"})
		return
	}

	c.JSON(http.StatusOK, drinks)
}

// GetDrinkByID returns one catalog entry.
// @Summary Drink detail
// @Description Return one drink from the catalog
// @Tags drinks
// @Produce json
// @Param drinkId path string true "ID of the drink"
// @Success 200 {object} models.Drink
// @Failure 400 {object} map[string]string "error: Invalid drink ID"
// @Failure 404 {object} map[string]string "error: Drink not found"
// @Router /drinks/{drinkId} [get]
func GetDrinkByID(c *gin.Context) {
	drinkId := c.Param("drinkId")

	if _, err := uuid.Parse(drinkId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drink ID"})
		return
	}

	var drink models.Drink
	if err := db.DB.First(&drink, "id = ?", drinkId).Error; err != nil {
		utils.LogError(err, "Drink not found in GetDrinkByID")
		c.JSON(http.StatusNotFound, gin.H{"error": "Drink not found"})
		return
	}

	c.JSON(http.StatusOK, drink)
}

// CreateDrink adds a catalog entry (admin only).
// @Summary Create a drink
// @Description Add a drink to the catalog
// @Tags drinks
// @Accept json
// @Produce json
// @Param drink body models.Drink true "Drink information"
// @Security BearerAuth
// @Success 201 {object} models.Drink
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 409 {object} map[string]string "error: Drink already exists"
// @Failure 500 {object} map[string]string "error: Error creating the drink"
// @Router /drinks [post]
func CreateDrink(c *gin.Context) {
	var drink models.Drink
	if err := c.ShouldBindJSON(&drink); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var existing models.Drink
	err := db.DB.Where("name = ? AND brand = ?", drink.Name, drink.Brand).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This drink already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError(err, "Error checking the drink existence in CreateDrink")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking the drink existence"})
		return
	}

	if drink.Category == "" {
		drink.Category = models.DrinkOther
	}

	if err := db.DB.Create(&drink).Error; err != nil {
		utils.LogError(err, "Error creating the drink in CreateDrink")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the drink"})
		return
	}

	utils.LogSuccess("Drink created in CreateDrink")
	c.JSON(http.StatusCreated, drink)
}

// UpdateDrink modifies a catalog entry (admin only).
// @Summary Update a drink
// @Description Update a drink in the catalog
// @Tags drinks
// @Accept json
// @Produce json
// @Param drinkId path string true "ID of the drink"
// @Param drink body models.Drink true "Drink information"
// @Security BearerAuth
// @Success 200 {object} models.Drink
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Drink not found"
// @Failure 500 {object} map[string]string "error: Error updating the drink"
// @Router /drinks/{drinkId} [put]
func UpdateDrink(c *gin.Context) {
	drinkId := c.Param("drinkId")

	if _, err := uuid.Parse(drinkId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drink ID"})
		return
	}

	var drink models.Drink
	if err := db.DB.First(&drink, "id = ?", drinkId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drink not found"})
		return
	}

	var input models.Drink
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"brand":       input.Brand,
		"size_ml":     input.SizeMl,
		"caffeine_mg": input.CaffeineMg,
	}
	if input.Category != "" {
		updates["category"] = input.Category
	}

	if err := db.DB.Model(&drink).Updates(updates).Error; err != nil {
		utils.LogError(err, "Error updating the drink in UpdateDrink")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the drink"})
		return
	}

	utils.LogSuccess("Drink updated in UpdateDrink")
	c.JSON(http.StatusOK, drink)
}

// DeleteDrink removes a catalog entry (admin only).
// @Summary Delete a drink
// @Description Remove a drink from the catalog
// @Tags drinks
// @Produce json
// @Param drinkId path string true "ID of the drink"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Drink deleted successfully"
// @Failure 400 {object} map[string]string "error: Invalid drink ID"
// @Failure 404 {object} map[string]string "error: Drink not found"
// @Failure 500 {object} map[string]string "error: Error deleting the drink"
// @Router /drinks/{drinkId} [delete]
func DeleteDrink(c *gin.Context) {
	drinkId := c.Param("drinkId")

	if _, err := uuid.Parse(drinkId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drink ID"})
		return
	}

	var drink models.Drink
	if err := db.DB.First(&drink, "id = ?", drinkId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Drink not found"})
		return
	}

	if err := db.DB.Delete(&drink).Error; err != nil {
		utils.LogError(err, "Error deleting the drink in DeleteDrink")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting the drink"})
		return
	}

	utils.LogSuccess("Drink deleted in DeleteDrink")
	c.JSON(http.StatusOK, gin.H{"message": "Drink deleted successfully"})
}
