package drinks

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alvr10/caffeine-tracker-backend/models"
	"github.com/alvr10/caffeine-tracker-backend/testutils"
	"github.com/alvr10/caffeine-tracker-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	utils.Logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func drinkRows(mock sqlmock.Sqlmock, drinks ...models.Drink) *sqlmock.Rows {
	rows := mock.NewRows([]string{"id", "name", "brand", "category", "size_ml", "caffeine_mg", "created_at", "updated_at"})
	for _, d := range drinks {
		rows.AddRow(d.ID, d.Name, d.Brand, string(d.Category), d.SizeMl, d.CaffeineMg, time.Now(), time.Now())
	}
	return rows
}

func TestGetAllDrinks(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "drinks" ORDER BY name ASC`).
		WillReturnRows(drinkRows(mock,
			models.Drink{ID: "11111111-1111-1111-1111-111111111111", Name: "Espresso", Category: models.DrinkCoffee, SizeMl: 30, CaffeineMg: 63},
			models.Drink{ID: "22222222-2222-2222-2222-222222222222", Name: "Green Tea", Category: models.DrinkTea, SizeMl: 250, CaffeineMg: 28},
		))

	r := testutils.SetupTestRouter()
	r.GET("/drinks", GetAllDrinks)

	req, _ := http.NewRequest(http.MethodGet, "/drinks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var drinks []models.Drink
	err := json.Unmarshal(w.Body.Bytes(), &drinks)
	assert.NoError(t, err)
	assert.Len(t, drinks, 2)
	assert.Equal(t, "Espresso", drinks[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllDrinks_CategoryFilter(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "drinks" WHERE category = \$1 ORDER BY name ASC`).
		WithArgs("COFFEE").
		WillReturnRows(drinkRows(mock,
			models.Drink{ID: "11111111-1111-1111-1111-111111111111", Name: "Espresso", Category: models.DrinkCoffee, SizeMl: 30, CaffeineMg: 63},
		))

	r := testutils.SetupTestRouter()
	r.GET("/drinks", GetAllDrinks)

	req, _ := http.NewRequest(http.MethodGet, "/drinks?category=COFFEE", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var drinks []models.Drink
	err := json.Unmarshal(w.Body.Bytes(), &drinks)
	assert.NoError(t, err)
	assert.Len(t, drinks, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDrinkByID_InvalidID(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/drinks/:drinkId", GetDrinkByID)

	req, _ := http.NewRequest(http.MethodGet, "/drinks/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDrink_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "drinks" WHERE name = \$1 AND brand = \$2`).
		WithArgs("Espresso", "", 1).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "drinks"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("11111111-1111-1111-1111-111111111111"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/drinks", CreateDrink)

	body, _ := json.Marshal(map[string]interface{}{
		"name":       "Espresso",
		"category":   "COFFEE",
		"sizeMl":     30,
		"caffeineMg": 63,
	})
	req, _ := http.NewRequest(http.MethodPost, "/drinks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDrink_DuplicateConflict(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "drinks" WHERE name = \$1 AND brand = \$2`).
		WithArgs("Espresso", "", 1).
		WillReturnRows(drinkRows(mock,
			models.Drink{ID: "11111111-1111-1111-1111-111111111111", Name: "Espresso", Category: models.DrinkCoffee, SizeMl: 30, CaffeineMg: 63},
		))

	r := testutils.SetupTestRouter()
	r.POST("/drinks", CreateDrink)

	body, _ := json.Marshal(map[string]interface{}{
		"name":       "Espresso",
		"category":   "COFFEE",
		"sizeMl":     30,
		"caffeineMg": 63,
	})
	req, _ := http.NewRequest(http.MethodPost, "/drinks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDrink_MissingFields(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/drinks", CreateDrink)

	req, _ := http.NewRequest(http.MethodPost, "/drinks", bytes.NewBufferString(`{"name":"Espresso"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteDrink_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	drinkID := "11111111-1111-1111-1111-111111111111"
	mock.ExpectQuery(`SELECT \* FROM "drinks" WHERE id = \$1`).
		WithArgs(drinkID, 1).
		WillReturnRows(drinkRows(mock,
			models.Drink{ID: drinkID, Name: "Espresso", Category: models.DrinkCoffee, SizeMl: 30, CaffeineMg: 63},
		))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "drinks"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.DELETE("/drinks/:drinkId", DeleteDrink)

	req, _ := http.NewRequest(http.MethodDelete, "/drinks/"+drinkID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDrink_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	drinkID := "11111111-1111-1111-1111-111111111111"
	mock.ExpectQuery(`SELECT \* FROM "drinks" WHERE id = \$1`).
		WithArgs(drinkID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.DELETE("/drinks/:drinkId", DeleteDrink)

	req, _ := http.NewRequest(http.MethodDelete, "/drinks/"+drinkID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
