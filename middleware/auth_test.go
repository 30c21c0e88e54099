package middleware

import (
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
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	utils.Logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	r := testutils.SetupTestRouter()
	r.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func tokenFor(t *testing.T, user models.User) string {
	token, err := utils.GenerateJWT(user, 1)
	if err != nil {
		t.Fatalf("Error generating the test JWT: %s", err)
	}
	return token
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := protectedRouter(JWTAuth())

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := protectedRouter(JWTAuth())
	token := tokenFor(t, models.User{ID: "user-1", Role: models.UserRole})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth_UserRoleIsDenied(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := protectedRouter(AdminAuth())
	token := tokenFor(t, models.User{ID: "user-1", Role: models.UserRole})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminAuth_AdminRolePasses(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := protectedRouter(AdminAuth())
	token := tokenFor(t, models.User{ID: "admin-1", Role: models.AdminRole})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func subscriptionRows(mock sqlmock.Sqlmock, status models.SubscriptionStatus) *sqlmock.Rows {
	return mock.NewRows([]string{"id", "user_id", "stripe_customer_id", "stripe_subscription_id", "status", "expires_at", "created_at", "updated_at"}).
		AddRow("row-1", "user-1", "cus_1", "sub_123", string(status), nil, time.Now(), time.Now())
}

func TestSubscriberAuth_ActiveSubscriptionPasses(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions" WHERE user_id = \$1`).
		WithArgs("user-1", 1).
		WillReturnRows(subscriptionRows(mock, models.SubscriptionActive))

	r := protectedRouter(SubscriberAuth())
	token := tokenFor(t, models.User{ID: "user-1", Role: models.UserRole})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberAuth_CancellationScheduledStillPasses(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions" WHERE user_id = \$1`).
		WithArgs("user-1", 1).
		WillReturnRows(subscriptionRows(mock, models.SubscriptionActiveUntilPeriodEnd))

	r := protectedRouter(SubscriberAuth())
	token := tokenFor(t, models.User{ID: "user-1", Role: models.UserRole})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberAuth_InactiveSubscriptionIsDenied(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions" WHERE user_id = \$1`).
		WithArgs("user-1", 1).
		WillReturnRows(subscriptionRows(mock, models.SubscriptionInactive))

	r := protectedRouter(SubscriberAuth())
	token := tokenFor(t, models.User{ID: "user-1", Role: models.UserRole})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberAuth_NoRecordIsDenied(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "user_subscriptions" WHERE user_id = \$1`).
		WithArgs("user-1", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := protectedRouter(SubscriberAuth())
	token := tokenFor(t, models.User{ID: "user-1", Role: models.UserRole})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
