package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"abstract-portal/config"
	"abstract-portal/handlers"
	"abstract-portal/helper"
	"abstract-portal/middleware"
	"abstract-portal/models"
	"abstract-portal/repositories"
	"abstract-portal/services"
)

type IntegrationTestSuite struct {
	suite.Suite
	db         *gorm.DB
	router     *gin.Engine
	token      string
	adminToken string
	userID     uint
}

func (suite *IntegrationTestSuite) SetupSuite() {
	// Set test environment
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("DB_USER", "myuser")
	os.Setenv("DB_PASSWORD", "mypassword")
	os.Setenv("DB_NAME", "abstracts_test_db")

	dsn := "host=localhost port=5432 user=myuser password=mypassword dbname=abstracts_test_db sslmode=disable"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		suite.T().Fatal("Failed to connect to test database:", err)
	}

	suite.db = db

	if err := RunSQLFile(db, "../migration/init.sql"); err != nil {
		suite.T().Fatal("Failed to run migrations:", err)
	}

	suite.setupRouter()
}

func (suite *IntegrationTestSuite) setupRouter() {
	gin.SetMode(gin.TestMode)

	userRepo := repositories.NewUserRepository(suite.db)
	abstractRepo := repositories.NewAbstractRepository(suite.db)

	// SMTP is unset here, so notifications are no-ops. File storage is not
	// wired; the upload and download routes are covered separately against a
	// real bucket.
	notifier := services.NewNotificationService()
	authService := services.NewAuthService(userRepo)
	abstractService := services.NewAbstractService(abstractRepo, config.LoadWordLimits(), notifier)

	httpHelper := helper.NewHTTPHelper()
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	abstractHandler := handlers.NewAbstractHandler(abstractService, nil, httpHelper)
	adminHandler := handlers.NewAdminHandler(abstractService, httpHelper)

	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
		v1.POST("/admin/login", authHandler.AdminLogin)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)

			abstracts := protected.Group("/abstracts")
			{
				abstracts.POST("", abstractHandler.Submit)
				abstracts.GET("/user", abstractHandler.GetUserAbstracts)
				abstracts.PUT("/:id", abstractHandler.Update)
				abstracts.DELETE("/:id", abstractHandler.Delete)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.GET("/abstracts", adminHandler.ListAbstracts)
				admin.GET("/statistics", adminHandler.Statistics)
				admin.PUT("/abstracts/bulk-status", adminHandler.BulkUpdateStatus)
				admin.PUT("/abstracts/:id/status", adminHandler.UpdateStatus)
			}
		}
	}

	suite.router = router
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	suite.db.Exec("DROP TABLE IF EXISTS uploaded_files")
	suite.db.Exec("DROP TABLE IF EXISTS abstracts")
	suite.db.Exec("DROP TABLE IF EXISTS users")
}

func (suite *IntegrationTestSuite) SetupTest() {
	suite.db.Exec("TRUNCATE TABLE uploaded_files RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE abstracts RESTART IDENTITY CASCADE")
	suite.db.Exec("TRUNCATE TABLE users RESTART IDENTITY CASCADE")

	suite.registerAndLoginTestUser()
	suite.adminToken = suite.mintAdminToken()
}

func (suite *IntegrationTestSuite) registerAndLoginTestUser() {
	registerPayload := models.RegisterRequest{
		Email:       "delegate@example.com",
		Password:    "password123",
		FullName:    "Test Delegate",
		Institution: "Test Hospital",
	}

	body, _ := json.Marshal(registerPayload)
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var registerResponse struct {
		Code        int                 `json:"code"`
		CodeMessage string              `json:"code_message"`
		CodeType    string              `json:"code_type"`
		Data        models.AuthResponse `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &registerResponse)
	suite.NoError(err)

	suite.token = registerResponse.Data.Token
	suite.userID = registerResponse.Data.User.ID
}

// mintAdminToken signs an admin token directly; the admin login endpoint
// needs ADMIN_PASSWORD_HASH at process start, which the test runner does
// not control.
func (suite *IntegrationTestSuite) mintAdminToken() string {
	claims := middleware.Claims{
		Email: "admin@example.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(config.AdminJWTSecret)
	suite.NoError(err)
	return signed
}

func (suite *IntegrationTestSuite) submitAbstract(payload models.SubmitAbstractRequest) (int, map[string]json.RawMessage) {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/v1/abstracts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var resp map[string]json.RawMessage
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func validAbstract() models.SubmitAbstractRequest {
	return models.SubmitAbstractRequest{
		Title:            "Sepsis Biomarkers in the PICU",
		PresenterName:    "Dr. R. Mehta",
		InstitutionName:  "Regional Children's Hospital",
		PresentationType: "Oral Presentation",
		Category:         "Case Report",
		AbstractContent:  strings.TrimSpace(strings.Repeat("word ", 150)),
	}
}

func (suite *IntegrationTestSuite) TestAuthFlow() {
	loginPayload := models.LoginRequest{
		Email:    "delegate@example.com",
		Password: "password123",
	}

	body, _ := json.Marshal(loginPayload)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var loginResp struct {
		Code        int                 `json:"code"`
		CodeMessage string              `json:"code_message"`
		CodeType    string              `json:"code_type"`
		Data        models.AuthResponse `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &loginResp)
	suite.NoError(err)

	suite.NotEmpty(loginResp.Data.Token)
	suite.Equal("Test Delegate", loginResp.Data.User.FullName)
	suite.Equal(models.RoleDelegate, loginResp.Data.User.Role)
}

func (suite *IntegrationTestSuite) TestLoginWithWrongPassword() {
	loginPayload := models.LoginRequest{
		Email:    "delegate@example.com",
		Password: "wrong-password",
	}

	body, _ := json.Marshal(loginPayload)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestGetProfile() {
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var profileResp struct {
		Code        int         `json:"code"`
		CodeMessage string      `json:"code_message"`
		CodeType    string      `json:"code_type"`
		Data        models.User `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &profileResp)
	suite.NoError(err)
	suite.Equal("delegate@example.com", profileResp.Data.Email)
}

func (suite *IntegrationTestSuite) TestSubmitAndListAbstracts() {
	code, resp := suite.submitAbstract(validAbstract())
	suite.Equal(http.StatusCreated, code)

	var submitted models.Abstract
	suite.NoError(json.Unmarshal(resp["abstract"], &submitted))
	suite.Equal(models.StatusPending, submitted.Status)
	suite.True(strings.HasPrefix(submitted.AbstractNumber, "ABST-"))
	suite.Equal(suite.userID, submitted.UserID)

	req := httptest.NewRequest("GET", "/api/v1/abstracts/user", nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var listResp struct {
		Success   bool              `json:"success"`
		Abstracts []models.Abstract `json:"abstracts"`
		Count     int               `json:"count"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &listResp))
	suite.Equal(1, listResp.Count)
	suite.Len(listResp.Abstracts, 1)
	suite.Equal(submitted.ID, listResp.Abstracts[0].ID)
}

func (suite *IntegrationTestSuite) TestSubmitMissingFields() {
	payload := validAbstract()
	payload.PresenterName = ""
	payload.AbstractContent = ""

	code, resp := suite.submitAbstract(payload)
	suite.Equal(http.StatusBadRequest, code)

	var missing []string
	suite.NoError(json.Unmarshal(resp["missing_fields"], &missing))
	suite.ElementsMatch(missing, []string{"presenter_name", "abstract_content"})
}

func (suite *IntegrationTestSuite) TestSubmitOverWordLimit() {
	payload := validAbstract()
	payload.AbstractContent = strings.TrimSpace(strings.Repeat("word ", 301))

	code, resp := suite.submitAbstract(payload)
	suite.Equal(http.StatusBadRequest, code)

	var wordCount, wordLimit int
	suite.NoError(json.Unmarshal(resp["word_count"], &wordCount))
	suite.NoError(json.Unmarshal(resp["word_limit"], &wordLimit))
	suite.Equal(301, wordCount)
	suite.Equal(300, wordLimit)
}

func (suite *IntegrationTestSuite) TestAdminReviewFlow() {
	code, resp := suite.submitAbstract(validAbstract())
	suite.Equal(http.StatusCreated, code)

	second := validAbstract()
	second.Category = "Innovators of Tomorrow: DM/DRNB Thesis Awards"
	code, _ = suite.submitAbstract(second)
	suite.Equal(http.StatusCreated, code)

	var submitted models.Abstract
	suite.NoError(json.Unmarshal(resp["abstract"], &submitted))

	// Approve the first abstract.
	statusPayload := models.UpdateStatusRequest{
		Status:   models.StatusApproved,
		Comments: "Well structured",
	}
	body, _ := json.Marshal(statusPayload)
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/v1/admin/abstracts/%d/status", submitted.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.adminToken)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	// The dashboard reflects the change and counts the full set.
	req = httptest.NewRequest("GET", "/api/v1/admin/abstracts?status=approved", nil)
	req.Header.Set("Authorization", "Bearer "+suite.adminToken)

	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	var listResp struct {
		Success   bool              `json:"success"`
		Abstracts []models.Abstract `json:"abstracts"`
		Count     int               `json:"count"`
		Stats     models.Statistics `json:"stats"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &listResp))
	suite.Equal(1, listResp.Count)
	suite.Equal(2, listResp.Stats.Total)
	suite.Equal(1, listResp.Stats.Approved)
	suite.Equal(1, listResp.Stats.Pending)
	suite.Equal(1, listResp.Stats.ByCategory[models.BucketInnovators].Total)
}

func (suite *IntegrationTestSuite) TestBulkStatusUpdate() {
	var ids []uint
	for i := 0; i < 3; i++ {
		code, resp := suite.submitAbstract(validAbstract())
		suite.Equal(http.StatusCreated, code)
		var a models.Abstract
		suite.NoError(json.Unmarshal(resp["abstract"], &a))
		ids = append(ids, a.ID)
	}
	ids = append(ids, 9999)

	payload := models.BulkUpdateStatusRequest{
		IDs:      ids,
		Status:   models.StatusRejected,
		Comments: "Outside scope",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("PUT", "/api/v1/admin/abstracts/bulk-status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.adminToken)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	var bulkResp struct {
		Success bool                    `json:"success"`
		Result  models.BulkUpdateResult `json:"result"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &bulkResp))
	suite.Equal(3, bulkResp.Result.SucceededCount)
	suite.Equal(1, bulkResp.Result.FailedCount)
	suite.Equal([]uint{9999}, bulkResp.Result.Failed)

	req = httptest.NewRequest("GET", "/api/v1/admin/statistics", nil)
	req.Header.Set("Authorization", "Bearer "+suite.adminToken)

	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	var statsResp struct {
		Success bool              `json:"success"`
		Stats   models.Statistics `json:"stats"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &statsResp))
	suite.Equal(3, statsResp.Stats.Rejected)
}

func (suite *IntegrationTestSuite) TestEditBlockedAfterReview() {
	code, resp := suite.submitAbstract(validAbstract())
	suite.Equal(http.StatusCreated, code)

	var submitted models.Abstract
	suite.NoError(json.Unmarshal(resp["abstract"], &submitted))

	statusPayload := models.UpdateStatusRequest{Status: models.StatusApproved}
	body, _ := json.Marshal(statusPayload)
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/v1/admin/abstracts/%d/status", submitted.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.adminToken)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	updatePayload := models.UpdateAbstractRequest{Title: "Too late"}
	body, _ = json.Marshal(updatePayload)
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/v1/abstracts/%d", submitted.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestDeleteWhilePending() {
	code, resp := suite.submitAbstract(validAbstract())
	suite.Equal(http.StatusCreated, code)

	var submitted models.Abstract
	suite.NoError(json.Unmarshal(resp["abstract"], &submitted))

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/abstracts/%d", submitted.ID), nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/abstracts/user", nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var listResp struct {
		Count int `json:"count"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &listResp))
	suite.Equal(0, listResp.Count)
}

func (suite *IntegrationTestSuite) TestAdminRoutesRejectDelegates() {
	req := httptest.NewRequest("GET", "/api/v1/admin/abstracts", nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestProtectedRoutesRequireToken() {
	req := httptest.NewRequest("GET", "/api/v1/abstracts/user", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func RunSQLFile(db *gorm.DB, filepath string) error {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return err
	}
	return db.Exec(string(content)).Error
}
