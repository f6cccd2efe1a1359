package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maitri-app/maitri-backend/internal/config"
	"github.com/maitri-app/maitri-backend/internal/handlers"
	"github.com/maitri-app/maitri-backend/internal/models"
	"github.com/maitri-app/maitri-backend/internal/routes"
	"github.com/maitri-app/maitri-backend/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.Like{},
		&models.Comment{},
	))

	cfg := &config.Config{
		AdminUsername: "admin",
		AdminPassword: "hunter2",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		AITimeout:     5 * time.Second,
	}

	userService := services.NewUserService(db)
	reportService := services.NewReportService(db, userService)
	engagementService := services.NewEngagementService(db, userService)
	adminService := services.NewAdminService(cfg)
	analysisService := services.NewAnalysisService(cfg)
	storageService, err := services.NewStorageService(cfg)
	require.NoError(t, err)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewHealthHandler(db),
		handlers.NewReportHandler(reportService, engagementService),
		handlers.NewAdminHandler(adminService, reportService, cfg.SessionTTL),
		handlers.NewAnalyzeHandler(analysisService),
		handlers.NewUploadHandler(storageService),
	)

	return &testApp{app: app, db: db, cfg: cfg}
}

func (ta *testApp) request(t *testing.T, method, path string, body interface{}, cookie string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: handlers.SessionCookieName, Value: cookie})
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (ta *testApp) requestList(t *testing.T, path string) (*http.Response, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded []map[string]interface{}
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// login authenticates with the fixture credentials and returns the session
// cookie value.
func (ta *testApp) login(t *testing.T) string {
	t.Helper()

	resp, _ := ta.request(t, http.MethodPost, "/api/admin/login", fiber.Map{
		"username": "admin", "password": "hunter2",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == handlers.SessionCookieName {
			require.NotEmpty(t, c.Value)
			return c.Value
		}
	}
	t.Fatal("login response did not set session cookie")
	return ""
}
