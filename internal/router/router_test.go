package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vpvn/bugreports/internal/config"
	"github.com/vpvn/bugreports/internal/infra/db/dbtest"
	"github.com/vpvn/bugreports/internal/modules/handler"
	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"github.com/vpvn/bugreports/internal/modules/service"
	"github.com/vpvn/bugreports/internal/pkg/bugid"
)

const adminToken = "br-admin-secret"

type testApp struct {
	db          *gorm.DB
	router      *gin.Engine
	viewerToken string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.Name = "bugreports"
	cfg.Root.OperatorTokenPrefix = "br-"
	cfg.Root.SecretPepper = "pepper"
	cfg.Root.EnableArgon2Verification = true

	gdb := dbtest.New(t)
	projects := repo.NewProjectRepo(gdb)
	bugs := repo.NewBugRepo(gdb)
	occasions := repo.NewOccasionRepo(gdb)

	projectSvc := service.NewProjectService(projects)
	bugSvc := service.NewBugService(bugs, projects)
	occasionSvc := service.NewOccasionService(occasions, bugs)
	reportSvc := service.NewReportService(repo.NewTransactor(gdb), bugSvc, occasionSvc, repo.NewReportRepo(gdb), nil, zap.NewNop(), cfg)
	operatorSvc := service.NewOperatorService(repo.NewOperatorRepo(gdb), cfg)

	ctx := context.Background()
	_, _, err := operatorSvc.Ensure(ctx, "root", adminToken, true)
	require.NoError(t, err)
	_, viewer, err := operatorSvc.Create(ctx, "viewer", false)
	require.NoError(t, err)

	r := NewRouter(RouterDeps{
		Config:          cfg,
		Log:             zap.NewNop(),
		Auth:            operatorSvc,
		ReportHandler:   handler.NewReportHandler(reportSvc),
		ProjectHandler:  handler.NewProjectHandler(projectSvc),
		BugHandler:      handler.NewBugHandler(bugSvc, occasionSvc),
		OccasionHandler: handler.NewOccasionHandler(occasionSvc),
	})
	return &testApp{db: gdb, router: r, viewerToken: viewer}
}

func (a *testApp) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) createProject(t *testing.T) {
	t.Helper()
	w := a.do(http.MethodPost, "/api/buggyproject/", adminToken, `{"id":"test","name":"Test buggy project"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

const scenarioReport = `{"project_id":"test","exception_text":"Test exception","email":"a@b.com","ip":"127.0.0.1","os":"linux","details":"no details here"}`

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/health", "", "").Code)
}

func TestReports_Access(t *testing.T) {
	app := newTestApp(t)
	app.createProject(t)

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/reports/", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/reports/", "br-wrong", "").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/reports/", app.viewerToken, "").Code)

	w := app.do(http.MethodPost, "/api/reports/", "", scenarioReport)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestReports_Scenario(t *testing.T) {
	app := newTestApp(t)
	app.createProject(t)

	for i := 0; i < 2; i++ {
		w := app.do(http.MethodPost, "/api/reports/", "", scenarioReport)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var bugs []model.Bug
	require.NoError(t, app.db.Find(&bugs).Error)
	require.Len(t, bugs, 1)
	assert.Equal(t, "Test exception", bugs[0].ExceptionText)
	assert.Equal(t, bugid.New("test", "Test exception"), bugs[0].BugUUID)

	var occasions []model.Occasion
	require.NoError(t, app.db.Where("bug_id = ?", bugs[0].ID).Find(&occasions).Error)
	require.Len(t, occasions, 2)
	for _, o := range occasions {
		assert.Equal(t, "a@b.com", *o.Email)
		assert.Equal(t, "linux", *o.OS)
		assert.Equal(t, "no details here", *o.Details)
		// httptest requests come from 192.0.2.1
		assert.Equal(t, "192.0.2.1", *o.IP)
	}

	w := app.do(http.MethodGet, "/api/reports/", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Data []repo.ReportRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Data, 2)
}

func TestReports_EchoUsesRemoteIP(t *testing.T) {
	app := newTestApp(t)
	app.createProject(t)

	w := app.do(http.MethodPost, "/api/reports", "", scenarioReport)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data service.ReportOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "test", res.Data.ProjectID)
	assert.Equal(t, "Test exception", res.Data.ExceptionText)
	assert.Equal(t, "192.0.2.1", *res.Data.IP)
}

func TestReports_UnknownProject(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/reports/", "", scenarioReport)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Can't find project with id 'test'")

	var n int64
	require.NoError(t, app.db.Model(&model.Bug{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, app.db.Model(&model.Occasion{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestReports_TrailingWhitespaceSameBug(t *testing.T) {
	app := newTestApp(t)
	app.createProject(t)

	w := app.do(http.MethodPost, "/api/reports/", "", `{"project_id":"test","exception_text":"Test exception\n"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Data service.ReportOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Test exception", res.Data.ExceptionText)

	w = app.do(http.MethodPost, "/api/reports/", "", `{"project_id":"test","exception_text":"Test exception"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var bugs []model.Bug
	require.NoError(t, app.db.Find(&bugs).Error)
	require.Len(t, bugs, 1)
	assert.Equal(t, bugid.New("test", "Test exception"), bugs[0].BugUUID)

	var n int64
	require.NoError(t, app.db.Model(&model.Occasion{}).Where("bug_id = ?", bugs[0].ID).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestReports_ListReturnsAllRows(t *testing.T) {
	app := newTestApp(t)
	app.createProject(t)

	for i := 0; i < 150; i++ {
		body := fmt.Sprintf(`{"project_id":"test","exception_text":"e%d"}`, i)
		require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/reports/", "", body).Code)
	}

	list := func(query string) []repo.ReportRow {
		w := app.do(http.MethodGet, "/api/reports/"+query, adminToken, "")
		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Data []repo.ReportRow `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		return res.Data
	}
	assert.Len(t, list(""), 150)
	assert.Len(t, list("?limit=20&offset=140"), 10)
}

func TestReports_Validation(t *testing.T) {
	app := newTestApp(t)
	app.createProject(t)

	for _, body := range []string{
		`{"project_id":"test","exception_text":""}`,
		`{"project_id":"test","exception_text":"x","os":"macos"}`,
		`{"project_id":"test","exception_text":"x","email":"nope"}`,
		`{"exception_text":"x"}`,
		`{"project_id":"test","exception_text":"x","email":""}`,
		`{"project_id":"   ","exception_text":"x"}`,
	} {
		w := app.do(http.MethodPost, "/api/reports/", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	var n int64
	require.NoError(t, app.db.Model(&model.Occasion{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAdminSurface(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/bug/", "", "").Code)
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/api/bug/", app.viewerToken, "").Code)
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodPost, "/api/buggyproject/", app.viewerToken, `{"id":"x","name":"x"}`).Code)

	app.createProject(t)
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/reports/", "", scenarioReport).Code)

	w := app.do(http.MethodGet, "/api/bug/?project=test", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data service.ListBugsOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data.Items, 1)
	bugID := list.Data.Items[0].ID

	w = app.do(http.MethodPost, "/api/occusian/", adminToken, `{"bug":`+itoa(bugID)+`,"ip":"8.8.8.8","os":"win"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data model.Occasion `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "192.0.2.1", *created.Data.IP)

	w = app.do(http.MethodGet, "/api/occusian/?os=win&bug__project=test", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var occs struct {
		Data service.ListOccasionsOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &occs))
	assert.Len(t, occs.Data.Items, 1)

	// deleting the project takes bugs and occasions with it
	assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/api/buggyproject/test", adminToken, "").Code)
	var n int64
	require.NoError(t, app.db.Model(&model.Occasion{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/bug/"+itoa(bugID)+"/", adminToken, "").Code)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
