package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/vpvn/bugreports/docs"
	"github.com/vpvn/bugreports/internal/config"
	"github.com/vpvn/bugreports/internal/middleware"
	"github.com/vpvn/bugreports/internal/modules/handler"
	"github.com/vpvn/bugreports/internal/modules/serializer"
	"github.com/vpvn/bugreports/internal/telemetry"
)

// DefaultPolicy opens report submission to anyone, lets any operator read
// reports and reserves everything else for admins.
var DefaultPolicy = middleware.Policy{
	"reports.create": middleware.LevelPublic,
	"reports.list":   middleware.LevelAuthenticated,
}

type RouterDeps struct {
	Config *config.Config
	Log    *zap.Logger
	Auth   middleware.Authenticator
	// Limiter throttles report submission; nil disables it.
	Limiter middleware.Limiter
	Policy  middleware.Policy

	ReportHandler   *handler.ReportHandler
	ProjectHandler  *handler.ProjectHandler
	BugHandler      *handler.BugHandler
	OccasionHandler *handler.OccasionHandler
}

type route struct {
	op      string
	method  string
	path    string
	handler gin.HandlerFunc
	extra   []gin.HandlerFunc
}

func NewRouter(d RouterDeps) *gin.Engine {
	policy := d.Policy
	if policy == nil {
		policy = DefaultPolicy
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var intake []gin.HandlerFunc
	if d.Limiter != nil && d.Config.RateLimit.Enabled {
		intake = append(intake, middleware.RateLimit(d.Limiter, d.Log))
	}

	routes := []route{
		{"reports.create", http.MethodPost, "/reports/", d.ReportHandler.SubmitReport, intake},
		{"reports.list", http.MethodGet, "/reports/", d.ReportHandler.ListReports, nil},

		{"projects.list", http.MethodGet, "/buggyproject/", d.ProjectHandler.ListProjects, nil},
		{"projects.create", http.MethodPost, "/buggyproject/", d.ProjectHandler.CreateProject, nil},
		{"projects.get", http.MethodGet, "/buggyproject/:id/", d.ProjectHandler.GetProject, nil},
		{"projects.update", http.MethodPut, "/buggyproject/:id/", d.ProjectHandler.UpdateProject, nil},
		{"projects.update", http.MethodPatch, "/buggyproject/:id/", d.ProjectHandler.UpdateProject, nil},
		{"projects.delete", http.MethodDelete, "/buggyproject/:id/", d.ProjectHandler.DeleteProject, nil},

		{"bugs.list", http.MethodGet, "/bug/", d.BugHandler.ListBugs, nil},
		{"bugs.create", http.MethodPost, "/bug/", d.BugHandler.CreateBug, nil},
		{"bugs.get", http.MethodGet, "/bug/:id/", d.BugHandler.GetBug, nil},
		{"bugs.update", http.MethodPut, "/bug/:id/", d.BugHandler.UpdateBug, nil},
		{"bugs.update", http.MethodPatch, "/bug/:id/", d.BugHandler.PatchBug, nil},
		{"bugs.delete", http.MethodDelete, "/bug/:id/", d.BugHandler.DeleteBug, nil},
		{"bugs.occasions", http.MethodGet, "/bug/:id/occasions/", d.BugHandler.ListBugOccasions, nil},

		{"occasions.list", http.MethodGet, "/occusian/", d.OccasionHandler.ListOccasions, nil},
		{"occasions.create", http.MethodPost, "/occusian/", d.OccasionHandler.CreateOccasion, nil},
		{"occasions.get", http.MethodGet, "/occusian/:id/", d.OccasionHandler.GetOccasion, nil},
		{"occasions.update", http.MethodPut, "/occusian/:id/", d.OccasionHandler.UpdateOccasion, nil},
		{"occasions.update", http.MethodPatch, "/occusian/:id/", d.OccasionHandler.PatchOccasion, nil},
		{"occasions.delete", http.MethodDelete, "/occusian/:id/", d.OccasionHandler.DeleteOccasion, nil},
	}

	api := r.Group("/api")
	api.Use(middleware.Authenticate(d.Auth))
	for _, rt := range routes {
		chain := append([]gin.HandlerFunc{middleware.Access(policy, rt.op)}, rt.extra...)
		chain = append(chain, rt.handler)
		// served with and without the trailing slash, no redirects
		api.Handle(rt.method, rt.path, chain...)
		api.Handle(rt.method, strings.TrimSuffix(rt.path, "/"), chain...)
	}
	return r
}
