package main

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-admin-api/internal/handler"
	"github.com/noah-isme/campus-admin-api/internal/middleware"
	"github.com/noah-isme/campus-admin-api/internal/models"
)

type handlers struct {
	leads           *handler.LeadHandler
	colleges        *handler.CollegeHandler
	courses         *handler.CourseHandler
	specializations *handler.SpecializationHandler
	exports         *handler.ExportHandler
	metrics         *handler.MetricsHandler
}

type catalogRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	BulkUpdateStatus(c *gin.Context)
	ToggleFeatured(c *gin.Context)
	Stats(c *gin.Context)
}

var (
	staffRoles   = []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin, models.RoleEditor}
	managerRoles = []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin}
)

// registerRoutes mounts the public and admin surfaces under prefix.
func registerRoutes(r *gin.Engine, prefix string, verifier middleware.TokenValidator, h handlers) {
	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())

	api.POST("/leads", h.leads.Create)
	api.GET("/colleges", h.colleges.ListPublic)
	api.GET("/colleges/:slug", h.colleges.GetBySlug)
	if h.exports != nil {
		api.GET("/exports/:token", h.exports.Download)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(verifier), middleware.RequireRoles(staffRoles...))

	leads := admin.Group("/leads")
	leads.GET("", h.leads.List)
	leads.GET("/analytics", h.leads.Analytics)
	leads.GET("/summary", h.leads.Summary)
	leads.GET("/sources", h.leads.Sources)
	leads.GET("/export", h.leads.ExportData)
	leads.POST("/bulk-status", h.leads.BulkUpdateStatus)
	if h.exports != nil {
		leads.POST("/exports", h.exports.Create)
		leads.GET("/exports/:id", h.exports.Status)
	}
	leads.GET("/:id", h.leads.Get)
	leads.PATCH("/:id/status", h.leads.UpdateStatus)
	leads.PATCH("/:id/notes", h.leads.UpdateNotes)

	mountCatalog(admin.Group("/colleges"), h.colleges)
	mountCatalog(admin.Group("/courses"), h.courses)
	mountCatalog(admin.Group("/specializations"), h.specializations)

	admin.GET("/system/metrics", middleware.RequireRoles(managerRoles...), h.metrics.System)
}

func mountCatalog(group *gin.RouterGroup, h catalogRoutes) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/stats", h.Stats)
	group.POST("/bulk-status", middleware.RequireRoles(managerRoles...), h.BulkUpdateStatus)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", middleware.RequireRoles(managerRoles...), h.Delete)
	group.PATCH("/:id/featured", h.ToggleFeatured)
}
