package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/middleware"
	"github.com/noah-isme/exam-seating-api/internal/models"
)

// Handlers groups the API handlers mounted under the API prefix.
type Handlers struct {
	Seating   *SeatingHandler
	Halls     *HallHandler
	Subjects  *SubjectConfigHandler
	Students  *StudentHandler
	Downloads *DownloadHandler
	Metrics   *MetricsHandler
}

// RegisterRoutes mounts every API route on group. authenticate runs before all of them
// and successful writes are recorded on the audit logger.
func RegisterRoutes(group *gin.RouterGroup, h Handlers, authenticate gin.HandlerFunc, logger *zap.Logger) {
	secured := group.Group("")
	secured.Use(authenticate)

	admins := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	superAdmins := middleware.RequireRoles(models.RoleSuperAdmin)
	audit := func(action string) gin.HandlerFunc { return middleware.Audit(logger, action) }

	secured.POST("/generate", admins, audit("seating.generate"), h.Seating.Generate)
	secured.GET("/seating/:session", admins, h.Seating.Get)
	secured.GET("/sessions", admins, h.Seating.Sessions)
	secured.POST("/search", admins, h.Seating.Search)

	secured.GET("/halls", admins, h.Halls.List)
	secured.POST("/halls", admins, audit("halls.create"), h.Halls.Create)
	secured.POST("/halls/initialize", admins, audit("halls.initialize"), h.Halls.Initialize)
	secured.PUT("/halls/order", admins, audit("halls.order"), h.Halls.UpdateOrder)
	secured.PUT("/halls/:id", admins, audit("halls.update"), h.Halls.Update)
	secured.DELETE("/halls/:id", admins, audit("halls.delete"), h.Halls.Delete)
	secured.GET("/blocks", admins, h.Halls.ListBlocks)

	secured.GET("/config/subjects", admins, h.Subjects.List)
	secured.POST("/config/subjects", superAdmins, audit("subjects.add"), h.Subjects.Create)
	secured.DELETE("/config/subjects/:code", superAdmins, audit("subjects.remove"), h.Subjects.Delete)

	secured.POST("/students", admins, audit("students.upload"), h.Students.Upload)
	secured.GET("/students", admins, h.Students.List)
	secured.PUT("/students/:registerNumber/physically-challenged", admins, audit("students.physically_challenged"), h.Students.SetPhysicallyChallenged)
	secured.DELETE("/reset", admins, audit("students.reset"), h.Students.Reset)

	secured.GET("/download/hall-wise", admins, h.Downloads.HallWise)
	secured.GET("/download/student-wise", admins, h.Downloads.StudentWise)

	if h.Metrics != nil {
		secured.GET("/stats", superAdmins, h.Metrics.Stats)
	}
}
