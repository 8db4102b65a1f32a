package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Wolfram-St/db-builder-prototype-prop/internal/handlers"
)

type SchemaRoutes struct {
	handler *handlers.SchemaHandler
}

func NewSchemaRoutes(handler *handlers.SchemaHandler) *SchemaRoutes {
	return &SchemaRoutes{handler: handler}
}

func (r *SchemaRoutes) RegisterRoutes(router *gin.RouterGroup) {
	workspaces := router.Group("/workspaces")
	{
		workspaces.POST("/:id/actions", r.handler.ApplyActions)
		workspaces.GET("/:id/actions/history", r.handler.ActionHistory)
		workspaces.POST("/:id/import", r.handler.ImportSchema)
		workspaces.GET("/:id/export/sql", r.handler.ExportSQL)
		workspaces.GET("/:id/diagram", r.handler.Diagram)
		workspaces.POST("/:id/restore", r.handler.RestoreSnapshot)
	}
}
