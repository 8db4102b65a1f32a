package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Wolfram-St/db-builder-prototype-prop/internal/handlers"
)

type WorkspaceRoutes struct {
	handler *handlers.WorkspaceHandler
}

func NewWorkspaceRoutes(handler *handlers.WorkspaceHandler) *WorkspaceRoutes {
	return &WorkspaceRoutes{handler: handler}
}

func (r *WorkspaceRoutes) RegisterRoutes(router *gin.RouterGroup) {
	workspaces := router.Group("/workspaces")
	{
		workspaces.POST("", r.handler.CreateWorkspace)
		workspaces.GET("", r.handler.ListWorkspaces)
		workspaces.GET("/:id", r.handler.GetWorkspace)
		workspaces.DELETE("/:id", r.handler.DeleteWorkspace)

		workspaces.POST("/:id/tables", r.handler.CreateTable)
		workspaces.POST("/:id/tables/:tableId/columns", r.handler.AddColumn)
		workspaces.PATCH("/:id/tables/:tableId", r.handler.RenameTable)
		workspaces.DELETE("/:id/tables/:tableId", r.handler.DeleteTable)

		workspaces.POST("/:id/relations", r.handler.CreateRelation)
	}
}
