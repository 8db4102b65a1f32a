package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wolfram-St/db-builder-prototype-prop/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, workspaceHandler *handlers.WorkspaceHandler, schemaHandler *handlers.SchemaHandler) {
	api := router.Group("/api/v1")

	workspaceRoutes := NewWorkspaceRoutes(workspaceHandler)
	workspaceRoutes.RegisterRoutes(api)

	schemaRoutes := NewSchemaRoutes(schemaHandler)
	schemaRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
