package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wolfram-St/db-builder-prototype-prop/internal/responses"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/schema"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/services"
)

// SchemaHandler serves everything that works on a workspace's schema as a
// whole: interpreter action batches, imports, and exports.
type SchemaHandler struct {
	workspaceService *services.WorkspaceService
	sqlService       *services.SQLService
	diagramService   *services.DiagramService
}

func NewSchemaHandler(workspaceService *services.WorkspaceService, sqlService *services.SQLService, diagramService *services.DiagramService) *SchemaHandler {
	return &SchemaHandler{
		workspaceService: workspaceService,
		sqlService:       sqlService,
		diagramService:   diagramService,
	}
}

type applyActionsRequest struct {
	Actions []schema.Action `json:"actions"`
}

type importSchemaRequest struct {
	// Pointer so a missing tables array is distinguishable from an empty
	// one; the payload contract requires it to be present and a sequence.
	Tables    *[]schema.Table   `json:"tables"`
	Relations []schema.Relation `json:"relations"`
}

// ApplyActions handles POST /api/v1/workspaces/:id/actions
//
// The body is a batch from the AI interpreter. Invalid actions are skipped;
// the response reports exactly which actions were applied.
func (h *SchemaHandler) ApplyActions(c *gin.Context) {
	var req applyActionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	applied, err := h.workspaceService.ApplyActions(c.Param("id"), req.Actions)
	if err != nil {
		failFromService(c, err)
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"applied":      applied,
		"appliedCount": len(applied),
		"skippedCount": len(req.Actions) - len(applied),
	}, "Actions processed")
}

// ImportSchema handles POST /api/v1/workspaces/:id/import
func (h *SchemaHandler) ImportSchema(c *gin.Context) {
	var req importSchemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid schema payload")
		return
	}
	if req.Tables == nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Schema payload must contain a tables array")
		return
	}

	foreign := &schema.Graph{Tables: *req.Tables, Relations: req.Relations}
	result, err := h.workspaceService.Import(c.Param("id"), foreign)
	if err != nil {
		failFromService(c, err)
		return
	}
	responses.Success(c, http.StatusOK, result, "Schema imported")
}

// ExportSQL handles GET /api/v1/workspaces/:id/export/sql
func (h *SchemaHandler) ExportSQL(c *gin.Context) {
	ws := h.workspaceService.View(c.Param("id"))
	if ws == nil {
		responses.Fail(c, http.StatusNotFound, nil, "Workspace not found")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"sql": h.sqlService.Generate(ws.Graph),
	}, "")
}

// Diagram handles GET /api/v1/workspaces/:id/diagram
func (h *SchemaHandler) Diagram(c *gin.Context) {
	ws := h.workspaceService.View(c.Param("id"))
	if ws == nil {
		responses.Fail(c, http.StatusNotFound, nil, "Workspace not found")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"mermaid": h.diagramService.Mermaid(ws.Graph),
	}, "")
}

// RestoreSnapshot handles POST /api/v1/workspaces/:id/restore
func (h *SchemaHandler) RestoreSnapshot(c *gin.Context) {
	ok, err := h.workspaceService.RestoreSnapshot(c.Param("id"))
	if err != nil {
		failFromService(c, err)
		return
	}
	if !ok {
		responses.Fail(c, http.StatusNotFound, nil, "No snapshot found for this workspace")
		return
	}
	responses.Success(c, http.StatusOK, nil, "Workspace restored from snapshot")
}

// ActionHistory handles GET /api/v1/workspaces/:id/actions/history
func (h *SchemaHandler) ActionHistory(c *gin.Context) {
	batches, err := h.workspaceService.History(c.Param("id"), 20)
	if err != nil {
		failFromService(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"batches": batches}, "")
}
