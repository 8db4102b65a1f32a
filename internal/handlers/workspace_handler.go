package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wolfram-St/db-builder-prototype-prop/internal/responses"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/schema"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/services"
)

// WorkspaceHandler serves workspace lifecycle and direct structural edits
// made from the canvas (as opposed to interpreter actions, which go through
// the SchemaHandler).
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

type createTableRequest struct {
	Name     string              `json:"name"`
	Columns  []schema.ColumnSpec `json:"columns"`
	Position *schema.Position    `json:"position,omitempty"`
}

type renameTableRequest struct {
	NewName string `json:"newName" binding:"required"`
}

type createRelationRequest struct {
	FromTableID  string                 `json:"fromTableId" binding:"required"`
	FromColumnID string                 `json:"fromColumnId" binding:"required"`
	ToTableID    string                 `json:"toTableId" binding:"required"`
	ToColumnID   string                 `json:"toColumnId" binding:"required"`
	Cardinality  schema.Cardinality     `json:"cardinality"`
	DeleteRule   schema.ReferentialRule `json:"deleteRule"`
	UpdateRule   schema.ReferentialRule `json:"updateRule"`
}

// CreateWorkspace handles POST /api/v1/workspaces
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	if req.Name == "" {
		req.Name = "Untitled workspace"
	}

	ws := h.workspaceService.Create(req.Name)
	responses.Success(c, http.StatusCreated, h.workspaceService.View(ws.ID), "Workspace created")
}

// ListWorkspaces handles GET /api/v1/workspaces
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	responses.Success(c, http.StatusOK, h.workspaceService.ListViews(), "")
}

// GetWorkspace handles GET /api/v1/workspaces/:id
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	ws := h.workspaceService.View(c.Param("id"))
	if ws == nil {
		responses.Fail(c, http.StatusNotFound, nil, "Workspace not found")
		return
	}
	responses.Success(c, http.StatusOK, ws, "")
}

// DeleteWorkspace handles DELETE /api/v1/workspaces/:id
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	if !h.workspaceService.Delete(c.Param("id")) {
		responses.Fail(c, http.StatusNotFound, nil, "Workspace not found")
		return
	}
	responses.Success(c, http.StatusOK, nil, "Workspace deleted")
}

// CreateTable handles POST /api/v1/workspaces/:id/tables
func (h *WorkspaceHandler) CreateTable(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	table, err := h.workspaceService.CreateTable(c.Param("id"), req.Name, req.Columns, req.Position)
	if err != nil {
		failFromService(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, table, "Table created")
}

// AddColumn handles POST /api/v1/workspaces/:id/tables/:tableId/columns
func (h *WorkspaceHandler) AddColumn(c *gin.Context) {
	var spec schema.ColumnSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	column, err := h.workspaceService.AddColumn(c.Param("id"), c.Param("tableId"), spec)
	if err != nil {
		failFromService(c, err)
		return
	}
	if column == nil {
		responses.Fail(c, http.StatusNotFound, nil, "Table not found")
		return
	}
	responses.Success(c, http.StatusCreated, column, "Column added")
}

// RenameTable handles PATCH /api/v1/workspaces/:id/tables/:tableId
func (h *WorkspaceHandler) RenameTable(c *gin.Context) {
	var req renameTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	ok, err := h.workspaceService.RenameTable(c.Param("id"), c.Param("tableId"), req.NewName)
	if err != nil {
		failFromService(c, err)
		return
	}
	if !ok {
		responses.Fail(c, http.StatusNotFound, nil, "Table not found")
		return
	}
	responses.Success(c, http.StatusOK, nil, "Table renamed")
}

// DeleteTable handles DELETE /api/v1/workspaces/:id/tables/:tableId
func (h *WorkspaceHandler) DeleteTable(c *gin.Context) {
	ok, err := h.workspaceService.DeleteTable(c.Param("id"), c.Param("tableId"))
	if err != nil {
		failFromService(c, err)
		return
	}
	if !ok {
		responses.Fail(c, http.StatusNotFound, nil, "Table not found")
		return
	}
	responses.Success(c, http.StatusOK, nil, "Table deleted")
}

// CreateRelation handles POST /api/v1/workspaces/:id/relations
func (h *WorkspaceHandler) CreateRelation(c *gin.Context) {
	var req createRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	relation, err := h.workspaceService.CreateRelation(c.Param("id"),
		req.FromTableID, req.FromColumnID,
		req.ToTableID, req.ToColumnID,
		req.Cardinality, req.DeleteRule, req.UpdateRule,
	)
	if err != nil {
		failFromService(c, err)
		return
	}
	if relation == nil {
		responses.Fail(c, http.StatusNotFound, nil, "Relation endpoint not found")
		return
	}
	responses.Success(c, http.StatusCreated, relation, "Relation created")
}

func failFromService(c *gin.Context, err error) {
	if errors.Is(err, services.ErrWorkspaceNotFound) {
		responses.Fail(c, http.StatusNotFound, err, "Workspace not found")
		return
	}
	responses.Fail(c, http.StatusInternalServerError, err, "Internal error")
}
