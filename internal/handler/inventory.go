package handler

import (
	"net/http"

	"github.com/claudioasousa/Espetaria-PRO/internal/apierror"
	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List godoc
// @Summary Lista os insumos do estoque
// @Tags estoque
// @Produce json
// @Success 200 {array} dto.InventoryItemResponse
// @Router /api/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Restock godoc
// @Summary Repõe estoque de um insumo (delta aditivo)
// @Tags estoque
// @Accept json
// @Produce json
// @Param id path string true "ID do insumo"
// @Param body body dto.RestockRequest true "Quantidade a adicionar"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/inventory/{id}/restock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RestockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Restock(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alerts returns items at or below their minimum stock level.
func (h *InventoryHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.Alerts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
