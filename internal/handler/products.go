package handler

import (
	"net/http"

	"github.com/claudioasousa/Espetaria-PRO/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct{ svc service.ProductService }

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List godoc
// @Summary Lista o cardápio (produtos ativos, com categoria)
// @Tags produtos
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Router /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
