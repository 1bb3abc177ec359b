package handler

import (
	"net/http"

	"github.com/claudioasousa/Espetaria-PRO/internal/apierror"
	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct{ svc service.OrderService }

func NewOrderHandler(svc service.OrderService) *OrderHandler { return &OrderHandler{svc: svc} }

// Create godoc
// @Summary Cria um novo pedido para uma mesa
// @Tags pedidos
// @Accept json
// @Produce json
// @Param body body dto.CreateOrderRequest true "Dados do pedido"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lista pedidos (por padrão, apenas os não pagos, mais antigos primeiro)
// @Tags pedidos
// @Produce json
// @Param status query string false "Filtra por status"
// @Param table query int false "Filtra por mesa"
// @Param all query bool false "Inclui pedidos pagos"
// @Success 200 {array} dto.OrderResponse
// @Router /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parâmetros inválidos: "+err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary Avança o status de um pedido (cozinha) ou o liquida (caixa)
// @Tags pedidos
// @Accept json
// @Produce json
// @Param id path string true "ID do pedido"
// @Param body body dto.UpdateOrderStatusRequest true "Novo status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
