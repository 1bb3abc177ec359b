package handler

import (
	"net/http"
	"strconv"

	"github.com/claudioasousa/Espetaria-PRO/internal/apierror"
	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/service"

	"github.com/gin-gonic/gin"
)

type TableHandler struct{ svc service.TableService }

func NewTableHandler(svc service.TableService) *TableHandler { return &TableHandler{svc: svc} }

func tableNumber(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("número de mesa inválido"))
		return 0, false
	}
	return n, true
}

// List godoc
// @Summary Lista todas as mesas com seu status de ocupação
// @Tags mesas
// @Produce json
// @Success 200 {array} dto.TableResponse
// @Router /api/tables [get]
func (h *TableHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Bill godoc
// @Summary Conta consolidada da mesa (pedidos não pagos, itens agrupados)
// @Tags mesas
// @Produce json
// @Param number path int true "Número da mesa"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/tables/{number}/bill [get]
func (h *TableHandler) Bill(c *gin.Context) {
	number, ok := tableNumber(c)
	if !ok {
		return
	}
	resp, err := h.svc.Bill(c.Request.Context(), number)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pay godoc
// @Summary Liquida todos os pedidos em aberto da mesa em uma única transação
// @Tags mesas
// @Accept json
// @Produce json
// @Param number path int true "Número da mesa"
// @Param body body dto.PayTableRequest true "Forma de pagamento"
// @Success 200 {object} dto.PayTableResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /api/tables/{number}/pay [post]
func (h *TableHandler) Pay(c *gin.Context) {
	number, ok := tableNumber(c)
	if !ok {
		return
	}
	var req dto.PayTableRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Pay(c.Request.Context(), number, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
