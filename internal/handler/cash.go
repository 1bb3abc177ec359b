package handler

import (
	"net/http"
	"strconv"

	"github.com/claudioasousa/Espetaria-PRO/internal/apierror"
	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashHandler struct{ svc service.CashService }

func NewCashHandler(svc service.CashService) *CashHandler { return &CashHandler{svc: svc} }

// Open godoc
// @Summary Abre uma nova sessão de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Param body body dto.OpenCashRequest true "Saldo inicial"
// @Success 201 {object} dto.CashSessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/cash/open [post]
func (h *CashHandler) Open(c *gin.Context) {
	var req dto.OpenCashRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Fecha a sessão de caixa, registrando o saldo esperado
// @Tags caixa
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/cash/close/{id} [post]
func (h *CashHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Transaction godoc
// @Summary Registra um aporte ou sangria na sessão aberta
// @Tags caixa
// @Accept json
// @Produce json
// @Param body body dto.CashTransactionRequest true "Movimentação manual"
// @Success 201 {object} dto.CashTransactionResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/cash/transaction [post]
func (h *CashHandler) Transaction(c *gin.Context) {
	var req dto.CashTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddTransaction(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Active returns the open session with transactions and the live summary.
func (h *CashHandler) Active(c *gin.Context) {
	resp, err := h.svc.Active(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sessions returns a paginated list of closed cash sessions.
func (h *CashHandler) Sessions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, err := h.svc.History(c.Request.Context(), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
