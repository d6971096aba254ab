// Package http exposes the form operations over a gin API.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/handyzentrum/shopdocs/internal/http/middleware"
	"github.com/handyzentrum/shopdocs/internal/model"
	"github.com/handyzentrum/shopdocs/internal/service"
)

type Handler struct {
	contracts *service.ContractService
	receipts  *service.ReceiptService
	company   model.Company
	log       zerolog.Logger
}

func NewHandler(
	contracts *service.ContractService,
	receipts *service.ReceiptService,
	company model.Company,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		contracts: contracts,
		receipts:  receipts,
		company:   company,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/company", h.companyInfo)
	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts", h.listContracts)
	protected.GET("/contracts/export", h.exportContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.PUT("/contracts/:id", h.updateContract)
	protected.DELETE("/contracts/:id", h.deleteContract)
	protected.POST("/receipts", h.createReceipt)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// companyInfo feeds the form's prefill of the shop's own party block.
func (h *Handler) companyInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        h.company.Name,
		"street":      h.company.Street,
		"postal_city": h.company.PostalCity,
		"phone":       h.company.Phone,
		"email":       h.company.Email,
	})
}

func (h *Handler) createContract(c *gin.Context) {
	var input service.CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.contracts.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.log.Info().
		Str("operator", middleware.Operator(c)).
		Str("code", result.Code).
		Msg("contract created")
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) listContracts(c *gin.Context) {
	records, err := h.contracts.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	record, err := h.contracts.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.contracts.Update(c.Request.Context(), id, input); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.contracts.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportContracts(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	result, err := h.contracts.Export(c.Request.Context(), format)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.MIME, result.Content)
}

func (h *Handler) createReceipt(c *gin.Context) {
	var input service.CreateReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.receipts.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.log.Info().
		Str("operator", middleware.Operator(c)).
		Str("number", result.Number).
		Msg("receipt created")
	c.JSON(http.StatusCreated, result)
}

// handleError translates service failures into one user-facing response.
// Every failure surfaces; nothing is swallowed.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRender):
		h.log.Error().Err(err).Msg("document render failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStorage):
		h.log.Error().Err(err).Msg("storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
