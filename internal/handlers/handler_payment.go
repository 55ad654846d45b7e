package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finpoint/erp_backend/internal/apperrors"
	portssvc "github.com/finpoint/erp_backend/internal/core/ports/services"
	"github.com/finpoint/erp_backend/internal/dto"
	"github.com/finpoint/erp_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests for the payment tool.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)
	payments := rg.Group("/payment-tool")
	{
		payments.GET("/outstanding-vouchers", h.listOutstandingVouchers)
		payments.GET("/against-voucher-amount", h.getAgainstVoucherAmount)
		payments.POST("/journal-entry", h.buildJournalEntry)
	}
}

// buildJournalEntry godoc
// @Summary Build a balanced journal entry from payment rows
// @Description Constructs an unsaved journal entry applying payment amounts against outstanding vouchers
// @Tags payment-tool
// @Accept  json
// @Produce  json
// @Param   request body dto.BuildJournalEntryRequest true "Payment allocation"
// @Success 200 {object} dto.JournalEntryResponse "The built journal entry"
// @Failure 400 {object} map[string]string "Invalid request or no payment amount set"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build journal entry"
// @Router /payment-tool/journal-entry [post]
func (h *paymentHandler) buildJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.BuildJournalEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for BuildJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("party", req.Party), slog.String("party_type", req.PartyType))

	entry, err := h.paymentService.BuildJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error building journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Referenced record not found", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to build journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build journal entry"})
		}
		return
	}

	logger.Info("Journal entry built", slog.Int("lines", len(entry.Lines)))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listOutstandingVouchers godoc
// @Summary List outstanding vouchers of a party
// @Description Returns unpaid invoices and not-fully-billed orders for the party on the given account
// @Tags payment-tool
// @Produce  json
// @Param   company query string true "Company"
// @Param   party query string true "Party name"
// @Param   partyType query string true "Customer or Supplier"
// @Param   partyAccount query string true "Receivable or payable account"
// @Param   receivedOrPaid query string true "Received or Paid"
// @Success 200 {array} dto.OutstandingVoucherResponse "Outstanding vouchers"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Missing payment tool capability"
// @Failure 500 {object} map[string]string "Failed to list outstanding vouchers"
// @Router /payment-tool/outstanding-vouchers [get]
func (h *paymentHandler) listOutstandingVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	q := dto.OutstandingVouchersQuery{}
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Invalid outstanding voucher query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vouchers, err := h.paymentService.ListOutstandingVouchers(c.Request.Context(), q, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Outstanding voucher listing forbidden", slog.String("user_id", userID))
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error listing outstanding vouchers", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Record not found listing outstanding vouchers", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to list outstanding vouchers", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list outstanding vouchers"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOutstandingVoucherResponses(vouchers))
}

// getAgainstVoucherAmount godoc
// @Summary Get total and outstanding amounts of a voucher
// @Description Returns the amounts of a single referenced voucher, in the account currency of the party account
// @Tags payment-tool
// @Produce  json
// @Param   againstVoucherType query string true "Voucher type"
// @Param   againstVoucherNo query string true "Voucher number"
// @Param   partyAccount query string true "Receivable or payable account"
// @Param   company query string true "Company"
// @Success 200 {object} domain.VoucherAmount "Voucher amounts"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to get voucher amount"
// @Router /payment-tool/against-voucher-amount [get]
func (h *paymentHandler) getAgainstVoucherAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	q := dto.AgainstVoucherAmountQuery{}
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Invalid voucher amount query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	amount, err := h.paymentService.GetAgainstVoucherAmount(c.Request.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error getting voucher amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Voucher not found", slog.String("voucher_no", q.AgainstVoucherNo))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to get voucher amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get voucher amount"})
		}
		return
	}

	c.JSON(http.StatusOK, amount)
}
