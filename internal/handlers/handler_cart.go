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

// cartHandler handles the shopping cart endpoints. The cart is the user's
// open draft quotation.
type cartHandler struct {
	cartService portssvc.CartSvcFacade
}

func newCartHandler(cartService portssvc.CartSvcFacade) *cartHandler {
	return &cartHandler{cartService: cartService}
}

func registerCartRoutes(rg *gin.RouterGroup, cartService portssvc.CartSvcFacade) {
	h := newCartHandler(cartService)
	cart := rg.Group("/cart")
	{
		cart.GET("", h.getCart)
		cart.PUT("/items", h.setItem)
		cart.POST("/apply-taxes", h.applyTaxes)
	}
}

func (h *cartHandler) userEmail(c *gin.Context, logger *slog.Logger) (string, bool) {
	email, ok := middleware.GetUserEmailFromContext(c)
	if !ok {
		logger.Warn("User email missing from token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token must carry an email claim"})
		return "", false
	}
	return email, true
}

func (h *cartHandler) writeCartError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Cart validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Cart record not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// getCart godoc
// @Summary Get the current user's cart
// @Description Returns the open draft quotation of the user's party, creating the quotation (and a lead for unknown users) on first access
// @Tags cart
// @Produce  json
// @Success 200 {object} dto.QuotationResponse "The cart quotation"
// @Failure 400 {object} map[string]string "Shopping cart disabled"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /cart [get]
func (h *cartHandler) getCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := h.userEmail(c, logger)
	if !ok {
		return
	}

	quotation, err := h.cartService.GetQuotation(c.Request.Context(), email)
	if err != nil {
		h.writeCartError(c, logger, "load cart", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToQuotationResponse(quotation))
}

// setItem godoc
// @Summary Add, update or remove a cart item
// @Description Sets the quantity of an item in the cart; zero removes the item. Totals are recomputed.
// @Tags cart
// @Accept  json
// @Produce  json
// @Param   item body dto.SetCartItemRequest true "Item and quantity"
// @Success 200 {object} dto.QuotationResponse "The updated cart"
// @Failure 400 {object} map[string]string "Invalid item or negative quantity"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No price for item"
// @Router /cart/items [put]
func (h *cartHandler) setItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.SetCartItemRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	email, ok := h.userEmail(c, logger)
	if !ok {
		return
	}

	quotation, err := h.cartService.SetItemInCart(c.Request.Context(), email, req.ItemCode, req.Qty)
	if err != nil {
		h.writeCartError(c, logger, "update cart", err)
		return
	}

	logger.Info("Cart item set", slog.String("item_code", req.ItemCode), slog.String("qty", req.Qty.String()))
	c.JSON(http.StatusOK, dto.ToQuotationResponse(quotation))
}

// applyTaxes godoc
// @Summary Apply the matching tax template to the cart
// @Description Resolves the tax rule applicable to the cart quotation and recomputes total taxes and charges
// @Tags cart
// @Produce  json
// @Success 200 {object} dto.QuotationResponse "The cart with taxes applied"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /cart/apply-taxes [post]
func (h *cartHandler) applyTaxes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := h.userEmail(c, logger)
	if !ok {
		return
	}

	quotation, err := h.cartService.ApplyTaxes(c.Request.Context(), email)
	if err != nil {
		h.writeCartError(c, logger, "apply taxes", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToQuotationResponse(quotation))
}
