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

// taxRuleHandler handles HTTP requests for tax rule administration and
// transaction-time template resolution.
type taxRuleHandler struct {
	taxRuleService portssvc.TaxRuleSvcFacade
}

func newTaxRuleHandler(taxRuleService portssvc.TaxRuleSvcFacade) *taxRuleHandler {
	return &taxRuleHandler{taxRuleService: taxRuleService}
}

func registerTaxRuleRoutes(rg *gin.RouterGroup, taxRuleService portssvc.TaxRuleSvcFacade) {
	h := newTaxRuleHandler(taxRuleService)
	taxRules := rg.Group("/tax-rules")
	{
		taxRules.POST("", h.createTaxRule)
		taxRules.GET("", h.listTaxRules)
		taxRules.GET("/:ruleID", h.getTaxRule)
		taxRules.PUT("/:ruleID", h.updateTaxRule)
		taxRules.DELETE("/:ruleID", h.deleteTaxRule)
		taxRules.POST("/resolve", h.resolveTaxTemplate)
		taxRules.GET("/party-details", h.getPartyDetails)
	}
}

// writeTaxRuleError maps service errors onto HTTP responses shared by the
// mutation endpoints.
func (h *taxRuleHandler) writeTaxRuleError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Tax rule "+action+" forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Tax rule "+action+" conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Tax rule "+action+" validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Tax rule not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" tax rule", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " tax rule"})
	}
}

// createTaxRule godoc
// @Summary Create a tax rule
// @Description Validates and persists a new tax rule; rejects rules that conflict with an existing rule of equal priority
// @Tags tax-rules
// @Accept  json
// @Produce  json
// @Param   rule body dto.SaveTaxRuleRequest true "Tax rule"
// @Success 201 {object} dto.TaxRuleResponse "The created rule"
// @Failure 400 {object} map[string]string "Invalid rule"
// @Failure 403 {object} map[string]string "Missing tax rule capability"
// @Failure 409 {object} map[string]string "Conflicting tax rule"
// @Router /tax-rules [post]
func (h *taxRuleHandler) createTaxRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.SaveTaxRuleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTaxRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.taxRuleService.CreateTaxRule(c.Request.Context(), req, userID)
	if err != nil {
		h.writeTaxRuleError(c, logger, "create", err)
		return
	}

	logger.Info("Tax rule created", slog.String("rule_id", rule.RuleID))
	c.JSON(http.StatusCreated, dto.ToTaxRuleResponse(rule))
}

// getTaxRule godoc
// @Summary Get a tax rule
// @Tags tax-rules
// @Produce  json
// @Param   ruleID path string true "Rule ID"
// @Success 200 {object} dto.TaxRuleResponse "The rule"
// @Failure 404 {object} map[string]string "Rule not found"
// @Router /tax-rules/{ruleID} [get]
func (h *taxRuleHandler) getTaxRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("ruleID")

	rule, err := h.taxRuleService.GetTaxRuleByID(c.Request.Context(), ruleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax rule not found"})
			return
		}
		logger.Error("Failed to get tax rule", slog.String("error", err.Error()), slog.String("rule_id", ruleID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tax rule"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTaxRuleResponse(rule))
}

// listTaxRules godoc
// @Summary List tax rules
// @Tags tax-rules
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTaxRulesResponse "Rules page"
// @Router /tax-rules [get]
func (h *taxRuleHandler) listTaxRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListTaxRulesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.taxRuleService.ListTaxRules(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list tax rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tax rules"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// updateTaxRule godoc
// @Summary Update a tax rule
// @Description Revalidates the whole rule, including the conflict check against other rules
// @Tags tax-rules
// @Accept  json
// @Produce  json
// @Param   ruleID path string true "Rule ID"
// @Param   rule body dto.SaveTaxRuleRequest true "Tax rule"
// @Success 200 {object} dto.TaxRuleResponse "The updated rule"
// @Failure 400 {object} map[string]string "Invalid rule"
// @Failure 403 {object} map[string]string "Missing tax rule capability"
// @Failure 404 {object} map[string]string "Rule not found"
// @Failure 409 {object} map[string]string "Conflicting tax rule"
// @Router /tax-rules/{ruleID} [put]
func (h *taxRuleHandler) updateTaxRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("ruleID")

	req := dto.SaveTaxRuleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTaxRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.taxRuleService.UpdateTaxRule(c.Request.Context(), ruleID, req, userID)
	if err != nil {
		h.writeTaxRuleError(c, logger, "update", err)
		return
	}

	logger.Info("Tax rule updated", slog.String("rule_id", ruleID))
	c.JSON(http.StatusOK, dto.ToTaxRuleResponse(rule))
}

// deleteTaxRule godoc
// @Summary Delete a tax rule
// @Tags tax-rules
// @Produce  json
// @Param   ruleID path string true "Rule ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Missing tax rule capability"
// @Failure 404 {object} map[string]string "Rule not found"
// @Router /tax-rules/{ruleID} [delete]
func (h *taxRuleHandler) deleteTaxRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("ruleID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.taxRuleService.DeleteTaxRule(c.Request.Context(), ruleID, userID); err != nil {
		h.writeTaxRuleError(c, logger, "delete", err)
		return
	}

	logger.Info("Tax rule deleted", slog.String("rule_id", ruleID))
	c.Status(http.StatusNoContent)
}

// resolveTaxTemplate godoc
// @Summary Resolve the applicable tax template for a transaction
// @Description Matches the transaction attributes against all tax rules and returns the winning rule's template, empty when nothing matches
// @Tags tax-rules
// @Accept  json
// @Produce  json
// @Param   attributes body dto.ResolveTaxTemplateRequest true "Transaction attributes"
// @Success 200 {object} dto.ResolveTaxTemplateResponse "The resolved template"
// @Failure 400 {object} map[string]string "Invalid attributes"
// @Router /tax-rules/resolve [post]
func (h *taxRuleHandler) resolveTaxTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.ResolveTaxTemplateRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResolveTaxTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	template, err := h.taxRuleService.ResolveTaxTemplate(c.Request.Context(), req.PostingDate, req.ToDomainFilters())
	if err != nil {
		logger.Error("Failed to resolve tax template", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tax template"})
		return
	}
	c.JSON(http.StatusOK, dto.ResolveTaxTemplateResponse{TaxTemplate: template})
}

// getPartyDetails godoc
// @Summary Get the billing and shipping geography of a party
// @Tags tax-rules
// @Produce  json
// @Param   party query string true "Party name"
// @Param   partyType query string true "Customer, Supplier or Lead"
// @Param   billingAddressID query string false "Explicit billing address"
// @Param   shippingAddressID query string false "Explicit shipping address"
// @Success 200 {object} domain.PartyDetails "Party geography"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /tax-rules/party-details [get]
func (h *taxRuleHandler) getPartyDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	q := dto.PartyDetailsQuery{}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	details, err := h.taxRuleService.GetPartyDetails(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get party details", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get party details"})
		return
	}
	c.JSON(http.StatusOK, details)
}
