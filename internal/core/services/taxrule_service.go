package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finpoint/erp_backend/internal/apperrors"
	"github.com/finpoint/erp_backend/internal/core/domain"
	portsrepo "github.com/finpoint/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/finpoint/erp_backend/internal/core/ports/services"
	"github.com/finpoint/erp_backend/internal/dto"
	"github.com/finpoint/erp_backend/internal/middleware"
)

var (
	// ErrTaxTemplateMandatory is returned when a rule carries no template for its tax type.
	ErrTaxTemplateMandatory = fmt.Errorf("%w: tax template is mandatory", apperrors.ErrValidation)

	// ErrIncorrectCustomerGroup is returned when a rule's customer does not belong to its customer group.
	ErrIncorrectCustomerGroup = fmt.Errorf("%w: incorrect customer group", apperrors.ErrValidation)

	// ErrIncorrectSupplierType is returned when a rule's supplier does not belong to its supplier type.
	ErrIncorrectSupplierType = fmt.Errorf("%w: incorrect supplier type", apperrors.ErrValidation)

	// ErrConflictingTaxRule is returned when another rule with identical filters,
	// an overlapping date range, and equal priority already exists.
	ErrConflictingTaxRule = fmt.Errorf("%w: conflicting tax rule", apperrors.ErrValidation)

	// ErrTaxRuleDateRange is returned when from date is after to date.
	ErrTaxRuleDateRange = fmt.Errorf("%w: from date cannot be greater than to date", apperrors.ErrValidation)
)

// taxRuleService validates tax rules on save and resolves the applicable
// template at transaction time.
type taxRuleService struct {
	taxRuleRepo portsrepo.TaxRuleRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
	authorizer  portssvc.AuthorizerSvc
}

// NewTaxRuleService creates a new TaxRuleService.
func NewTaxRuleService(taxRuleRepo portsrepo.TaxRuleRepositoryFacade, partyRepo portsrepo.PartyRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.TaxRuleSvcFacade {
	return &taxRuleService{
		taxRuleRepo: taxRuleRepo,
		partyRepo:   partyRepo,
		authorizer:  authorizer,
	}
}

// Ensure taxRuleService implements the portssvc.TaxRuleSvcFacade interface
var _ portssvc.TaxRuleSvcFacade = (*taxRuleService)(nil)

// CreateTaxRule validates and persists a new tax rule.
func (s *taxRuleService) CreateTaxRule(ctx context.Context, req dto.SaveTaxRuleRequest, userID string) (*domain.TaxRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rule := req.ToDomainTaxRule()
	rule.RuleID = uuid.NewString()
	rule.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.validate(ctx, &rule); err != nil {
		return nil, err
	}

	if err := s.taxRuleRepo.SaveTaxRule(ctx, rule); err != nil {
		logger.Error("Failed to save tax rule", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save tax rule: %w", err)
	}

	logger.Info("Tax rule created", slog.String("rule_id", rule.RuleID), slog.Int("priority", rule.Priority))
	return &rule, nil
}

// UpdateTaxRule validates and updates an existing tax rule.
func (s *taxRuleService) UpdateTaxRule(ctx context.Context, ruleID string, req dto.SaveTaxRuleRequest, userID string) (*domain.TaxRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := s.taxRuleRepo.FindTaxRuleByID(ctx, ruleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find tax rule for update", slog.String("rule_id", ruleID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find tax rule %s: %w", ruleID, err)
	}

	rule := req.ToDomainTaxRule()
	rule.RuleID = existing.RuleID
	rule.AuditFields = existing.AuditFields
	rule.LastUpdatedAt = time.Now().UTC()
	rule.LastUpdatedBy = userID

	if err := s.validate(ctx, &rule); err != nil {
		return nil, err
	}

	if err := s.taxRuleRepo.UpdateTaxRule(ctx, rule); err != nil {
		logger.Error("Failed to update tax rule", slog.String("rule_id", ruleID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update tax rule: %w", err)
	}

	logger.Info("Tax rule updated", slog.String("rule_id", rule.RuleID))
	return &rule, nil
}

// DeleteTaxRule removes a tax rule.
func (s *taxRuleService) DeleteTaxRule(ctx context.Context, ruleID string, userID string) error {
	if err := s.authorize(ctx, userID); err != nil {
		return err
	}
	if err := s.taxRuleRepo.DeleteTaxRule(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to delete tax rule %s: %w", ruleID, err)
	}
	return nil
}

// GetTaxRuleByID retrieves a tax rule.
func (s *taxRuleService) GetTaxRuleByID(ctx context.Context, ruleID string) (*domain.TaxRule, error) {
	rule, err := s.taxRuleRepo.FindTaxRuleByID(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tax rule %s: %w", ruleID, err)
	}
	return rule, nil
}

// ListTaxRules retrieves a paginated list of tax rules.
func (s *taxRuleService) ListTaxRules(ctx context.Context, params dto.ListTaxRulesParams) (*dto.ListTaxRulesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	rules, nextToken, err := s.taxRuleRepo.ListTaxRules(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rules: %w", err)
	}

	responses := make([]dto.TaxRuleResponse, len(rules))
	for i := range rules {
		responses[i] = dto.ToTaxRuleResponse(&rules[i])
	}
	return &dto.ListTaxRulesResponse{TaxRules: responses, NextToken: nextToken}, nil
}

// ResolveTaxTemplate picks the best matching rule for the transaction
// attributes: highest specificity first, then lowest priority value. An
// empty result with nil error means no rule applies.
func (s *taxRuleService) ResolveTaxTemplate(ctx context.Context, postingDate time.Time, filters domain.TaxRuleFilters) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	matching, err := s.taxRuleRepo.FindMatching(ctx, postingDate, filters)
	if err != nil {
		logger.Error("Failed to fetch matching tax rules", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to fetch matching tax rules: %w", err)
	}
	if len(matching) == 0 {
		return "", nil
	}

	sort.SliceStable(matching, func(i, j int) bool {
		si, sj := matching[i].Specificity(filters), matching[j].Specificity(filters)
		if si != sj {
			return si > sj
		}
		return matching[i].Priority < matching[j].Priority
	})

	best := matching[0]
	logger.Debug("Tax rule resolved",
		slog.String("rule_id", best.RuleID),
		slog.Int("specificity", best.Specificity(filters)),
		slog.Int("priority", best.Priority),
	)
	return best.Template(), nil
}

// GetPartyDetails bundles the billing and shipping geography of a party.
// Missing addresses are not an error; the corresponding fields stay empty.
func (s *taxRuleService) GetPartyDetails(ctx context.Context, q dto.PartyDetailsQuery) (*domain.PartyDetails, error) {
	partyType := domain.PartyType(q.PartyType)
	details := &domain.PartyDetails{}

	billing, err := s.findAddress(ctx, q.BillingAddressID, partyType, q.Party, s.partyRepo.FindPrimaryAddress)
	if err != nil {
		return nil, err
	}
	if billing != nil {
		details.BillingCity = billing.City
		details.BillingState = billing.State
		details.BillingCountry = billing.Country
	}

	shipping, err := s.findAddress(ctx, q.ShippingAddressID, partyType, q.Party, s.partyRepo.FindShippingAddress)
	if err != nil {
		return nil, err
	}
	if shipping != nil {
		details.ShippingCity = shipping.City
		details.ShippingState = shipping.State
		details.ShippingCountry = shipping.Country
	}

	return details, nil
}

func (s *taxRuleService) findAddress(ctx context.Context, addressID string, partyType domain.PartyType, party string, byParty func(context.Context, domain.PartyType, string) (*domain.Address, error)) (*domain.Address, error) {
	var (
		addr *domain.Address
		err  error
	)
	if addressID != "" {
		addr, err = s.partyRepo.FindAddressByID(ctx, addressID)
	} else {
		addr, err = byParty(ctx, partyType, party)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch address: %w", err)
	}
	return addr, nil
}

func (s *taxRuleService) authorize(ctx context.Context, userID string) error {
	if s.authorizer == nil {
		return nil
	}
	if err := s.authorizer.AuthorizeCapability(ctx, userID, portssvc.CapabilityTaxRuleAdmin); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Authorization failed for tax rule write", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// validate runs the full rule validation: template side selection, party
// consistency, date order, and the conflict check.
func (s *taxRuleService) validate(ctx context.Context, rule *domain.TaxRule) error {
	if err := applyTemplateSelection(rule); err != nil {
		return err
	}
	if err := s.validateCustomerGroup(ctx, rule); err != nil {
		return err
	}
	if err := s.validateSupplierType(ctx, rule); err != nil {
		return err
	}
	if rule.FromDate != nil && rule.ToDate != nil && rule.FromDate.After(*rule.ToDate) {
		return ErrTaxRuleDateRange
	}
	return s.validateConflicts(ctx, rule)
}

// applyTemplateSelection clears the fields of the inapplicable tax side and
// requires a template on the applicable one.
func applyTemplateSelection(rule *domain.TaxRule) error {
	if rule.TaxType == domain.SalesTax {
		rule.PurchaseTaxTemplate = ""
		rule.Supplier = ""
		rule.SupplierType = ""
	} else {
		rule.SalesTaxTemplate = ""
		rule.Customer = ""
		rule.CustomerGroup = ""
	}
	if rule.SalesTaxTemplate == "" && rule.PurchaseTaxTemplate == "" {
		return ErrTaxTemplateMandatory
	}
	return nil
}

func (s *taxRuleService) validateCustomerGroup(ctx context.Context, rule *domain.TaxRule) error {
	if rule.Customer == "" || rule.CustomerGroup == "" {
		return nil
	}
	group, err := s.partyRepo.GetCustomerGroup(ctx, rule.Customer)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to fetch customer group for %s: %w", rule.Customer, err)
	}
	if group != rule.CustomerGroup {
		return fmt.Errorf("%w: customer %s does not belong to customer group %s", ErrIncorrectCustomerGroup, rule.Customer, rule.CustomerGroup)
	}
	return nil
}

func (s *taxRuleService) validateSupplierType(ctx context.Context, rule *domain.TaxRule) error {
	if rule.Supplier == "" || rule.SupplierType == "" {
		return nil
	}
	supplierType, err := s.partyRepo.GetSupplierType(ctx, rule.Supplier)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to fetch supplier type for %s: %w", rule.Supplier, err)
	}
	if supplierType != rule.SupplierType {
		return fmt.Errorf("%w: supplier %s does not belong to supplier type %s", ErrIncorrectSupplierType, rule.Supplier, rule.SupplierType)
	}
	return nil
}

func (s *taxRuleService) validateConflicts(ctx context.Context, rule *domain.TaxRule) error {
	matches, err := s.taxRuleRepo.FindConflicting(ctx, *rule)
	if err != nil {
		return fmt.Errorf("failed to check tax rule conflicts: %w", err)
	}
	for _, m := range matches {
		if rule.ConflictsWith(&m) && m.Priority == rule.Priority {
			return fmt.Errorf("%w: conflicts with tax rule %s", ErrConflictingTaxRule, m.RuleID)
		}
	}
	return nil
}
