// filepath: internal/services/template_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"kpihub/internal/logging"
	"kpihub/internal/models"
	"kpihub/internal/repository"
)

var _ TemplateService = (*templateService)(nil)

// templateService handles business logic for assessment templates and their
// weighted indicators.
type templateService struct {
	Repo *repository.Repository
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(repo *repository.Repository) *templateService {
	return &templateService{Repo: repo}
}

// CreateTemplate inserts a new template after validating its name.
func (s *templateService) CreateTemplate(name, description string) (*models.Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrValidation)
	}
	logging.Log.Debugf("TemplateService: Creating template '%s'", name)
	return s.Repo.CreateTemplate(name, description)
}

// UpdateTemplate overwrites a template's name and description, leaving its
// indicators alone.
func (s *templateService) UpdateTemplate(id int64, name, description string) (*models.Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrValidation)
	}
	if err := s.Repo.UpdateTemplate(id, name, description); err != nil {
		return nil, err
	}
	return s.Repo.GetTemplate(id)
}

// DeleteTemplate removes a template together with all of its indicators.
func (s *templateService) DeleteTemplate(id int64) error {
	logging.Log.Debugf("TemplateService: Deleting template %d", id)
	return s.Repo.DeleteTemplate(id)
}

// GetTemplates lists templates matching the filter.
func (s *templateService) GetTemplates(filter models.TemplateFilter) ([]models.Template, error) {
	return s.Repo.GetTemplates(filter)
}

// GetTemplateIndicators returns a template's indicators in sequence order,
// together with the current weight total.
func (s *templateService) GetTemplateIndicators(templateID int64) (*models.TemplateIndicators, error) {
	if _, err := s.Repo.GetTemplate(templateID); err != nil {
		return nil, err
	}
	indicators, err := s.Repo.GetIndicators(templateID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, ind := range indicators {
		total = total.Add(ind.Weight)
	}
	return &models.TemplateIndicators{
		TemplateID:  templateID,
		Indicators:  indicators,
		WeightTotal: total,
	}, nil
}

// AddIndicator validates and inserts an indicator; the repository enforces
// the weight budget transactionally.
func (s *templateService) AddIndicator(ind models.Indicator) (*models.Indicator, error) {
	if err := validateIndicator(&ind); err != nil {
		return nil, err
	}
	return s.Repo.AddIndicator(&ind)
}

// UpdateIndicator validates and overwrites an indicator.
func (s *templateService) UpdateIndicator(ind models.Indicator) (*models.Indicator, error) {
	if err := validateIndicator(&ind); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateIndicator(&ind); err != nil {
		return nil, err
	}
	return s.Repo.GetIndicator(ind.ID)
}

// DeleteIndicator removes an indicator. Always legal with respect to the
// weight budget.
func (s *templateService) DeleteIndicator(id int64) error {
	return s.Repo.DeleteIndicator(id)
}

// SuggestNextSequence proposes a default sequence number for a new indicator.
func (s *templateService) SuggestNextSequence(templateID int64) (int, error) {
	if _, err := s.Repo.GetTemplate(templateID); err != nil {
		return 0, err
	}
	return s.Repo.NextSequence(templateID)
}

// validateIndicator checks the fields every indicator write must satisfy.
// A weight of exactly zero is legal; only negative weights, weights above
// 100, and more than two decimal places are rejected.
func validateIndicator(ind *models.Indicator) error {
	if strings.TrimSpace(ind.Name) == "" {
		return fmt.Errorf("%w: indicator name is required", ErrValidation)
	}
	if ind.SequenceNumber < 1 {
		return fmt.Errorf("%w: sequence number must be at least 1", ErrValidation)
	}
	w := ind.Weight
	if w.IsNegative() {
		return fmt.Errorf("%w: weight cannot be negative", ErrValidation)
	}
	if w.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: weight cannot exceed 100", ErrValidation)
	}
	if w.Exponent() < -2 {
		return fmt.Errorf("%w: weight supports at most two decimal places", ErrValidation)
	}
	return nil
}
