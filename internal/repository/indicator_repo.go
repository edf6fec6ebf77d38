// filepath: internal/repository/indicator_repo.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"kpihub/internal/logging"
	"kpihub/internal/models"
)

// weightBudget is the ceiling on the sum of a template's indicator weights.
var weightBudget = decimal.NewFromInt(100)

const indicatorColumns = "indicator_id, template_id, sequence_number, category, name, description, evaluation_criteria, weight"

type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// sumIndicatorWeights sums the weights of a template's indicators as exact
// decimals. excludeID skips the indicator being edited; 0 excludes nothing.
// SQL SUM is deliberately avoided: SQLite would sum the values as floats and
// drift near the 100% boundary.
func sumIndicatorWeights(q querier, templateID, excludeID int64) (decimal.Decimal, error) {
	rows, err := q.Query(
		"SELECT weight FROM kpi_indicators WHERE template_id = ? AND indicator_id != ?",
		templateID, excludeID,
	)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var w decimal.Decimal
		if err := rows.Scan(&w); err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(w)
	}
	return sum, rows.Err()
}

func scanIndicator(row interface{ Scan(...interface{}) error }) (*models.Indicator, error) {
	var ind models.Indicator
	err := row.Scan(&ind.ID, &ind.TemplateID, &ind.SequenceNumber, &ind.Category,
		&ind.Name, &ind.Description, &ind.EvaluationCriteria, &ind.Weight)
	if err != nil {
		return nil, err
	}
	return &ind, nil
}

// AddIndicator inserts a new indicator under its template, enforcing the
// weight budget. The sum check and the insert run in one immediate
// transaction, so two concurrent adds cannot jointly exceed the budget.
func (s *Repository) AddIndicator(ind *models.Indicator) (*models.Indicator, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var one int
	if err := tx.QueryRow("SELECT 1 FROM kpi_templates WHERE template_id = ?", ind.TemplateID).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template %d: %w", ind.TemplateID, ErrNotFound)
		}
		return nil, err
	}

	currentSum, err := sumIndicatorWeights(tx, ind.TemplateID, 0)
	if err != nil {
		return nil, err
	}
	if currentSum.Add(ind.Weight).Cmp(weightBudget) > 0 {
		logging.Log.Debugf("AddIndicator: Rejected for template %d: %s + %s exceeds budget",
			ind.TemplateID, currentSum, ind.Weight)
		return nil, ErrWeightBudgetExceeded
	}

	res, err := tx.Exec(`
		INSERT INTO kpi_indicators
		(template_id, sequence_number, category, name, description, evaluation_criteria, weight)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, ind.TemplateID, ind.SequenceNumber, ind.Category, ind.Name,
		ind.Description, ind.EvaluationCriteria, ind.Weight.StringFixed(2))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	created := *ind
	created.ID = id
	return &created, nil
}

// UpdateIndicator overwrites an indicator's fields, enforcing the weight
// budget against its siblings. The indicator's own previous weight is
// excluded from the sum. The owning template never changes on update.
func (s *Repository) UpdateIndicator(ind *models.Indicator) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var templateID int64
	if err := tx.QueryRow(
		"SELECT template_id FROM kpi_indicators WHERE indicator_id = ?", ind.ID,
	).Scan(&templateID); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("indicator %d: %w", ind.ID, ErrNotFound)
		}
		return err
	}

	otherSum, err := sumIndicatorWeights(tx, templateID, ind.ID)
	if err != nil {
		return err
	}
	if otherSum.Add(ind.Weight).Cmp(weightBudget) > 0 {
		logging.Log.Debugf("UpdateIndicator: Rejected for indicator %d: %s + %s exceeds budget",
			ind.ID, otherSum, ind.Weight)
		return ErrWeightBudgetExceeded
	}

	if _, err := tx.Exec(`
		UPDATE kpi_indicators
		SET sequence_number = ?, category = ?, name = ?, description = ?,
		    evaluation_criteria = ?, weight = ?
		WHERE indicator_id = ?
	`, ind.SequenceNumber, ind.Category, ind.Name, ind.Description,
		ind.EvaluationCriteria, ind.Weight.StringFixed(2), ind.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetIndicator retrieves a single indicator by id.
func (s *Repository) GetIndicator(id int64) (*models.Indicator, error) {
	row := s.DB.QueryRow("SELECT "+indicatorColumns+" FROM kpi_indicators WHERE indicator_id = ?", id)
	ind, err := scanIndicator(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("indicator %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return ind, nil
}

// GetIndicators retrieves a template's indicators ordered by sequence number.
func (s *Repository) GetIndicators(templateID int64) ([]models.Indicator, error) {
	rows, err := s.DB.Query(
		"SELECT "+indicatorColumns+" FROM kpi_indicators WHERE template_id = ? ORDER BY sequence_number",
		templateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	indicators := make([]models.Indicator, 0)
	for rows.Next() {
		ind, err := scanIndicator(rows)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, *ind)
	}
	return indicators, rows.Err()
}

// SumWeights returns the current weight total for a template.
func (s *Repository) SumWeights(templateID int64) (decimal.Decimal, error) {
	return sumIndicatorWeights(s.DB, templateID, 0)
}

// NextSequence suggests a sequence number for a new indicator: one past the
// template's current maximum, or 1 for an empty template. Callers may ignore
// it; sequence numbers are not required to be unique or contiguous.
func (s *Repository) NextSequence(templateID int64) (int, error) {
	var maxSeq sql.NullInt64
	err := s.DB.QueryRow(
		"SELECT MAX(sequence_number) FROM kpi_indicators WHERE template_id = ?",
		templateID,
	).Scan(&maxSeq)
	if err != nil {
		return 0, err
	}
	if !maxSeq.Valid {
		return 1, nil
	}
	return int(maxSeq.Int64) + 1, nil
}

// DeleteIndicator removes an indicator unconditionally. Removing an indicator
// can only lower a template's weight sum, so no budget check is needed.
func (s *Repository) DeleteIndicator(id int64) error {
	res, err := s.DB.Exec("DELETE FROM kpi_indicators WHERE indicator_id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("indicator %d: %w", id, ErrNotFound)
	}
	return nil
}
