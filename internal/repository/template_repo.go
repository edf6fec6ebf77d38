// filepath: internal/repository/template_repo.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"kpihub/internal/logging"
	"kpihub/internal/models"
)

// CreateTemplate inserts a new template and returns it with its generated id
// and creation timestamp. The timestamp is set here, once, and never updated.
func (s *Repository) CreateTemplate(name, description string) (*models.Template, error) {
	createdAt := time.Now().UTC()
	res, err := s.DB.Exec(
		"INSERT INTO kpi_templates (template_name, description, created_at) VALUES (?, ?, ?)",
		name, description, createdAt,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	logging.Log.Debugf("CreateTemplate: Template '%s' created with ID %d", name, id)

	return &models.Template{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
	}, nil
}

// GetTemplate retrieves a single template by id. Indicators are not loaded;
// callers fetch them on demand via GetIndicators.
func (s *Repository) GetTemplate(id int64) (*models.Template, error) {
	row := s.DB.QueryRow(
		"SELECT template_id, template_name, description, created_at FROM kpi_templates WHERE template_id = ?",
		id,
	)

	var t models.Template
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

// GetTemplates retrieves templates matching the filter, in storage insertion
// order. A zero filter returns everything.
func (s *Repository) GetTemplates(filter models.TemplateFilter) ([]models.Template, error) {
	builder := s.Builder.
		Select("template_id", "template_name", "description", "created_at").
		From("kpi_templates")

	if filter.NameContains != "" {
		// instr is a case-sensitive substring match, unlike LIKE.
		builder = builder.Where("instr(template_name, ?) > 0", filter.NameContains)
	}
	if !filter.CreatedSince.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"created_at": filter.CreatedSince.UTC()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	logging.Log.Debugf("GetTemplates: Generated SQL: %s %v", query, args)

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]models.Template, 0)
	for rows.Next() {
		var t models.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// UpdateTemplate overwrites a template's name and description. Indicators are
// untouched. Returns ErrNotFound when the template does not exist.
func (s *Repository) UpdateTemplate(id int64, name, description string) error {
	res, err := s.DB.Exec(
		"UPDATE kpi_templates SET template_name = ?, description = ? WHERE template_id = ?",
		name, description, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("template %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTemplate removes a template and all of its indicators as a single
// transaction, so a crash can never leave orphaned indicators behind.
func (s *Repository) DeleteTemplate(id int64) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query, args, err := s.Builder.Delete("kpi_indicators").Where(squirrel.Eq{"template_id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM kpi_templates WHERE template_id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("template %d: %w", id, ErrNotFound)
	}

	logging.Log.Debugf("DeleteTemplate: Template %d and its indicators deleted", id)
	return tx.Commit()
}
