// filepath: internal/repository/indicator_repo_test.go
package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"kpihub/internal/models"
)

func addWeighted(t *testing.T, service *Repository, templateID int64, seq int, weight string) *models.Indicator {
	t.Helper()
	w, err := decimal.NewFromString(weight)
	assert.NoError(t, err)
	created, err := service.AddIndicator(&models.Indicator{
		TemplateID:     templateID,
		SequenceNumber: seq,
		Category:       "Performance",
		Name:           "Indicator",
		Weight:         w,
	})
	assert.NoError(t, err)
	return created
}

func TestIndicatorCRUD(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	tpl, err := service.CreateTemplate("CRUD", "")
	assert.NoError(t, err)

	created, err := service.AddIndicator(&models.Indicator{
		TemplateID:         tpl.ID,
		SequenceNumber:     1,
		Category:           "Quality",
		Name:               "Defect rate",
		Description:        "Bugs per release",
		EvaluationCriteria: "Below 5 per release",
		Weight:             decimal.RequireFromString("25.50"),
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)

	read, err := service.GetIndicator(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Defect rate", read.Name)
	assert.True(t, read.Weight.Equal(decimal.RequireFromString("25.5")))

	read.Name = "Escaped defects"
	read.Weight = decimal.RequireFromString("30")
	err = service.UpdateIndicator(read)
	assert.NoError(t, err)

	updated, err := service.GetIndicator(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Escaped defects", updated.Name)
	assert.True(t, updated.Weight.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, tpl.ID, updated.TemplateID, "update never moves an indicator between templates")

	err = service.DeleteIndicator(created.ID)
	assert.NoError(t, err)
	_, err = service.GetIndicator(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndicatorNotFound(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := service.GetIndicator(42)
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.UpdateIndicator(&models.Indicator{ID: 42, Name: "x", Weight: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.DeleteIndicator(42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.AddIndicator(&models.Indicator{TemplateID: 999, Name: "x", Weight: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddIndicatorWeightBudget(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	tpl, err := service.CreateTemplate("Budget", "")
	assert.NoError(t, err)

	addWeighted(t, service, tpl.ID, 1, "60")

	// 60 + 41 breaks the budget
	_, err = service.AddIndicator(&models.Indicator{
		TemplateID: tpl.ID,
		Name:       "Too heavy",
		Weight:     decimal.NewFromInt(41),
	})
	assert.ErrorIs(t, err, ErrWeightBudgetExceeded)

	// 60 + 40 lands exactly on 100 and is allowed
	addWeighted(t, service, tpl.ID, 2, "40")

	sum, err := service.SumWeights(tpl.ID)
	assert.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(100)), "sum is %s", sum)
}

func TestUpdateIndicatorWeightBudget(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	tpl, err := service.CreateTemplate("UpdateBudget", "")
	assert.NoError(t, err)

	addWeighted(t, service, tpl.ID, 1, "50")
	target := addWeighted(t, service, tpl.ID, 2, "10")

	// Other indicators hold 50, so the edited one may grow to exactly 50
	target.Weight = decimal.NewFromInt(50)
	assert.NoError(t, service.UpdateIndicator(target))

	// ...but not to 51
	target.Weight = decimal.NewFromInt(51)
	assert.ErrorIs(t, service.UpdateIndicator(target), ErrWeightBudgetExceeded)

	// The rejected update must not have changed the stored weight
	stored, err := service.GetIndicator(target.ID)
	assert.NoError(t, err)
	assert.True(t, stored.Weight.Equal(decimal.NewFromInt(50)))
}

func TestZeroWeightIndicator(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	tpl, err := service.CreateTemplate("Zero", "")
	assert.NoError(t, err)

	created := addWeighted(t, service, tpl.ID, 1, "0")
	read, err := service.GetIndicator(created.ID)
	assert.NoError(t, err)
	assert.True(t, read.Weight.IsZero())
}

func TestWeightSumHasNoFloatDrift(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	tpl, err := service.CreateTemplate("Drift", "")
	assert.NoError(t, err)

	// 3 x 33.33 = 99.99 exactly; float summation would land on
	// 99.99000000000001 and wrongly reject the 0.01 below.
	for i := 1; i <= 3; i++ {
		addWeighted(t, service, tpl.ID, i, "33.33")
	}

	_, err = service.AddIndicator(&models.Indicator{
		TemplateID: tpl.ID,
		Name:       "Over by a cent",
		Weight:     decimal.RequireFromString("0.02"),
	})
	assert.ErrorIs(t, err, ErrWeightBudgetExceeded)

	addWeighted(t, service, tpl.ID, 4, "0.01")

	sum, err := service.SumWeights(tpl.ID)
	assert.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(100)), "sum is %s", sum)
}

func TestGetIndicatorsOrderedBySequence(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	tpl, err := service.CreateTemplate("Order", "")
	assert.NoError(t, err)

	addWeighted(t, service, tpl.ID, 3, "10")
	addWeighted(t, service, tpl.ID, 1, "10")
	addWeighted(t, service, tpl.ID, 2, "10")

	indicators, err := service.GetIndicators(tpl.ID)
	assert.NoError(t, err)
	assert.Len(t, indicators, 3)
	assert.Equal(t, 1, indicators[0].SequenceNumber)
	assert.Equal(t, 2, indicators[1].SequenceNumber)
	assert.Equal(t, 3, indicators[2].SequenceNumber)
}

func TestNextSequence(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	tpl, err := service.CreateTemplate("Seq", "")
	assert.NoError(t, err)

	next, err := service.NextSequence(tpl.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, next, "empty template starts at 1")

	addWeighted(t, service, tpl.ID, 5, "10")
	next, err = service.NextSequence(tpl.ID)
	assert.NoError(t, err)
	assert.Equal(t, 6, next, "suggestion is one past the current maximum")
}
