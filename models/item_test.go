package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestItem_FieldsRoundTrip(t *testing.T) {
	projectID := "proj-1"
	item := Item{
		ID:          "item-1",
		AccountID:   7,
		ProjectID:   &projectID,
		Name:        "plywood",
		Description: "18mm birch",
		Price:       1250,
		Quantity:    4,
		TaxRate:     2100,
		TaxIncluded: true,
		Purchased:   false,
		Version:     3,
		CreatedAt:   time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC),
	}

	got := ItemFromFields(item.Fields())

	assert.Equal(t, item, got)
}

func TestItem_FieldsOmitsNilReferences(t *testing.T) {
	fields := Item{ID: "item-1"}.Fields()

	assert.NotContains(t, fields, "projectId")
	assert.NotContains(t, fields, "parentItemId")
}

func TestItemFromFields_AcceptsJSONNumbers(t *testing.T) {
	// A JSON round-trip turns every number into float64.
	item := ItemFromFields(map[string]any{
		"id":        "item-1",
		"accountId": float64(7),
		"price":     float64(1250),
		"version":   float64(3),
	})

	assert.Equal(t, int64(7), item.AccountID)
	assert.Equal(t, int64(1250), item.Price)
	assert.Equal(t, int64(3), item.Version)
}

func TestItemFromFields_ToleratesMissingAndMistypedFields(t *testing.T) {
	item := ItemFromFields(map[string]any{
		"name":      42,
		"purchased": "yes",
		"createdAt": "not a timestamp",
	})

	assert.Empty(t, item.Name)
	assert.False(t, item.Purchased)
	assert.True(t, item.CreatedAt.IsZero())
	assert.Nil(t, item.ProjectID)
}
