// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Entity types known to the sync engine.
const (
	EntityItem    = "item"
	EntityProject = "project"
)

// Item is the primary domain entity: one budgeted purchase line inside a
// project. The sync engine itself treats entities as field maps; Item is the
// typed view used by the write path and the reference server.
type Item struct {
	// ID is the client-assigned UUID of the item.
	ID string `json:"id"`

	// AccountID is the owning account.
	AccountID int64 `json:"account_id"`

	// ProjectID is the project the item belongs to.
	ProjectID *string `json:"project_id,omitempty"`

	// Name is the item's display name.
	Name string `json:"name"`

	// Description is free-form detail text. Treated as non-critical by the
	// conflict policy: local edits win over server edits.
	Description string `json:"description"`

	// Price is the unit price in minor currency units.
	Price int64 `json:"price"`

	// Quantity is the number of units.
	Quantity int64 `json:"quantity"`

	// TaxRate is the applicable tax rate in basis points.
	TaxRate int64 `json:"tax_rate"`

	// TaxIncluded reports whether Price already includes tax.
	TaxIncluded bool `json:"tax_included"`

	// Purchased marks the item as bought.
	Purchased bool `json:"purchased"`

	// ParentItemID links a replacement or sub-item to its lineage parent.
	ParentItemID *string `json:"parent_item_id,omitempty"`

	// Version is the optimistic-concurrency counter.
	Version int64 `json:"version"`

	// CreatedAt and UpdatedAt are audit timestamps.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fields flattens the item into the generic field map the sync engine
// persists and ships. Keys use the local camelCase names.
func (i Item) Fields() map[string]any {
	fields := map[string]any{
		"id":          i.ID,
		"accountId":   i.AccountID,
		"name":        i.Name,
		"description": i.Description,
		"price":       i.Price,
		"quantity":    i.Quantity,
		"taxRate":     i.TaxRate,
		"taxIncluded": i.TaxIncluded,
		"purchased":   i.Purchased,
		"version":     i.Version,
		"createdAt":   i.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updatedAt":   i.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if i.ProjectID != nil {
		fields["projectId"] = *i.ProjectID
	}
	if i.ParentItemID != nil {
		fields["parentItemId"] = *i.ParentItemID
	}
	return fields
}

// ItemFromFields rebuilds a typed item from a stored field map. Missing or
// mistyped fields fall back to zero values; JSON round-trips turn integers
// into float64, so numeric fields accept both.
func ItemFromFields(fields map[string]any) Item {
	item := Item{
		Name:        fieldString(fields, "name"),
		Description: fieldString(fields, "description"),
		Price:       fieldInt64(fields, "price"),
		Quantity:    fieldInt64(fields, "quantity"),
		TaxRate:     fieldInt64(fields, "taxRate"),
		TaxIncluded: fieldBool(fields, "taxIncluded"),
		Purchased:   fieldBool(fields, "purchased"),
		Version:     fieldInt64(fields, "version"),
		CreatedAt:   fieldTime(fields, "createdAt"),
		UpdatedAt:   fieldTime(fields, "updatedAt"),
	}
	item.ID = fieldString(fields, "id")
	item.AccountID = fieldInt64(fields, "accountId")
	if v := fieldString(fields, "projectId"); v != "" {
		item.ProjectID = &v
	}
	if v := fieldString(fields, "parentItemId"); v != "" {
		item.ParentItemID = &v
	}
	return item
}

func fieldString(fields map[string]any, name string) string {
	v, _ := fields[name].(string)
	return v
}

func fieldInt64(fields map[string]any, name string) int64 {
	switch v := fields[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func fieldBool(fields map[string]any, name string) bool {
	v, _ := fields[name].(bool)
	return v
}

func fieldTime(fields map[string]any, name string) time.Time {
	switch v := fields[name].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}
