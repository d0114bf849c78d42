// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldMap_RejectsNonInvertibleMap(t *testing.T) {
	_, err := NewFieldMap(map[string]string{
		"taxRate":  "tax_rate",
		"tax_rate": "tax_rate",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not invertible")
}

func TestFieldMap_EncodeTranslatesAndDropsUnmapped(t *testing.T) {
	m := NewItemFieldMap()

	encoded, dropped := m.Encode(map[string]any{
		"name":        "plywood",
		"taxRate":     0.21,
		"taxIncluded": true,
		"zzz":         1,
		"color":       "red",
	})

	assert.Equal(t, map[string]any{
		"name":         "plywood",
		"tax_rate":     0.21,
		"tax_included": true,
	}, encoded)
	assert.Equal(t, []string{"color", "zzz"}, dropped, "dropped fields are reported sorted")
}

func TestFieldMap_DecodeTranslatesAndDropsUnknownColumns(t *testing.T) {
	m := NewItemFieldMap()

	decoded, dropped := m.Decode(map[string]any{
		"parent_item_id": "p-1",
		"purchased":      false,
		"server_only":    42,
	})

	assert.Equal(t, map[string]any{
		"parentItemId": "p-1",
		"purchased":    false,
	}, decoded)
	assert.Equal(t, []string{"server_only"}, dropped)
}

func TestFieldMap_EncodeDecodeRoundTrip(t *testing.T) {
	m := NewItemFieldMap()

	fields := map[string]any{
		"id":        "item-1",
		"accountId": int64(7),
		"price":     19.99,
		"version":   int64(3),
	}

	encoded, dropped := m.Encode(fields)
	require.Empty(t, dropped)

	decoded, dropped := m.Decode(encoded)
	require.Empty(t, dropped)
	assert.Equal(t, fields, decoded)
}

func TestFieldMap_ValidateReportsFieldsThatWouldVanish(t *testing.T) {
	m := NewItemFieldMap()

	assert.Empty(t, m.Validate(ItemFields), "every declared item field must be mapped")

	unmapped := m.Validate([]string{"name", "warehouse", "aisle"})
	assert.Equal(t, []string{"aisle", "warehouse"}, unmapped)
}
