// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"sort"
)

// FieldMap is the declared bidirectional codec between local (camelCase)
// field names and server (snake_case) column names. Only mapped fields cross
// the wire: encoding a field absent from the map drops it and reports it in
// the second return value so the caller can log a visible warning. New
// persisted fields must be added to the map to be preserved.
type FieldMap struct {
	localToServer map[string]string
	serverToLocal map[string]string
}

// NewFieldMap builds a FieldMap from local→server pairs. Duplicate server
// names are rejected so the codec stays invertible.
func NewFieldMap(pairs map[string]string) (*FieldMap, error) {
	m := &FieldMap{
		localToServer: make(map[string]string, len(pairs)),
		serverToLocal: make(map[string]string, len(pairs)),
	}

	for local, server := range pairs {
		if prev, ok := m.serverToLocal[server]; ok {
			return nil, fmt.Errorf("field map is not invertible: %q and %q both map to %q", prev, local, server)
		}
		m.localToServer[local] = server
		m.serverToLocal[server] = local
	}

	return m, nil
}

// Encode translates a local field set into server column names. Unmapped
// fields are dropped and returned sorted in dropped.
func (m *FieldMap) Encode(fields map[string]any) (encoded map[string]any, dropped []string) {
	encoded = make(map[string]any, len(fields))
	for name, value := range fields {
		server, ok := m.localToServer[name]
		if !ok {
			dropped = append(dropped, name)
			continue
		}
		encoded[server] = value
	}
	sort.Strings(dropped)
	return encoded, dropped
}

// Decode translates a server field set back into local names. Unknown server
// columns are dropped and returned sorted in dropped.
func (m *FieldMap) Decode(fields map[string]any) (decoded map[string]any, dropped []string) {
	decoded = make(map[string]any, len(fields))
	for name, value := range fields {
		local, ok := m.serverToLocal[name]
		if !ok {
			dropped = append(dropped, name)
			continue
		}
		decoded[local] = value
	}
	sort.Strings(dropped)
	return decoded, dropped
}

// Validate checks the map against an entity's full local field set and
// returns the fields that would silently vanish, so startup can surface them
// instead of losing data quietly.
func (m *FieldMap) Validate(localFields []string) (unmapped []string) {
	for _, name := range localFields {
		if _, ok := m.localToServer[name]; !ok {
			unmapped = append(unmapped, name)
		}
	}
	sort.Strings(unmapped)
	return unmapped
}

// ItemFields is the full local field set of the item entity, used to validate
// the field map at startup.
var ItemFields = []string{
	"id",
	"accountId",
	"projectId",
	"name",
	"description",
	"price",
	"quantity",
	"taxRate",
	"taxIncluded",
	"purchased",
	"parentItemId",
	"version",
	"createdAt",
	"updatedAt",
}

// NewItemFieldMap returns the field map for the item entity: identifiers,
// prices, flags, tax fields, lineage references, version, and audit fields.
func NewItemFieldMap() *FieldMap {
	m, err := NewFieldMap(map[string]string{
		"id":           "id",
		"accountId":    "account_id",
		"projectId":    "project_id",
		"name":         "name",
		"description":  "description",
		"price":        "price",
		"quantity":     "quantity",
		"taxRate":      "tax_rate",
		"taxIncluded":  "tax_included",
		"purchased":    "purchased",
		"parentItemId": "parent_item_id",
		"version":      "version",
		"createdAt":    "created_at",
		"updatedAt":    "updated_at",
	})
	if err != nil {
		// The literal map above is invertible; reaching here is a
		// programming error.
		panic(err)
	}
	return m
}
