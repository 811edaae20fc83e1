package models

import "strings"

// FieldDef describes a single field of an extracted table definition.
// Empty strings mean the attribute is absent on the element.
type FieldDef struct {
	Name    string
	Type    string
	Size    string
	Default string
}

// TableDef describes an extracted table definition keyed by field name
type TableDef struct {
	// Name is the table identity taken from the name attribute
	Name string

	// Fields maps field name to its definition. When the source element
	// declares duplicate field names the first occurrence wins.
	Fields map[string]FieldDef
}

// SchemaKind distinguishes table-level from field-level schema items
type SchemaKind string

const (
	// KindTable marks an item about a whole table definition
	KindTable SchemaKind = "table"
	// KindField marks an item about a single field of a table
	KindField SchemaKind = "field"
)

// FieldAttrChange records one differing field attribute with both values
type FieldAttrChange struct {
	Key      string
	OldValue string
	NewValue string
}

// SchemaChange represents one schema-level diff item
type SchemaChange struct {
	// ID is a stable key derived from kind, type, table and field
	ID string

	// Kind is table or field
	Kind SchemaKind

	// Type classifies the change
	Type DiffType

	// Table is the owning table name
	Table string

	// Field is the field name, empty for table items
	Field string

	// FieldCount is the number of fields of an added or removed table
	FieldCount int

	// Changes lists differing attributes for field-modified items, in
	// fixed attribute order
	Changes []FieldAttrChange

	// Def is the current (new side) or last known (old side) field
	// definition snapshot, nil for table items
	Def *FieldDef
}

// SchemaChangeID builds the stable item key: kind:type:table[:field]
func SchemaChangeID(kind SchemaKind, typ DiffType, table, field string) string {
	parts := []string{string(kind), string(typ), table}
	if field != "" {
		parts = append(parts, field)
	}
	return strings.Join(parts, ":")
}
