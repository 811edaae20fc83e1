package diff

import (
	"sort"

	"github.com/hvanbelle/xmldelta/pkg/models"
	"github.com/hvanbelle/xmldelta/pkg/xmltree"
)

// Default tags recognized during schema extraction
var (
	DefaultTableTags = []string{"struct", "table"}
	DefaultFieldTags = []string{"entry", "field", "column"}
)

// schemaAttrKeys is the fixed attribute set compared per field, in
// reporting order
var schemaAttrKeys = []string{"type", "size", "default"}

// SchemaOptions tunes schema extraction. Zero value uses the default
// table and field tags.
type SchemaOptions struct {
	TableTags []string
	FieldTags []string
}

// Schema extracts the table definitions of both trees and diffs them by
// name. Tables are elements with a recognized tag and a name attribute,
// found by depth-first scan; their fields are direct children with a
// recognized tag and a name attribute. Duplicate table or field names
// resolve deterministically to the first occurrence. Output is ordered
// by table name, then field name, lexicographically.
//
// A table present on one side yields a single table item carrying its
// field count; its fields are not separately emitted. For tables on
// both sides each field in the name union yields either an item or an
// unchanged count, with the fixed attribute set (type, size, default)
// compared for fields present on both sides.
func Schema(old, new *xmltree.Node, opts SchemaOptions) ([]models.SchemaChange, models.SchemaStats) {
	tableTags := tagSet(opts.TableTags, DefaultTableTags)
	fieldTags := tagSet(opts.FieldTags, DefaultFieldTags)

	oldTables := extractTables(old, tableTags, fieldTags)
	newTables := extractTables(new, tableTags, fieldTags)

	var items []models.SchemaChange
	var stats models.SchemaStats

	for _, name := range sortedKeys(oldTables, newTables) {
		oldTable, inOld := oldTables[name]
		newTable, inNew := newTables[name]

		switch {
		case !inOld:
			items = append(items, tableItem(models.DiffAdded, newTable))
			stats.TablesAdded++
			stats.Added++
			stats.Total++
		case !inNew:
			items = append(items, tableItem(models.DiffRemoved, oldTable))
			stats.TablesRemoved++
			stats.Removed++
			stats.Total++
		default:
			diffFields(oldTable, newTable, &items, &stats)
		}
	}

	return items, stats
}

func tableItem(typ models.DiffType, table models.TableDef) models.SchemaChange {
	return models.SchemaChange{
		ID:         models.SchemaChangeID(models.KindTable, typ, table.Name, ""),
		Kind:       models.KindTable,
		Type:       typ,
		Table:      table.Name,
		FieldCount: len(table.Fields),
	}
}

// diffFields compares the fields of a table present on both sides.
// Each field in the name union occupies one stats slot.
func diffFields(old, new models.TableDef, items *[]models.SchemaChange, stats *models.SchemaStats) {
	for _, name := range sortedFieldKeys(old.Fields, new.Fields) {
		oldField, inOld := old.Fields[name]
		newField, inNew := new.Fields[name]
		stats.Total++

		switch {
		case !inOld:
			def := newField
			*items = append(*items, models.SchemaChange{
				ID:    models.SchemaChangeID(models.KindField, models.DiffAdded, old.Name, name),
				Kind:  models.KindField,
				Type:  models.DiffAdded,
				Table: old.Name,
				Field: name,
				Def:   &def,
			})
			stats.FieldsAdded++
			stats.Added++
		case !inNew:
			def := oldField
			*items = append(*items, models.SchemaChange{
				ID:    models.SchemaChangeID(models.KindField, models.DiffRemoved, old.Name, name),
				Kind:  models.KindField,
				Type:  models.DiffRemoved,
				Table: old.Name,
				Field: name,
				Def:   &def,
			})
			stats.FieldsRemoved++
			stats.Removed++
		default:
			changes := diffFieldAttrs(oldField, newField)
			if len(changes) == 0 {
				stats.FieldsUnchanged++
				stats.Unchanged++
				continue
			}
			def := newField
			*items = append(*items, models.SchemaChange{
				ID:      models.SchemaChangeID(models.KindField, models.DiffModified, old.Name, name),
				Kind:    models.KindField,
				Type:    models.DiffModified,
				Table:   old.Name,
				Field:   name,
				Changes: changes,
				Def:     &def,
			})
			stats.FieldsModified++
			stats.Modified++
		}
	}
}

// diffFieldAttrs compares the fixed attribute set in reporting order
func diffFieldAttrs(old, new models.FieldDef) []models.FieldAttrChange {
	var changes []models.FieldAttrChange
	for _, key := range schemaAttrKeys {
		oldValue := fieldAttr(old, key)
		newValue := fieldAttr(new, key)
		if oldValue != newValue {
			changes = append(changes, models.FieldAttrChange{
				Key:      key,
				OldValue: oldValue,
				NewValue: newValue,
			})
		}
	}
	return changes
}

func fieldAttr(def models.FieldDef, key string) string {
	switch key {
	case "type":
		return def.Type
	case "size":
		return def.Size
	case "default":
		return def.Default
	}
	return ""
}

// extractTables walks the tree depth-first collecting named table
// elements. The first occurrence of a duplicate table name wins.
func extractTables(root *xmltree.Node, tableTags, fieldTags map[string]bool) map[string]models.TableDef {
	tables := make(map[string]models.TableDef)
	if root == nil {
		return tables
	}

	var scan func(n *xmltree.Node)
	scan = func(n *xmltree.Node) {
		if tableTags[n.Tag] {
			if name := n.AttrOr("name", ""); name != "" {
				if _, exists := tables[name]; !exists {
					tables[name] = extractFields(n, name, fieldTags)
				}
			}
		}
		for _, child := range n.Children {
			scan(child)
		}
	}
	scan(root)
	return tables
}

// extractFields collects the direct field children of a table element.
// The first occurrence of a duplicate field name wins.
func extractFields(table *xmltree.Node, name string, fieldTags map[string]bool) models.TableDef {
	def := models.TableDef{Name: name, Fields: make(map[string]models.FieldDef)}
	for _, child := range table.Children {
		if !fieldTags[child.Tag] {
			continue
		}
		fieldName := child.AttrOr("name", "")
		if fieldName == "" {
			continue
		}
		if _, exists := def.Fields[fieldName]; exists {
			continue
		}
		def.Fields[fieldName] = models.FieldDef{
			Name:    fieldName,
			Type:    child.AttrOr("type", ""),
			Size:    child.AttrOr("size", ""),
			Default: child.AttrOr("default", ""),
		}
	}
	return def
}

func tagSet(tags, fallback []string) map[string]bool {
	if len(tags) == 0 {
		tags = fallback
	}
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

func sortedKeys(a, b map[string]models.TableDef) []string {
	names := make([]string, 0, len(a)+len(b))
	for name := range a {
		names = append(names, name)
	}
	for name := range b {
		if _, ok := a[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func sortedFieldKeys(a, b map[string]models.FieldDef) []string {
	names := make([]string, 0, len(a)+len(b))
	for name := range a {
		names = append(names, name)
	}
	for name := range b {
		if _, ok := a[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
