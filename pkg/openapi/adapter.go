// Package openapi derives entity schemas from OpenAPI 3 documents, so a
// backend that already publishes its API contract can drive the engine
// without hand-written section declarations. Section grouping and order ride
// on an x-sections extension; field semantics beyond the standard keywords
// ride on x-format and x-free-text.
package openapi

import (
	"context"
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-profileforms/pkg/schema"
)

const (
	sectionsExtensionKey = "x-sections"
	formatExtensionKey   = "x-format"
	freeTextExtensionKey = "x-free-text"
)

// EntitySchemaFromFile loads an OpenAPI document from disk and derives the
// entity schema declared by the named component schema.
func EntitySchemaFromFile(ctx context.Context, path, componentName, kind string) (schema.EntitySchema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return schema.EntitySchema{}, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return EntitySchemaFromData(ctx, raw, componentName, kind)
}

// EntitySchemaFromData derives an entity schema from a raw OpenAPI document.
// The component schema's properties become field declarations, its required
// list marks required fields, and its x-sections extension supplies the
// ordered section list.
func EntitySchemaFromData(ctx context.Context, raw []byte, componentName, kind string) (schema.EntitySchema, error) {
	if len(raw) == 0 {
		return schema.EntitySchema{}, fmt.Errorf("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.EntitySchema{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return schema.EntitySchema{}, fmt.Errorf("openapi: document declares no component schemas")
	}
	ref, ok := doc.Components.Schemas[componentName]
	if !ok || ref == nil || ref.Value == nil {
		return schema.EntitySchema{}, fmt.Errorf("openapi: component schema %q not found", componentName)
	}
	component := ref.Value

	es := schema.EntitySchema{
		Kind:   kind,
		Fields: make(map[string]schema.Field, len(component.Properties)),
	}

	required := make(map[string]bool, len(component.Required))
	for _, name := range component.Required {
		required[name] = true
	}

	for name, propRef := range component.Properties {
		if propRef == nil || propRef.Value == nil {
			continue
		}
		decl := fieldFromSchema(propRef.Value)
		decl.Name = name
		decl.Required = required[name]
		es.Fields[name] = decl
	}

	sections, err := sectionsFromExtension(component.Extensions)
	if err != nil {
		return schema.EntitySchema{}, err
	}
	es.Sections = sections

	if err := es.Validate(); err != nil {
		return schema.EntitySchema{}, err
	}
	return es, nil
}

func fieldFromSchema(src *openapi3.Schema) schema.Field {
	decl := schema.Field{
		Type:  fieldType(src),
		Label: src.Title,
	}

	if src.MinLength > 0 {
		min := int(src.MinLength)
		decl.MinLength = &min
	}
	if src.MaxLength != nil {
		max := int(*src.MaxLength)
		decl.MaxLength = &max
	}
	if src.Min != nil {
		value := *src.Min
		decl.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		decl.Maximum = &value
	}
	if src.MinItems > 0 {
		min := int(src.MinItems)
		decl.MinItems = &min
	}
	if src.MaxItems != nil {
		max := int(*src.MaxItems)
		decl.MaxItems = &max
	}
	for _, member := range src.Enum {
		if s, ok := member.(string); ok {
			decl.Enum = append(decl.Enum, s)
		}
	}

	decl.Format = mapFormat(src)
	if flag, ok := src.Extensions[freeTextExtensionKey].(bool); ok {
		decl.FreeText = flag
	}
	return decl
}

func fieldType(src *openapi3.Schema) schema.FieldType {
	t := src.Type
	switch {
	case t == nil:
		return schema.FieldTypeString
	case t.Is(openapi3.TypeInteger):
		return schema.FieldTypeInteger
	case t.Is(openapi3.TypeNumber):
		return schema.FieldTypeNumber
	case t.Is(openapi3.TypeBoolean):
		return schema.FieldTypeBoolean
	case t.Is(openapi3.TypeArray):
		return schema.FieldTypeArray
	case t.Is(openapi3.TypeObject):
		return schema.FieldTypeObject
	default:
		return schema.FieldTypeString
	}
}

// mapFormat resolves the engine format tag: an explicit x-format extension
// wins, then the standard OpenAPI format keywords.
func mapFormat(src *openapi3.Schema) string {
	if custom, ok := src.Extensions[formatExtensionKey].(string); ok && custom != "" {
		return custom
	}
	switch src.Format {
	case "email":
		return schema.FormatEmail
	case "date":
		return schema.FormatDate
	case "uri", "url":
		return schema.FormatURL
	default:
		return ""
	}
}

func sectionsFromExtension(extensions map[string]any) ([]schema.Section, error) {
	raw, ok := extensions[sectionsExtensionKey]
	if !ok {
		return nil, fmt.Errorf("openapi: component schema is missing the %s extension", sectionsExtensionKey)
	}
	entries, ok := raw.([]any)
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("openapi: %s must be a non-empty list", sectionsExtensionKey)
	}

	sections := make([]schema.Section, 0, len(entries))
	for i, entry := range entries {
		node, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("openapi: %s entry %d is not an object", sectionsExtensionKey, i)
		}
		section := schema.Section{
			ID:    stringAttr(node, "id"),
			Label: stringAttr(node, "label"),
			Icon:  stringAttr(node, "icon"),
		}
		if section.ID == "" {
			return nil, fmt.Errorf("openapi: %s entry %d is missing an id", sectionsExtensionKey, i)
		}
		fields, ok := node["fields"].([]any)
		if !ok {
			return nil, fmt.Errorf("openapi: section %q declares no fields", section.ID)
		}
		for _, field := range fields {
			if name, ok := field.(string); ok && name != "" {
				section.Fields = append(section.Fields, name)
			}
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func stringAttr(node map[string]any, key string) string {
	if value, ok := node[key].(string); ok {
		return value
	}
	return ""
}
