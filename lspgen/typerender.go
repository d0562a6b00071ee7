package lspgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lspcppgen/lspcppgen/metamodel"
)

// TypeRenderer maps a schema TypeExpr to a target C++ type string, given
// the enclosing definition's name (for self-reference detection) and an
// owner path used only in diagnostic/error text.
type TypeRenderer struct {
	model   *SchemaModel
	nameMap map[string]string

	structNames           map[string]bool
	aliasNames             map[string]bool
	closedStringEnumNames  map[string]bool
	closedStringLiteralOwner map[string]string
}

// NewTypeRenderer builds a TypeRenderer for model, precomputing the set of
// closed string enums (string-typed enums that do not support custom
// values) and, among their literal values, the ones that belong to
// exactly one such enum — only those can be folded into an
// `enum_string<...>` reference at a stringLiteral use site, since a
// literal shared by two or more closed enums has no single owner to fold
// into (spec.md §9 Open Question (a), left non-transitive as specified).
func NewTypeRenderer(model *SchemaModel) *TypeRenderer {
	structNames := make(map[string]bool, len(model.Structures))
	for name := range model.Structures {
		structNames[name] = true
	}
	aliasNames := make(map[string]bool, len(model.Aliases))
	for name := range model.Aliases {
		aliasNames[name] = true
	}

	closedStringEnumNames := make(map[string]bool)
	for name, enumDef := range model.Enumerations {
		if baseTypeName(enumDef.TypeExpr) == "string" && !enumDef.SupportsCustomValues {
			closedStringEnumNames[name] = true
		}
	}

	literalOwnerCandidates := make(map[string]map[string]bool)
	// Sorted iteration over enum names keeps the owner-candidate sets'
	// construction order deterministic; the actual tie-break (dropping
	// literals with >1 owner) doesn't depend on order, but deterministic
	// iteration avoids incidental nondeterminism creeping into later
	// debugging.
	names := make([]string, 0, len(closedStringEnumNames))
	for name := range closedStringEnumNames {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, enumName := range names {
		enumDef := model.Enumerations[enumName]
		for _, value := range enumDef.Values {
			owners := literalOwnerCandidates[value.Value]
			if owners == nil {
				owners = make(map[string]bool)
				literalOwnerCandidates[value.Value] = owners
			}
			owners[enumName] = true
		}
	}
	closedStringLiteralOwner := make(map[string]string)
	for literal, owners := range literalOwnerCandidates {
		if len(owners) == 1 {
			for owner := range owners {
				closedStringLiteralOwner[literal] = owner
			}
		}
	}

	return &TypeRenderer{
		model:                    model,
		nameMap:                  nil,
		structNames:              structNames,
		aliasNames:               aliasNames,
		closedStringEnumNames:    closedStringEnumNames,
		closedStringLiteralOwner: closedStringLiteralOwner,
	}
}

// bindNameMap attaches the generation pass's global name map. Split from
// NewTypeRenderer because the renderer's closed-string-enum analysis only
// needs the IR, while rendering needs the resolved identifiers.
func (r *TypeRenderer) bindNameMap(nameMap map[string]string) {
	r.nameMap = nameMap
}

func (r *TypeRenderer) resolve(name string) string {
	return resolveName(r.nameMap, name)
}

func baseTypeName(t TypeExpr) string {
	if t == nil {
		return ""
	}
	if base, ok := t.Value.(metamodel.BaseType); ok {
		return base.Name
	}
	return ""
}

// RenderType renders a single TypeExpr to a C++ type string. currentStruct
// is the name of the struct the expression is nested in (empty outside a
// struct body); a reference to currentStruct itself renders as
// shared_ptr<T> to break the otherwise-infinite recursive layout.
func (r *TypeRenderer) RenderType(t TypeExpr, owner, currentStruct string) (string, error) {
	if t == nil {
		return "", &SchemaError{Path: owner, Message: "missing type expression"}
	}
	switch v := t.Value.(type) {
	case metamodel.BaseType:
		return v.Name, nil

	case metamodel.ReferenceType:
		if currentStruct != "" && v.Name == currentStruct {
			return fmt.Sprintf("std::shared_ptr<%s>", r.resolve(v.Name)), nil
		}
		if r.closedStringEnumNames[v.Name] {
			return fmt.Sprintf("enum_string<%s>", r.resolve(v.Name)), nil
		}
		return r.resolve(v.Name), nil

	case metamodel.ArrayType:
		element, err := r.RenderType(v.Element, owner+".element", currentStruct)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("std::vector<%s>", element), nil

	case metamodel.MapType:
		key, err := r.RenderType(v.Key, owner+".key", currentStruct)
		if err != nil {
			return "", err
		}
		value, err := r.RenderType(v.Value, owner+".value", currentStruct)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("std::map<%s, %s>", key, value), nil

	case metamodel.TupleType:
		items, err := r.renderAll(v.Items, owner+".tuple_item", currentStruct)
		if err != nil {
			return "", err
		}
		if len(items) == 0 {
			return "std::tuple<>", nil
		}
		return fmt.Sprintf("std::tuple<%s>", strings.Join(items, ", ")), nil

	case metamodel.OrType:
		return r.RenderOr(v.Items, owner, currentStruct)

	case metamodel.AndType:
		items, err := r.renderAll(v.Items, owner+".and_item", currentStruct)
		if err != nil {
			return "", err
		}
		if len(items) == 1 {
			return items[0], nil
		}
		return fmt.Sprintf("std::tuple<%s>", strings.Join(items, ", ")), nil

	case metamodel.StructureLiteralType:
		return "LspEmptyObject", nil

	case metamodel.StringLiteralType:
		if literalOwner := r.closedStringLiteralOwner[v.Value]; literalOwner != "" {
			return fmt.Sprintf("enum_string<%s>", r.resolve(literalOwner)), nil
		}
		return "string", nil

	case metamodel.IntegerLiteralType:
		return "integer", nil

	case metamodel.BooleanLiteralType:
		return "boolean", nil

	default:
		return "", &SchemaError{Path: owner, Message: fmt.Sprintf("unsupported type kind %T", v)}
	}
}

func (r *TypeRenderer) renderAll(items []*metamodel.Type, owner, currentStruct string) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		rendered, err := r.RenderType(item, owner, currentStruct)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

// RenderOr renders an `or` type's items: null is hoisted out (folding into
// `nullable<T>` when exactly one non-null alternative remains), duplicate
// renderings collapse, and what's left becomes `variant<...>` unless only
// one alternative survives.
func (r *TypeRenderer) RenderOr(items []*metamodel.Type, owner, currentStruct string) (string, error) {
	var rendered []string
	sawNull := false

	for _, item := range items {
		if base, ok := item.Value.(metamodel.BaseType); ok && base.Name == "null" {
			sawNull = true
			continue
		}
		r2, err := r.RenderType(item, owner+".or_item", currentStruct)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, r2)
	}

	var unique []string
	seen := make(map[string]bool)
	for _, item := range rendered {
		if !seen[item] {
			seen[item] = true
			unique = append(unique, item)
		}
	}

	if sawNull && len(unique) == 1 {
		return fmt.Sprintf("nullable<%s>", unique[0]), nil
	}
	if sawNull {
		unique = append([]string{"null"}, unique...)
	}

	switch len(unique) {
	case 0:
		return "null", nil
	case 1:
		return unique[0], nil
	default:
		return fmt.Sprintf("variant<%s>", strings.Join(unique, ", ")), nil
	}
}
