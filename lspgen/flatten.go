package lspgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lspcppgen/lspcppgen/genutil"
	"github.com/lspcppgen/lspcppgen/metamodel"
)

// walkTypeRefs records every struct/enum/alias reference type reaches,
// skipping a self-reference to currentStruct (handled by shared_ptr
// indirection rather than a forward-declaration dependency) and recursive
// aliases (which the support header, not the generator, defines).
func (g *Generator) walkTypeRefs(t TypeExpr, currentStruct string, out map[Node]bool) {
	if t == nil {
		return
	}
	switch v := t.Value.(type) {
	case metamodel.ReferenceType:
		if v.Name == currentStruct {
			return
		}
		switch {
		case g.structNames[v.Name]:
			out[Node{KindStruct, v.Name}] = true
		case g.enumNames[v.Name]:
			out[Node{KindEnum, v.Name}] = true
		case g.aliasNames[v.Name] && !recursiveAliases[v.Name]:
			out[Node{KindAlias, v.Name}] = true
		}
	case metamodel.StringLiteralType:
		if owner, ok := g.renderer.closedStringLiteralOwner[v.Value]; ok && g.enumNames[owner] {
			out[Node{KindEnum, owner}] = true
		}
	case metamodel.ArrayType:
		g.walkTypeRefs(v.Element, currentStruct, out)
	case metamodel.MapType:
		g.walkTypeRefs(v.Key, currentStruct, out)
		g.walkTypeRefs(v.Value, currentStruct, out)
	case metamodel.OrType:
		for _, item := range v.Items {
			g.walkTypeRefs(item, currentStruct, out)
		}
	case metamodel.AndType:
		for _, item := range v.Items {
			g.walkTypeRefs(item, currentStruct, out)
		}
	case metamodel.TupleType:
		for _, item := range v.Items {
			g.walkTypeRefs(item, currentStruct, out)
		}
	case metamodel.StructureLiteralType:
		for _, prop := range v.Value.Properties {
			g.walkTypeRefs(prop.Type, currentStruct, out)
		}
	}
}

// collectFlattenedProperties returns struct_name's single-inheritance
// flattened property list: the sole struct parent's own flattened
// properties, in order, followed by struct_name's own properties. A
// struct with zero or multiple struct parents contributes only its own
// properties here (multi-parent structs flatten via `flatten<Parent>`
// members instead — see collectStructMembers). stack guards against an
// (invalid) cyclic parent chain; an in-progress name on the stack returns
// empty rather than looping forever.
func (g *Generator) collectFlattenedProperties(structName string, stack map[string]bool) []FlattenedProperty {
	if cached, ok := g.flattenedPropertyCache[structName]; ok {
		out := make([]FlattenedProperty, len(cached))
		copy(out, cached)
		return out
	}
	if stack == nil {
		stack = map[string]bool{}
	}
	if stack[structName] {
		return nil
	}
	stack[structName] = true

	structDef := g.model.Structures[structName]
	var out []FlattenedProperty

	if len(structDef.Parents) == 1 && g.structNames[structDef.Parents[0]] {
		out = append(out, g.collectFlattenedProperties(structDef.Parents[0], stack)...)
	}
	for _, prop := range structDef.Properties {
		out = append(out, FlattenedProperty{Prop: prop, DeclaredIn: structName})
	}

	delete(stack, structName)
	cached := make([]FlattenedProperty, len(out))
	copy(cached, out)
	g.flattenedPropertyCache[structName] = cached
	return out
}

// structDependencies returns the dependency-graph nodes structName's
// emitted declaration needs already declared: its structural parents (when
// multi-parent, since those become flatten<Parent> members) and every
// struct/enum/alias reference reachable from its flattened properties'
// types.
func (g *Generator) structDependencies(structName string) map[Node]bool {
	if cached, ok := g.structDepCache[structName]; ok {
		out := make(map[Node]bool, len(cached))
		for k := range cached {
			out[k] = true
		}
		return out
	}

	structDef := g.model.Structures[structName]
	deps := map[Node]bool{}
	if len(structDef.Parents) > 1 {
		for _, parent := range structDef.Parents {
			if g.structNames[parent] {
				deps[Node{KindStruct, parent}] = true
			}
		}
	}

	for _, flat := range g.collectFlattenedProperties(structName, nil) {
		g.walkTypeRefs(flat.Prop.TypeExpr, flat.DeclaredIn, deps)
	}

	delete(deps, Node{KindStruct, structName})
	cached := make(map[Node]bool, len(deps))
	for k := range deps {
		cached[k] = true
	}
	g.structDepCache[structName] = cached
	return deps
}

func (g *Generator) isOptionalBool(prop PropertyDef) bool {
	return prop.Optional && baseTypeName(prop.TypeExpr) == "boolean" && isBaseKind(prop.TypeExpr)
}

func isBaseKind(t TypeExpr) bool {
	if t == nil {
		return false
	}
	_, ok := t.Value.(metamodel.BaseType)
	return ok
}

var suspiciousBoolPatterns = []string{
	"default to true", "defaults to true", "default is true", "true by default",
}

// boolDefaultNeedsWarning reports whether prop's documentation text
// contains language suggesting its default is true, which contradicts
// optional_bool's false zero-initialization. This is a plain substring
// heuristic, not a full regex match, since the phrasing patterns involved
// are short literal English phrases rather than a structured grammar.
func boolDefaultNeedsWarning(doc string) bool {
	if strings.TrimSpace(doc) == "" {
		return false
	}
	lower := strings.ToLower(doc)
	for _, pattern := range suspiciousBoolPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	if strings.Contains(lower, "if omitted") && strings.Contains(lower, "true") {
		return true
	}
	if strings.Contains(lower, "when omitted") && strings.Contains(lower, "true") {
		return true
	}
	return false
}

// propertyMemberName sanitizes a schema property name into a C++ member
// name.
func propertyMemberName(schemaPropertyName string) (string, bool) {
	return genutil.SanitizeIdentifier(genutil.CamelToSnake(schemaPropertyName), "field")
}

// isTypeSubtype reports whether child is always assignable where parent is
// expected — the test a single-inheritance override must pass to be
// treated as a safe narrowing rather than a conflicting redefinition.
func isTypeSubtype(child, parent TypeExpr) bool {
	if typeExprEqual(child, parent) {
		return true
	}
	if parent == nil || child == nil {
		return false
	}

	if pv, ok := parent.Value.(metamodel.OrType); ok {
		for _, item := range pv.Items {
			if isTypeSubtype(child, item) {
				return true
			}
		}
		if _, childIsOr := child.Value.(metamodel.OrType); !childIsOr {
			return false
		}
	}
	if cv, ok := child.Value.(metamodel.OrType); ok {
		if len(cv.Items) == 0 {
			return false
		}
		for _, item := range cv.Items {
			if !isTypeSubtype(item, parent) {
				return false
			}
		}
		return true
	}

	switch pv := parent.Value.(type) {
	case metamodel.BaseType:
		switch cv := child.Value.(type) {
		case metamodel.BaseType:
			return cv.Name == pv.Name
		case metamodel.StringLiteralType:
			return pv.Name == "string"
		case metamodel.IntegerLiteralType:
			if pv.Name == "integer" {
				return true
			}
			if pv.Name == "uinteger" {
				return cv.Value >= 0
			}
			return false
		case metamodel.BooleanLiteralType:
			return pv.Name == "boolean"
		default:
			return false
		}

	case metamodel.StringLiteralType:
		cv, ok := child.Value.(metamodel.StringLiteralType)
		return ok && cv.Value == pv.Value

	case metamodel.IntegerLiteralType:
		cv, ok := child.Value.(metamodel.IntegerLiteralType)
		return ok && cv.Value == pv.Value

	case metamodel.BooleanLiteralType:
		cv, ok := child.Value.(metamodel.BooleanLiteralType)
		return ok && cv.Value == pv.Value

	case metamodel.ReferenceType:
		cv, ok := child.Value.(metamodel.ReferenceType)
		return ok && cv.Name == pv.Name

	case metamodel.ArrayType:
		cv, ok := child.Value.(metamodel.ArrayType)
		return ok && isTypeSubtype(cv.Element, pv.Element)

	case metamodel.MapType:
		cv, ok := child.Value.(metamodel.MapType)
		return ok && isTypeSubtype(cv.Key, pv.Key) && isTypeSubtype(cv.Value, pv.Value)

	case metamodel.TupleType:
		cv, ok := child.Value.(metamodel.TupleType)
		if !ok || len(cv.Items) != len(pv.Items) {
			return false
		}
		for i := range pv.Items {
			if !isTypeSubtype(cv.Items[i], pv.Items[i]) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// typeExprEqual reports whether two type expressions are the identical
// shape — the `child == parent` fast path isTypeSubtype checks before
// falling back to the kind-by-kind narrowing rules.
func typeExprEqual(a, b TypeExpr) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.Value.(type) {
	case metamodel.BaseType:
		bv, ok := b.Value.(metamodel.BaseType)
		return ok && av.Name == bv.Name
	case metamodel.ReferenceType:
		bv, ok := b.Value.(metamodel.ReferenceType)
		return ok && av.Name == bv.Name
	case metamodel.StringLiteralType:
		bv, ok := b.Value.(metamodel.StringLiteralType)
		return ok && av.Value == bv.Value
	case metamodel.IntegerLiteralType:
		bv, ok := b.Value.(metamodel.IntegerLiteralType)
		return ok && av.Value == bv.Value
	case metamodel.BooleanLiteralType:
		bv, ok := b.Value.(metamodel.BooleanLiteralType)
		return ok && av.Value == bv.Value
	case metamodel.ArrayType:
		bv, ok := b.Value.(metamodel.ArrayType)
		return ok && typeExprEqual(av.Element, bv.Element)
	case metamodel.MapType:
		bv, ok := b.Value.(metamodel.MapType)
		return ok && typeExprEqual(av.Key, bv.Key) && typeExprEqual(av.Value, bv.Value)
	case metamodel.TupleType:
		return typeExprSliceEqual(av.Items, b)
	case metamodel.OrType:
		bv, ok := b.Value.(metamodel.OrType)
		return ok && typeExprListEqual(av.Items, bv.Items)
	case metamodel.AndType:
		bv, ok := b.Value.(metamodel.AndType)
		return ok && typeExprListEqual(av.Items, bv.Items)
	default:
		return false
	}
}

func typeExprSliceEqual(items []*metamodel.Type, b TypeExpr) bool {
	bv, ok := b.Value.(metamodel.TupleType)
	return ok && typeExprListEqual(items, bv.Items)
}

func typeExprListEqual(a, b []*metamodel.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !typeExprEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// isSafeOverride reports whether childProp may silently replace an
// inherited parentProp during single-inheritance flattening: the names
// must match, the child may not be optional where the parent is required,
// and the child's type must be a safe subtype of the parent's.
func isSafeOverride(parentProp, childProp PropertyDef) (bool, string) {
	if parentProp.Name != childProp.Name {
		return false, fmt.Sprintf("member-name collision between `%s` and `%s`", parentProp.Name, childProp.Name)
	}
	if childProp.Optional && !parentProp.Optional {
		return false, "child field is optional while parent field is required"
	}
	if !isTypeSubtype(childProp.TypeExpr, parentProp.TypeExpr) {
		return false, "child field type is not a safe subtype of parent field type"
	}
	return true, "safe narrowing"
}

// makeMember renders flatProp as a MemberDef in the context of
// ownerStruct. inheritedFrom, if non-empty, names the ancestor struct the
// property was promoted from, which is appended as a comment suffix.
func (g *Generator) makeMember(ownerStruct string, flatProp FlattenedProperty, inheritedFrom string) MemberDef {
	prop := flatProp.Prop
	ownerPath := fmt.Sprintf("%s.%s", g.nameMap[ownerStruct], prop.Name)

	renderedType, err := g.renderer.RenderType(prop.TypeExpr, ownerPath, flatProp.DeclaredIn)
	if err != nil {
		renderedType = "LspEmptyObject"
	}

	var defaultValue string
	hasDefault := false

	switch {
	case g.isOptionalBool(prop):
		renderedType = "optional_bool"
		defaultValue = "{}"
		hasDefault = true
		if boolDefaultNeedsWarning(prop.Doc.Documentation) {
			g.diag.AddBoolDefaultWarning(fmt.Sprintf(
				"%s.%s: optional bool defaults to false but docs suggest default true.", ownerStruct, prop.Name))
		}
	case prop.Optional:
		if strings.HasPrefix(renderedType, "variant<") && strings.HasSuffix(renderedType, ">") {
			args := renderedType[len("variant<") : len(renderedType)-1]
			renderedType = fmt.Sprintf("optional_variant<%s>", args)
		} else {
			renderedType = fmt.Sprintf("optional<%s>", renderedType)
		}
		defaultValue = "{}"
		hasDefault = true
	default:
		if lit, ok := prop.TypeExpr.Value.(metamodel.StringLiteralType); ok {
			if ownerEnum, ok := g.renderer.closedStringLiteralOwner[lit.Value]; ok {
				if memberName, ok := g.closedStringEnumLiteralMembers[ownerEnum][lit.Value]; ok {
					defaultValue = fmt.Sprintf("%s::%s", g.nameMap[ownerEnum], memberName)
					hasDefault = true
				}
			}
		}
	}

	memberName, keywordHit := propertyMemberName(prop.Name)
	if keywordHit {
		g.diag.AddKeywordHit(fmt.Sprintf(
			"%s.%s: renamed to `%s` due to C++ keyword collision.", ownerStruct, prop.Name, memberName))
	}

	comments := genutil.BuildDocLines(prop.Doc.Documentation, prop.Doc.Since, prop.Doc.SinceTags, prop.Doc.Deprecated, prop.Doc.Proposed)
	if len(comments) == 0 {
		comments = []string{fmt.Sprintf("Schema field: %s.", prop.Name)}
	}
	if inheritedFrom != "" {
		suffix := fmt.Sprintf("(Inherited from [%s])", inheritedFrom)
		comments[len(comments)-1] = comments[len(comments)-1] + " " + suffix
	}

	return MemberDef{
		CxxType:      renderedType,
		BaseName:     memberName,
		Comments:     comments,
		DefaultValue: defaultValue,
		HasDefault:   hasDefault,
	}
}

// makeFlattenMember builds the `flatten<Parent>` member a multi-parent
// struct emits for one of its structural parents.
func (g *Generator) makeFlattenMember(ownerStruct, parentName string) MemberDef {
	parentCpp := resolveName(g.nameMap, parentName)
	parentFieldName, keywordHit := genutil.SanitizeIdentifier(genutil.CamelToSnake(parentCpp), "base")
	if keywordHit {
		g.diag.AddKeywordHit(fmt.Sprintf(
			"%s.%s: renamed flatten field to `%s` due to C++ keyword collision.", ownerStruct, parentName, parentFieldName))
	}
	return MemberDef{
		CxxType:  fmt.Sprintf("flatten<%s>", parentCpp),
		BaseName: parentFieldName,
	}
}

// collectStructMembers computes the ordered member list for structName:
// single-parent structs inherit the parent's flattened properties (an
// inherited property the child redeclares safely is dropped, leaving only
// the child's own declaration among its local properties; an unsafe
// redeclaration keeps both and records a diagnostic); multi-parent structs
// instead get one
// flatten<Parent> member per structural parent. Either way, the struct's
// own declared properties follow.
func (g *Generator) collectStructMembers(structName string) []MemberDef {
	structDef := g.model.Structures[structName]
	var members []MemberDef

	switch {
	case len(structDef.Parents) == 1 && g.structNames[structDef.Parents[0]]:
		parent := structDef.Parents[0]
		localPropsByMemberName := map[string]PropertyDef{}
		for _, prop := range structDef.Properties {
			memberName, _ := propertyMemberName(prop.Name)
			localPropsByMemberName[memberName] = prop
		}

		for _, flat := range g.collectFlattenedProperties(parent, nil) {
			inheritedName, _ := propertyMemberName(flat.Prop.Name)
			localProp, hasLocal := localPropsByMemberName[inheritedName]
			if hasLocal {
				safe, reason := isSafeOverride(flat.Prop, localProp)
				if safe {
					continue
				}
				g.diag.AddUnsafeOverride(fmt.Sprintf(
					"%s.%s: inherited `%s` from `%s` conflicts with local `%s`; %s.",
					structName, inheritedName, flat.Prop.Name, flat.DeclaredIn, localProp.Name, reason))
			}
			members = append(members, g.makeMember(structName, flat, parent))
		}

	case len(structDef.Parents) > 1:
		for _, parent := range structDef.Parents {
			if g.structNames[parent] {
				members = append(members, g.makeFlattenMember(structName, parent))
			}
		}
	}

	for _, prop := range structDef.Properties {
		members = append(members, g.makeMember(structName, FlattenedProperty{Prop: prop, DeclaredIn: structName}, ""))
	}
	return members
}

// uniqueMemberName resolves a collision between baseName and an
// already-emitted member of structName, suffixing with "_2", "_3", … and
// recording a diagnostic every time a rename is needed. usedNames is the
// per-struct counter: it must be a fresh map per emitted struct, since
// member names only need to be unique within their own struct body.
func (g *Generator) uniqueMemberName(structName, baseName string, usedNames map[string]int) string {
	index := usedNames[baseName]
	usedNames[baseName]++
	if index == 0 {
		return baseName
	}
	renamed := baseName + "_" + strconv.Itoa(index+1)
	g.diag.AddMemberCollision(fmt.Sprintf("%s.%s: duplicate member name, renamed to `%s`.", structName, baseName, renamed))
	return renamed
}
