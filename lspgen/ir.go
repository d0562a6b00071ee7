// Package lspgen lowers a parsed LSP metaModel into a single C++23 header:
// it builds a typed intermediate representation, resolves a collision-free
// global identifier namespace, flattens single-inheritance property chains,
// orders definitions topologically, and renders each one as a C++
// declaration. It mirrors the shape of a schema-to-target-language code
// generator — IR construction, name resolution, dependency-ordered
// emission — the way ygen lowers a YANG schema tree into Go/proto structs,
// but the schema here is the LSP metaModel and the target is a single
// header file rather than a package of source files.
package lspgen

import "github.com/lspcppgen/lspcppgen/metamodel"

// DocInfo carries the documentation metadata attached to almost every
// schema-level item: free-text documentation, version/deprecation
// provenance, and a proposed flag.
type DocInfo struct {
	Documentation string
	Since         string
	SinceTags     []string
	Deprecated    string
	Proposed      bool
}

// TypeExpr is a schema type expression. The wire shape decoded by
// metamodel.Type already matches what the lowering rules need — a
// "kind"-discriminated tagged union — so the IR reuses it directly rather
// than re-declaring an equivalent shape.
type TypeExpr = *metamodel.Type

// PropertyDef is a single field of a struct or a structure literal, named
// by the schema's property name (not yet sanitized into a C++ member
// name — see propertyMemberName).
type PropertyDef struct {
	Name     string
	TypeExpr TypeExpr
	Optional bool
	Doc      DocInfo
}

// StructDef is a schema structure: an ordered parent list (extends then
// mixins, reference-kind entries only, in schema order) and an ordered
// property list.
type StructDef struct {
	Name       string
	Parents    []string
	Properties []PropertyDef
	Doc        DocInfo
}

// EnumValueDef is one member of an EnumDef.
type EnumValueDef struct {
	Name  string
	Value string
	Doc   DocInfo
}

// EnumDef is a schema enumeration: an underlying base type expression, an
// ordered member list, and whether unlisted values are still permitted at
// runtime.
type EnumDef struct {
	Name                 string
	TypeExpr             TypeExpr
	Values               []EnumValueDef
	SupportsCustomValues bool
	Doc                  DocInfo
}

// AliasDef is a schema type alias: a name bound to another type
// expression.
type AliasDef struct {
	Name     string
	TypeExpr TypeExpr
	Doc      DocInfo
}

// RequestDef is an LSP request: a method name, an optional declared type
// name (used to derive a synthesized params struct name), an optional
// params type, and an optional result type.
type RequestDef struct {
	Method   string
	TypeName string
	Params   TypeExpr
	Result   TypeExpr
	Doc      DocInfo
}

// NotificationDef is an LSP notification: a method name, an optional
// declared type name, and an optional params type.
type NotificationDef struct {
	Method   string
	TypeName string
	Params   TypeExpr
	Doc      DocInfo
}

// ExtraParamDef is a synthesized empty params struct for a request or
// notification whose schema omits a params field.
type ExtraParamDef struct {
	Name   string
	Method string
}

// SchemaModel is the parsed IR: every structure, enumeration and alias
// keyed by schema name, plus the ordered request and notification lists.
type SchemaModel struct {
	Structures    map[string]*StructDef
	Enumerations  map[string]*EnumDef
	Aliases       map[string]*AliasDef
	Requests      []*RequestDef
	Notifications []*NotificationDef
}

// FlattenedProperty pairs a PropertyDef with the name of the struct that
// declares it — its own owner for a local property, or an ancestor's name
// when the property was inherited through single-parent flattening.
type FlattenedProperty struct {
	Prop        PropertyDef
	DeclaredIn  string
}

// MemberDef is a fully rendered C++ struct member: its type, its base
// (pre-collision-resolution) member name, the doc comment lines preceding
// it, and an optional default-value initializer.
type MemberDef struct {
	CxxType      string
	BaseName     string
	Comments     []string
	DefaultValue string
	HasDefault   bool
}

// NodeKind discriminates the three emittable IR definition kinds that
// participate in the dependency graph and topological sort.
type NodeKind byte

const (
	// KindStruct identifies a StructDef node.
	KindStruct NodeKind = 'S'
	// KindEnum identifies an EnumDef node.
	KindEnum NodeKind = 'E'
	// KindAlias identifies an AliasDef node.
	KindAlias NodeKind = 'A'
)

// Node identifies a single emittable definition by kind and schema name.
type Node struct {
	Kind NodeKind
	Name string
}

// Less orders nodes first by Kind then by Name, matching the tuple
// ordering Python gets for free when sorting (kind, name) pairs — this is
// the tie-breaking rule the topological sort and the initial queue both
// rely on for deterministic output.
func (n Node) Less(other Node) bool {
	if n.Kind != other.Kind {
		return n.Kind < other.Kind
	}
	return n.Name < other.Name
}

// recursiveAliases names the aliases that are excluded from the
// dependency graph and emission order because they are recursive by
// design (an LSPAny-shaped alias that refers to itself transitively
// through array/map/structure-literal nesting); the support header
// defines these directly rather than the generator attempting to order
// them.
var recursiveAliases = map[string]bool{
	"LSPAny":    true,
	"LSPArray":  true,
	"LSPObject": true,
}
