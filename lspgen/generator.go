package lspgen

import (
	"sort"
	"strconv"

	"github.com/lspcppgen/lspcppgen/genutil"
)

// Generator holds the per-run state the flattener, dependency graph and
// emitters share: the parsed model, the resolved name map, the type
// renderer, and a handful of memoization caches so that a struct with
// several descendants (or several uses in the dependency graph) only has
// its flattened properties computed once.
type Generator struct {
	model    *SchemaModel
	nameMap  map[string]string
	renderer *TypeRenderer

	structNames map[string]bool
	enumNames   map[string]bool
	aliasNames  map[string]bool

	structDepCache         map[string]map[Node]bool
	flattenedPropertyCache map[string][]FlattenedProperty

	diag *Diagnostics

	// closedStringEnumLiteralMembers maps a closed string enum's name to
	// a map from its literal wire value to the enumerator identifier that
	// value folds to. Built once up front (mirroring the member-naming
	// pass emit_enum runs for the enum body itself) so that make_member
	// can look up a stringLiteral property's default value without
	// re-running the enum's own name-deduplication logic.
	closedStringEnumLiteralMembers map[string]map[string]string
}

// NewGenerator builds a Generator for model using nameMap as the resolved
// global identifier namespace.
func NewGenerator(model *SchemaModel, nameMap map[string]string) *Generator {
	renderer := NewTypeRenderer(model)
	renderer.bindNameMap(nameMap)

	structNames := make(map[string]bool, len(model.Structures))
	for name := range model.Structures {
		structNames[name] = true
	}
	enumNames := make(map[string]bool, len(model.Enumerations))
	for name := range model.Enumerations {
		enumNames[name] = true
	}
	aliasNames := make(map[string]bool, len(model.Aliases))
	for name := range model.Aliases {
		aliasNames[name] = true
	}

	g := &Generator{
		model:                  model,
		nameMap:                nameMap,
		renderer:               renderer,
		structNames:            structNames,
		enumNames:              enumNames,
		aliasNames:             aliasNames,
		structDepCache:         make(map[string]map[Node]bool),
		flattenedPropertyCache: make(map[string][]FlattenedProperty),
		diag:                   &Diagnostics{},
		closedStringEnumLiteralMembers: make(map[string]map[string]string),
	}

	enumNamesSorted := make([]string, 0, len(renderer.closedStringEnumNames))
	for name := range renderer.closedStringEnumNames {
		enumNamesSorted = append(enumNamesSorted, name)
	}
	sort.Strings(enumNamesSorted)
	for _, enumName := range enumNamesSorted {
		enumDef := model.Enumerations[enumName]
		usedMemberNames := map[string]int{}
		valueToMember := map[string]string{}
		for index, value := range enumDef.Values {
			baseMemberName := genutil.EnumMemberUpperCamel(value.Value, "Value"+strconv.Itoa(index+1))
			dedupeIndex := usedMemberNames[baseMemberName]
			usedMemberNames[baseMemberName]++
			memberName := baseMemberName
			if dedupeIndex != 0 {
				memberName = baseMemberName + strconv.Itoa(dedupeIndex+1)
			}
			valueToMember[value.Value] = memberName
		}
		g.closedStringEnumLiteralMembers[enumName] = valueToMember
	}

	return g
}

// Diagnostics returns the diagnostics collected so far by this generator's
// emitters.
func (g *Generator) Diagnostics() *Diagnostics {
	return g.diag
}
