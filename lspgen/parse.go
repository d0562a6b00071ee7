package lspgen

import (
	"fmt"
	"strconv"

	"github.com/lspcppgen/lspcppgen/metamodel"
)

// ParseSchema decodes a parsed metaModel document into the lowering IR.
// Every structure, enumeration, alias, request and notification the
// metaModel defines becomes exactly one IR record; references between them
// are left as bare schema names; resolving those names is the name map's
// job (BuildNameMap), not the parser's.
//
// A required key missing from an entry (a structure/enumeration/alias
// without `name`, a request/notification without `method`) is a BadSchema
// condition (spec.md §4.2, §7): rather than proceeding with an empty-string
// name as the Python original's uncaught KeyError would eventually surface
// downstream, every such entry is collected into the returned Errors and
// excluded from the IR, so a single pass reports every structural problem
// in the schema rather than failing on the first.
func ParseSchema(m *metamodel.MetaModel) (*SchemaModel, *Errors) {
	errs := &Errors{}

	structures := make(map[string]*StructDef, len(m.Structures))
	for i, s := range m.Structures {
		if s.Name == "" {
			errs.Add(fmt.Sprintf("structures[%d]", i), "missing required key \"name\"")
			continue
		}
		properties := make([]PropertyDef, 0, len(s.Properties))
		for _, p := range s.Properties {
			properties = append(properties, PropertyDef{
				Name:     p.Name,
				TypeExpr: p.Type,
				Optional: p.Optional,
				Doc:      propertyDoc(p),
			})
		}
		parents := referenceNames(s.Extends)
		parents = append(parents, referenceNames(s.Mixins)...)
		structures[s.Name] = &StructDef{
			Name:       s.Name,
			Parents:    parents,
			Properties: properties,
			Doc:        structureDoc(s),
		}
	}

	enumerations := make(map[string]*EnumDef, len(m.Enumerations))
	for i, e := range m.Enumerations {
		if e.Name == "" {
			errs.Add(fmt.Sprintf("enumerations[%d]", i), "missing required key \"name\"")
			continue
		}
		values := make([]EnumValueDef, 0, len(e.Values))
		for _, v := range e.Values {
			values = append(values, EnumValueDef{
				Name:  v.Name,
				Value: enumValueText(v.Value),
				Doc:   enumEntryDoc(v),
			})
		}
		enumerations[e.Name] = &EnumDef{
			Name:                 e.Name,
			TypeExpr:             &metamodel.Type{Value: metamodel.BaseType{Kind: "base", Name: e.Type.Name}},
			Values:               values,
			SupportsCustomValues: e.SupportsCustomValues,
			Doc:                  enumerationDoc(e),
		}
	}

	aliases := make(map[string]*AliasDef, len(m.TypeAliases))
	for i, a := range m.TypeAliases {
		if a.Name == "" {
			errs.Add(fmt.Sprintf("typeAliases[%d]", i), "missing required key \"name\"")
			continue
		}
		aliases[a.Name] = &AliasDef{
			Name:     a.Name,
			TypeExpr: a.Type,
			Doc:      typeAliasDoc(a),
		}
	}

	requests := make([]*RequestDef, 0, len(m.Requests))
	for i, r := range m.Requests {
		if r.Method == "" {
			errs.Add(fmt.Sprintf("requests[%d]", i), "missing required key \"method\"")
			continue
		}
		requests = append(requests, &RequestDef{
			Method:   r.Method,
			TypeName: r.TypeName,
			Params:   firstParamsType(r.Params),
			Result:   r.Result,
			Doc:      requestDoc(r),
		})
	}

	notifications := make([]*NotificationDef, 0, len(m.Notifications))
	for i, n := range m.Notifications {
		if n.Method == "" {
			errs.Add(fmt.Sprintf("notifications[%d]", i), "missing required key \"method\"")
			continue
		}
		notifications = append(notifications, &NotificationDef{
			Method:   n.Method,
			TypeName: n.TypeName,
			Params:   firstParamsType(n.Params),
			Doc:      notificationDoc(n),
		})
	}

	return &SchemaModel{
		Structures:    structures,
		Enumerations:  enumerations,
		Aliases:       aliases,
		Requests:      requests,
		Notifications: notifications,
	}, errs
}

// referenceNames extracts the schema names of every reference-kind type in
// types, preserving order and dropping anything else (the metaModel's
// extends/mixins lists are documented to contain only reference-kind
// entries, but the wire format does not enforce it).
func referenceNames(types []*metamodel.Type) []string {
	var out []string
	for _, t := range types {
		if t == nil {
			continue
		}
		if ref, ok := t.Value.(metamodel.ReferenceType); ok {
			out = append(out, ref.Name)
		}
	}
	return out
}

// firstParamsType renders a Request/Notification's params field down to a
// single TypeExpr. The metaModel allows params to be an array of types
// (meaning the method takes a tuple of positional arguments); no LSP
// request in the upstream schema actually uses more than one params
// entry, so only the first is kept — a diagnostic-worthy case the
// generator does not need to reject outright.
func firstParamsType(p *metamodel.TypeOrTypeSlice) TypeExpr {
	items := p.Flatten()
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

func enumValueText(v metamodel.IntOrString) string {
	switch val := v.Value.(type) {
	case metamodel.IntValue:
		return strconv.Itoa(int(val))
	case metamodel.StringValue:
		return string(val)
	default:
		return ""
	}
}

func structureDoc(s *metamodel.Structure) DocInfo {
	return DocInfo{Documentation: s.Documentation, Since: s.Since, SinceTags: s.SinceTags, Deprecated: s.Deprecated, Proposed: s.Proposed}
}

func propertyDoc(p *metamodel.Property) DocInfo {
	return DocInfo{Documentation: p.Documentation, Since: p.Since, Deprecated: p.Deprecated, Proposed: p.Proposed}
}

func enumerationDoc(e *metamodel.Enumeration) DocInfo {
	return DocInfo{Documentation: e.Documentation, Since: e.Since, Deprecated: e.Deprecated, Proposed: e.Proposed}
}

func enumEntryDoc(v *metamodel.EnumerationEntry) DocInfo {
	return DocInfo{Documentation: v.Documentation, Since: v.Since, Deprecated: v.Deprecated, Proposed: v.Proposed}
}

func typeAliasDoc(a *metamodel.TypeAlias) DocInfo {
	return DocInfo{Documentation: a.Documentation, Since: a.Since, Deprecated: a.Deprecated, Proposed: a.Proposed}
}

func requestDoc(r *metamodel.Request) DocInfo {
	return DocInfo{Documentation: r.Documentation, Since: r.Since, Deprecated: r.Deprecated, Proposed: r.Proposed}
}

func notificationDoc(n *metamodel.Notification) DocInfo {
	return DocInfo{Documentation: n.Documentation, Since: n.Since, Deprecated: n.Deprecated, Proposed: n.Proposed}
}
