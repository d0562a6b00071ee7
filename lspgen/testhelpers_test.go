package lspgen

import "github.com/lspcppgen/lspcppgen/metamodel"

func base(name string) TypeExpr {
	return &metamodel.Type{Value: metamodel.BaseType{Kind: "base", Name: name}}
}

func ref(name string) TypeExpr {
	return &metamodel.Type{Value: metamodel.ReferenceType{Kind: "reference", Name: name}}
}

func arr(element TypeExpr) TypeExpr {
	return &metamodel.Type{Value: metamodel.ArrayType{Kind: "array", Element: element}}
}

func or(items ...TypeExpr) TypeExpr {
	return &metamodel.Type{Value: metamodel.OrType{Kind: "or", Items: items}}
}

func stringLiteral(value string) TypeExpr {
	return &metamodel.Type{Value: metamodel.StringLiteralType{Kind: "stringLiteral", Value: value}}
}

func prop(name string, t TypeExpr, optional bool) PropertyDef {
	return PropertyDef{Name: name, TypeExpr: t, Optional: optional}
}

func newEmptyModel() *SchemaModel {
	return &SchemaModel{
		Structures:   map[string]*StructDef{},
		Enumerations: map[string]*EnumDef{},
		Aliases:      map[string]*AliasDef{},
	}
}
