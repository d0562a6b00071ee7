package lspgen

import (
	"strings"
	"testing"
)

func TestSmallestUnsignedType(t *testing.T) {
	tests := []struct {
		max  int
		want string
	}{
		{0, "std::uint8_t"},
		{255, "std::uint8_t"},
		{256, "std::uint16_t"},
		{65535, "std::uint16_t"},
		{65536, "std::uint32_t"},
		{1 << 33, "std::uint64_t"},
	}
	for _, tt := range tests {
		if got := smallestUnsignedType(tt.max); got != tt.want {
			t.Errorf("smallestUnsignedType(%d) = %q, want %q", tt.max, got, tt.want)
		}
	}
}

func TestSmallestSignedType(t *testing.T) {
	tests := []struct {
		min, max int
		want     string
	}{
		{-1, 1, "std::int8_t"},
		{-128, 127, "std::int8_t"},
		{-129, 127, "std::int16_t"},
		{-40000, 40000, "std::int32_t"},
		{-1 << 33, 1 << 33, "std::int64_t"},
	}
	for _, tt := range tests {
		if got := smallestSignedType(tt.min, tt.max); got != tt.want {
			t.Errorf("smallestSignedType(%d, %d) = %q, want %q", tt.min, tt.max, got, tt.want)
		}
	}
}

func buildIntegerEnumModel(values []EnumValueDef, supportsCustom bool) *SchemaModel {
	model := newEmptyModel()
	model.Enumerations["Kind"] = &EnumDef{
		Name:                 "Kind",
		TypeExpr:             base("integer"),
		Values:               values,
		SupportsCustomValues: supportsCustom,
	}
	return model
}

func TestEmitEnumIntegerNarrowsUnderlyingType(t *testing.T) {
	model := buildIntegerEnumModel([]EnumValueDef{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "2"},
	}, false)
	nameMap := BuildNameMap([]string{"Kind"})
	g := NewGenerator(model, nameMap)

	got := g.emitEnum("Kind")
	if !strings.Contains(got, "enum class Kind : std::int8_t {") {
		t.Errorf("emitEnum() = %q, want int8_t underlying type", got)
	}
}

func TestEmitEnumOpenStringEnum(t *testing.T) {
	model := newEmptyModel()
	model.Enumerations["TraceValue"] = &EnumDef{
		Name:     "TraceValue",
		TypeExpr: base("string"),
		Values: []EnumValueDef{
			{Name: "off", Value: "off"},
			{Name: "messages", Value: "messages"},
		},
		SupportsCustomValues: true,
	}
	nameMap := BuildNameMap([]string{"TraceValue"})
	g := NewGenerator(model, nameMap)

	got := g.emitEnum("TraceValue")
	if !strings.Contains(got, "struct TraceValue : std::string {") {
		t.Errorf("emitEnum() = %q, want open-string struct form", got)
	}
	if !strings.Contains(got, `"off"`) {
		t.Errorf("emitEnum() = %q, want quoted literal value", got)
	}
}

func TestEmitEnumClosedStringEnum(t *testing.T) {
	model := newEmptyModel()
	model.Enumerations["TraceValue"] = &EnumDef{
		Name:     "TraceValue",
		TypeExpr: base("string"),
		Values: []EnumValueDef{
			{Name: "off", Value: "off"},
			{Name: "messages", Value: "messages"},
		},
		SupportsCustomValues: false,
	}
	nameMap := BuildNameMap([]string{"TraceValue"})
	g := NewGenerator(model, nameMap)

	got := g.emitEnum("TraceValue")
	if !strings.Contains(got, "enum class TraceValue : std::uint8_t {") {
		t.Errorf("emitEnum() = %q, want closed scoped enum form", got)
	}
	if !strings.Contains(got, "Off") || !strings.Contains(got, "Messages") {
		t.Errorf("emitEnum() = %q, want UpperCamel member names", got)
	}
}

func TestEmitStructEmptyBody(t *testing.T) {
	model := newEmptyModel()
	model.Structures["Empty"] = &StructDef{Name: "Empty"}
	nameMap := BuildNameMap([]string{"Empty"})
	g := NewGenerator(model, nameMap)

	got := g.emitStruct("Empty")
	if !strings.Contains(got, "// empty") {
		t.Errorf("emitStruct() = %q, want an \"// empty\" marker", got)
	}
}

func TestEmitStructMemberCollisionIsSuffixed(t *testing.T) {
	model := newEmptyModel()
	model.Structures["Parent"] = &StructDef{
		Name: "Parent",
		Properties: []PropertyDef{
			prop("value", base("string"), false),
		},
	}
	model.Structures["Child"] = &StructDef{
		Name:    "Child",
		Parents: []string{"Parent"},
		Properties: []PropertyDef{
			prop("value_", base("integer"), false),
		},
	}
	nameMap := BuildNameMap([]string{"Parent", "Child"})
	g := NewGenerator(model, nameMap)

	got := g.emitStruct("Child")
	if !strings.Contains(got, "value") {
		t.Errorf("emitStruct() = %q, want a first member named value", got)
	}
	if !strings.Contains(got, "integer value_2;") {
		t.Errorf("emitStruct() = %q, want the colliding local member suffixed as value_2", got)
	}
}
