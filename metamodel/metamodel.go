// Package metamodel decodes the LSP metaModel JSON schema into Go values.
// It models only the subset of the wire format the lowering pipeline
// consumes: message-direction, dynamic-registration and partial-result
// fields are parsed by the upstream schema but have no counterpart in a
// single-pass header generator, so they are not represented here.
package metamodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// MetaModel is the top-level decoded document: the five collections the
// lowering pipeline reads. Any other top-level key in the source JSON is
// ignored by encoding/json's default struct decoding.
type MetaModel struct {
	Structures    []*Structure   `json:"structures"`
	Enumerations  []*Enumeration `json:"enumerations"`
	TypeAliases   []*TypeAlias   `json:"typeAliases"`
	Requests      []*Request     `json:"requests"`
	Notifications []*Notification `json:"notifications"`
}

// Structure defines the shape of an object literal (an interface in the
// TypeScript source).
type Structure struct {
	Name          string      `json:"name"`
	Documentation string      `json:"documentation,omitempty"`
	Since         string      `json:"since,omitempty"`
	SinceTags     []string    `json:"sinceTags,omitempty"`
	Deprecated    string      `json:"deprecated,omitempty"`
	Proposed      bool        `json:"proposed,omitempty"`
	Extends       []*Type     `json:"extends,omitempty"`
	Mixins        []*Type     `json:"mixins,omitempty"`
	Properties    []*Property `json:"properties"`
}

// Property is a single named, typed member of a Structure or
// StructureLiteral.
type Property struct {
	Name          string `json:"name"`
	Type          *Type  `json:"type"`
	Optional      bool   `json:"optional,omitempty"`
	Documentation string `json:"documentation,omitempty"`
	Since         string `json:"since,omitempty"`
	Deprecated    string `json:"deprecated,omitempty"`
	Proposed      bool   `json:"proposed,omitempty"`
}

// Enumeration defines a closed or open set of named values.
type Enumeration struct {
	Name                 string              `json:"name"`
	Type                 EnumerationBaseType `json:"type"`
	Values               []*EnumerationEntry `json:"values"`
	SupportsCustomValues bool                `json:"supportsCustomValues,omitempty"`
	Documentation        string              `json:"documentation,omitempty"`
	Since                string              `json:"since,omitempty"`
	Deprecated           string              `json:"deprecated,omitempty"`
	Proposed             bool                `json:"proposed,omitempty"`
}

// EnumerationBaseType names the underlying type of an Enumeration's values.
type EnumerationBaseType struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// EnumerationEntry is a single named value of an Enumeration.
type EnumerationEntry struct {
	Name          string      `json:"name"`
	Value         IntOrString `json:"value"`
	Documentation string      `json:"documentation,omitempty"`
	Since         string      `json:"since,omitempty"`
	Deprecated    string      `json:"deprecated,omitempty"`
	Proposed      bool        `json:"proposed,omitempty"`
}

// TypeAlias defines a named alias for another type expression.
type TypeAlias struct {
	Name          string `json:"name"`
	Type          *Type  `json:"type"`
	Documentation string `json:"documentation,omitempty"`
	Since         string `json:"since,omitempty"`
	Deprecated    string `json:"deprecated,omitempty"`
	Proposed      bool   `json:"proposed,omitempty"`
}

// Request represents an LSP request method: a named operation with a
// parameter type and a result type.
type Request struct {
	Method        string           `json:"method"`
	TypeName      string           `json:"typeName,omitempty"`
	Params        *TypeOrTypeSlice `json:"params,omitempty"`
	Result        *Type            `json:"result"`
	Documentation string           `json:"documentation,omitempty"`
	Since         string           `json:"since,omitempty"`
	Deprecated    string           `json:"deprecated,omitempty"`
	Proposed      bool             `json:"proposed,omitempty"`
}

// Notification represents an LSP notification method: a named operation
// with a parameter type and no result.
type Notification struct {
	Method        string           `json:"method"`
	TypeName      string           `json:"typeName,omitempty"`
	Params        *TypeOrTypeSlice `json:"params,omitempty"`
	Documentation string           `json:"documentation,omitempty"`
	Since         string           `json:"since,omitempty"`
	Deprecated    string           `json:"deprecated,omitempty"`
	Proposed      bool             `json:"proposed,omitempty"`
}

// Type is a tagged union over every type-expression shape the metaModel
// schema defines. Which concrete variant is stored in Value is determined
// by the "kind" discriminator during UnmarshalJSON.
type Type struct {
	Value TypeValue
}

// TypeValue is implemented by every concrete type-expression variant:
// BaseType, ReferenceType, ArrayType, MapType, AndType, OrType, TupleType,
// StructureLiteralType, StringLiteralType, IntegerLiteralType and
// BooleanLiteralType.
type TypeValue interface {
	isTypeValue()
}

func (BaseType) isTypeValue()             {}
func (ReferenceType) isTypeValue()        {}
func (ArrayType) isTypeValue()            {}
func (MapType) isTypeValue()              {}
func (AndType) isTypeValue()              {}
func (OrType) isTypeValue()               {}
func (TupleType) isTypeValue()            {}
func (StructureLiteralType) isTypeValue() {}
func (StringLiteralType) isTypeValue()    {}
func (IntegerLiteralType) isTypeValue()   {}
func (BooleanLiteralType) isTypeValue()   {}

// BaseType is one of the built-in scalar kinds (string, integer, uinteger,
// decimal, boolean, null, URI, DocumentUri, RegExp).
type BaseType struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// ReferenceType names another Structure, Enumeration or TypeAlias defined
// elsewhere in the same metaModel.
type ReferenceType struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// ArrayType is a homogeneous sequence of Element.
type ArrayType struct {
	Kind    string `json:"kind"`
	Element *Type  `json:"element"`
}

// MapType is a JSON object keyed by Key (always a string- or
// integer-compatible type) with values of Value.
type MapType struct {
	Kind  string `json:"kind"`
	Key   *Type  `json:"key"`
	Value *Type  `json:"value"`
}

// AndType is the intersection ("A & B & ...") of Items.
type AndType struct {
	Kind  string  `json:"kind"`
	Items []*Type `json:"items"`
}

// OrType is the union ("A | B | ...") of Items.
type OrType struct {
	Kind  string  `json:"kind"`
	Items []*Type `json:"items"`
}

// TupleType is a fixed-length, heterogeneous sequence of Items.
type TupleType struct {
	Kind  string  `json:"kind"`
	Items []*Type `json:"items"`
}

// StructureLiteralType is an inline, unnamed object literal.
type StructureLiteralType struct {
	Kind  string           `json:"kind"`
	Value StructureLiteral `json:"value"`
}

// StructureLiteral is the body of a StructureLiteralType.
type StructureLiteral struct {
	Properties    []*Property `json:"properties"`
	Documentation string      `json:"documentation,omitempty"`
}

// StringLiteralType is a type pinned to a single string literal value
// (e.g. the "kind" discriminator field of a closed variant).
type StringLiteralType struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// IntegerLiteralType is a type pinned to a single integer literal value.
type IntegerLiteralType struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}

// BooleanLiteralType is a type pinned to a single boolean literal value.
type BooleanLiteralType struct {
	Kind  string `json:"kind"`
	Value bool   `json:"value"`
}

// UnmarshalJSON dispatches on the "kind" discriminator to decode data into
// the matching TypeValue variant.
func (t *Type) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	switch head.Kind {
	case "base":
		var v BaseType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "reference":
		var v ReferenceType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "array":
		var v ArrayType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "map":
		var v MapType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "and":
		var v AndType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "or":
		var v OrType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "tuple":
		var v TupleType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "literal":
		var v StructureLiteralType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "stringLiteral":
		var v StringLiteralType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "integerLiteral":
		var v IntegerLiteralType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	case "booleanLiteral":
		var v BooleanLiteralType
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		t.Value = v
	default:
		return &json.UnmarshalTypeError{Value: fmt.Sprintf("type kind %q", head.Kind), Type: reflect.TypeFor[*Type]()}
	}
	return nil
}

// MarshalJSON re-encodes the stored variant.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value)
}

// TypeOrTypeSlice holds the "params" field of a Request or Notification,
// which the metaModel schema allows to be either a single Type or an array
// of Type.
type TypeOrTypeSlice struct {
	Value TypeOrTypeSliceValue
}

// TypeOrTypeSliceValue is implemented by *Type and TypeSlice.
type TypeOrTypeSliceValue interface {
	isTypeOrTypeSliceValue()
}

func (*Type) isTypeOrTypeSliceValue()    {}
func (TypeSlice) isTypeOrTypeSliceValue() {}

// TypeSlice is a slice of *Type.
type TypeSlice []*Type

// Flatten returns the single type as a one-element slice, or the slice
// itself, regardless of which shape the wire value took. A nil receiver
// yields nil.
func (t *TypeOrTypeSlice) Flatten() []*Type {
	if t == nil {
		return nil
	}
	switch v := t.Value.(type) {
	case *Type:
		return []*Type{v}
	case TypeSlice:
		return v
	default:
		return nil
	}
}

// UnmarshalJSON tries a single Type first, falling back to an array of
// Type.
func (t *TypeOrTypeSlice) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var single *Type
	if err := json.Unmarshal(data, &single); err == nil {
		t.Value = single
		return nil
	}
	var many TypeSlice
	if err := json.Unmarshal(data, &many); err == nil {
		t.Value = many
		return nil
	}
	return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeFor[*TypeOrTypeSlice]()}
}

// MarshalJSON re-encodes the stored variant.
func (t TypeOrTypeSlice) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value)
}

// IntOrString holds an EnumerationEntry's value, which the metaModel schema
// allows to be either a JSON number or a JSON string.
type IntOrString struct {
	Value IntOrStringValue
}

// IntOrStringValue is implemented by IntValue and StringValue.
type IntOrStringValue interface {
	isIntOrStringValue()
}

func (IntValue) isIntOrStringValue()    {}
func (StringValue) isIntOrStringValue() {}

// IntValue wraps an integer enumeration-entry value.
type IntValue int

// StringValue wraps a string enumeration-entry value.
type StringValue string

// UnmarshalJSON tries an integer first, falling back to a string.
func (i *IntOrString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n IntValue
	if err := json.Unmarshal(data, &n); err == nil {
		i.Value = n
		return nil
	}
	var s StringValue
	if err := json.Unmarshal(data, &s); err == nil {
		i.Value = s
		return nil
	}
	return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeFor[*IntOrString]()}
}

// MarshalJSON re-encodes the stored variant.
func (i IntOrString) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Value)
}

// Structure looks up a structure by name.
func (m *MetaModel) Structure(name string) (*Structure, bool) {
	for _, s := range m.Structures {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Enumeration looks up an enumeration by name.
func (m *MetaModel) Enumeration(name string) (*Enumeration, bool) {
	for _, e := range m.Enumerations {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// TypeAlias looks up a type alias by name.
func (m *MetaModel) TypeAlias(name string) (*TypeAlias, bool) {
	for _, a := range m.TypeAliases {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
