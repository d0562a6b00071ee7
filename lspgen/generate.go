package lspgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lspcppgen/lspcppgen/metamodel"
)

// Options groups the handful of generation knobs a caller can set, mirroring
// ygot's pattern of collecting generation parameters into a small struct
// rather than a long function-parameter list.
type Options struct {
	// Namespace is the C++ namespace the generated declarations are
	// wrapped in. Defaults to "lsp" if empty.
	Namespace string
	// SupportHeaderInclude is the #include path for the hand-written
	// support header (nullable<T>, variant<T...>, optional_bool,
	// enum_string<T>, LspEmptyObject, LSPEmpty, RequestTraits,
	// NotificationTraits). Defaults to "lsp/support.h" if empty.
	SupportHeaderInclude string
	// GeneratedByTag names the tool/version string stamped into the
	// banner comment. Defaults to "lspcppgen" if empty.
	GeneratedByTag string
}

func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = "lsp"
	}
	if o.SupportHeaderInclude == "" {
		o.SupportHeaderInclude = "lsp/support.h"
	}
	if o.GeneratedByTag == "" {
		o.GeneratedByTag = "lspcppgen"
	}
	return o
}

// Result is the summary of a completed generation pass: how much of the
// schema was emitted and what the pass flagged along the way, so a caller
// (test or CLI) can assert on shape without re-parsing the rendered header.
type Result struct {
	Header          []byte
	StructCount     int
	EnumCount       int
	AliasCount      int
	RequestCount    int
	NotificationCount int
	Diagnostics     *Diagnostics
}

// SchemaFetcher loads raw metaModel JSON bytes from wherever a caller keeps
// them (a local file, the upstream LSP spec repo, a vendored copy) and
// reports the schema's self-declared version string. Fetching is out of
// scope for Generate itself — Generate only ever consumes already-decoded
// bytes — but callers that need a fetch step can satisfy this type rather
// than invent their own contract.
type SchemaFetcher func() (data []byte, version string, err error)

// Generate parses metaModel bytes, builds the IR, and renders the single
// C++ header. It mirrors generate_protocol_header end to end: parse, build
// the name map over every definition (including synthesized extra-params
// names), compute emission order, emit each block, append extra-params
// structs and method traits, and assemble the final file.
func Generate(schemaJSON []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	model, err := parseMetaModelJSON(schemaJSON)
	if err != nil {
		return nil, err
	}

	schema, schemaErrs := ParseSchema(model)
	if err := schemaErrs.ErrOrNil(); err != nil {
		return nil, err
	}

	definitionNames := make([]string, 0, len(schema.Structures)+len(schema.Enumerations)+len(schema.Aliases))
	for name := range schema.Structures {
		definitionNames = append(definitionNames, name)
	}
	for name := range schema.Enumerations {
		definitionNames = append(definitionNames, name)
	}
	for name := range schema.Aliases {
		definitionNames = append(definitionNames, name)
	}

	extraParams := collectExtraParams(schema.Requests, schema.Notifications)
	for _, extra := range extraParams {
		definitionNames = append(definitionNames, extra.Name)
	}

	nameMap := BuildNameMap(definitionNames)

	generator := NewGenerator(schema, nameMap)

	order := generator.buildNodeOrder()

	var blocks []string
	for _, node := range order {
		switch node.Kind {
		case KindStruct:
			blocks = append(blocks, generator.emitStruct(node.Name))
		case KindEnum:
			blocks = append(blocks, generator.emitEnum(node.Name))
		case KindAlias:
			blocks = append(blocks, generator.emitAlias(node.Name))
		}
	}

	blocks = append(blocks, emitExtraParamStructs(extraParams, nameMap)...)
	blocks = append(blocks, generator.emitMethodTraits(schema.Requests, schema.Notifications, extraParams, nameMap))

	header := assembleHeader(opts, blocks)

	return &Result{
		Header:            []byte(header),
		StructCount:       len(schema.Structures),
		EnumCount:         len(schema.Enumerations),
		AliasCount:        len(schema.Aliases),
		RequestCount:      len(schema.Requests),
		NotificationCount: len(schema.Notifications),
		Diagnostics:       generator.Diagnostics(),
	}, nil
}

// assembleHeader wraps blocks in the include guard, support-header include,
// banner, and namespace, separating each block by exactly one blank line and
// ending the file with exactly one trailing newline.
func assembleHeader(opts Options, blocks []string) string {
	var b strings.Builder
	fmt.Fprintln(&b, "#pragma once")
	fmt.Fprintf(&b, "#include <%s>\n", opts.SupportHeaderInclude)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "// Generated by %s. DO NOT EDIT.\n", opts.GeneratedByTag)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "namespace %s {\n", opts.Namespace)
	fmt.Fprintln(&b)

	nonEmpty := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if strings.TrimSpace(block) != "" {
			nonEmpty = append(nonEmpty, block)
		}
	}
	b.WriteString(strings.Join(nonEmpty, "\n\n"))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "}  // namespace %s\n", opts.Namespace)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func parseMetaModelJSON(data []byte) (*metamodel.MetaModel, error) {
	var m metamodel.MetaModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &SchemaError{Path: "metaModel", Message: err.Error()}
	}
	return &m, nil
}
