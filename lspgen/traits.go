package lspgen

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var methodPartSplit = regexp.MustCompile(`[^0-9A-Za-z]+`)

// methodToTypeName turns a method string like "textDocument/rename" into
// an UpperCamel identifier with suffix appended, e.g. "TextDocumentRename"
// + "Params" -> "TextDocumentRenameParams".
func methodToTypeName(method, suffix string) string {
	var parts []string
	for _, part := range methodPartSplit.Split(method, -1) {
		if part != "" {
			parts = append(parts, part)
		}
	}
	base := "Method"
	if len(parts) > 0 {
		var b strings.Builder
		for _, part := range parts {
			b.WriteString(strings.ToUpper(part[:1]))
			b.WriteString(part[1:])
		}
		base = b.String()
	}
	return base + suffix
}

// deriveParamsName picks the synthesized params struct name for a
// request/notification whose schema `params` field is absent: it strips a
// trailing "Request"/"Notification" off the declared type name if
// present, or else derives the name from the method string.
func deriveParamsName(typeName, method string) string {
	if typeName != "" {
		if strings.HasSuffix(typeName, "Request") {
			return strings.TrimSuffix(typeName, "Request") + "Params"
		}
		if strings.HasSuffix(typeName, "Notification") {
			return strings.TrimSuffix(typeName, "Notification") + "Params"
		}
	}
	return methodToTypeName(method, "Params")
}

// collectExtraParams returns one ExtraParamDef for every request and
// notification that has no `params` field in the schema — these get an
// empty, synthesized params struct so every method still has a params
// type to hang a RequestTraits/NotificationTraits specialization off of.
func collectExtraParams(requests []*RequestDef, notifications []*NotificationDef) []ExtraParamDef {
	var out []ExtraParamDef
	for _, r := range requests {
		if r.Params == nil {
			out = append(out, ExtraParamDef{Name: deriveParamsName(r.TypeName, r.Method), Method: r.Method})
		}
	}
	for _, n := range notifications {
		if n.Params == nil {
			out = append(out, ExtraParamDef{Name: deriveParamsName(n.TypeName, n.Method), Method: n.Method})
		}
	}
	return out
}

// emitExtraParamStructs renders the synthesized empty params structs,
// sorted by method so output is stable across runs.
func emitExtraParamStructs(extraParams []ExtraParamDef, nameMap map[string]string) []string {
	sorted := append([]ExtraParamDef(nil), extraParams...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Method < sorted[j].Method })

	var blocks []string
	for _, extra := range sorted {
		blocks = append(blocks, fmt.Sprintf("struct %s { };", nameMap[extra.Name]))
	}
	return blocks
}

// renderMethodParams resolves method's params type: the rendered schema
// type if one is declared, the synthesized extra-params struct's mapped
// name if the schema omits params but an ExtraParamDef exists for it, or
// "LSPEmpty" (a notification with no params at all) as the last resort.
func renderMethodParams(renderer *TypeRenderer, nameMap map[string]string, extraParamsByMethod map[string]ExtraParamDef, method string, params TypeExpr) string {
	if params == nil {
		if extra, ok := extraParamsByMethod[method]; ok {
			return nameMap[extra.Name]
		}
		return "LSPEmpty"
	}
	rendered, err := renderer.RenderType(params, fmt.Sprintf("method[%s].params", method), "")
	if err != nil {
		return "LSPEmpty"
	}
	return rendered
}

// traitEntry is one row of a request or notification trait X-macro: the
// rendered params type, an optional rendered result type (requests only),
// and the quoted method string.
type traitEntry struct {
	Params string
	Result string
	Method string
}

func sortedByMethodRequests(items []*RequestDef) []*RequestDef {
	out := append([]*RequestDef(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out
}

func sortedByMethodNotifications(items []*NotificationDef) []*NotificationDef {
	out := append([]*NotificationDef(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out
}

// buildRequestTraitEntries builds one traitEntry per request, sorted by
// method.
func buildRequestTraitEntries(requests []*RequestDef, renderer *TypeRenderer, nameMap map[string]string, extraParamsByMethod map[string]ExtraParamDef) []traitEntry {
	var entries []traitEntry
	for _, req := range sortedByMethodRequests(requests) {
		paramsCpp := renderMethodParams(renderer, nameMap, extraParamsByMethod, req.Method, req.Params)
		result := "null"
		if req.Result != nil {
			if rendered, err := renderer.RenderType(req.Result, fmt.Sprintf("method[%s].result", req.Method), ""); err == nil {
				result = rendered
			}
		}
		entries = append(entries, traitEntry{Params: paramsCpp, Result: result, Method: strconv.Quote(req.Method)})
	}
	return entries
}

// buildNotificationTraitEntries builds one traitEntry per notification
// (Result left empty — notifications have no result type), sorted by
// method.
func buildNotificationTraitEntries(notifications []*NotificationDef, renderer *TypeRenderer, nameMap map[string]string, extraParamsByMethod map[string]ExtraParamDef) []traitEntry {
	var entries []traitEntry
	for _, n := range sortedByMethodNotifications(notifications) {
		paramsCpp := renderMethodParams(renderer, nameMap, extraParamsByMethod, n.Method, n.Params)
		entries = append(entries, traitEntry{Params: paramsCpp, Method: strconv.Quote(n.Method)})
	}
	return entries
}

// emitXMacro renders entries as a preprocessor X-macro list named name.
func emitXMacro(name string, entries []traitEntry) []string {
	lines := []string{fmt.Sprintf("#define %s(X) \\", name)}
	for i, entry := range entries {
		var payload string
		if entry.Result == "" {
			payload = fmt.Sprintf("X((%s), %s)", entry.Params, entry.Method)
		} else {
			payload = fmt.Sprintf("X((%s), (%s), %s)", entry.Params, entry.Result, entry.Method)
		}
		suffix := ""
		if i+1 < len(entries) {
			suffix = " \\"
		}
		lines = append(lines, fmt.Sprintf("    %s%s", payload, suffix))
	}
	return lines
}

// emitMethodTraits renders the full request/notification traits block: the
// two X-macro definitions followed by the template-specialization
// expansion boilerplate that instantiates RequestTraits<Params> and
// NotificationTraits<Params> for every entry.
func (g *Generator) emitMethodTraits(requests []*RequestDef, notifications []*NotificationDef, extraParams []ExtraParamDef, nameMap map[string]string) string {
	extraParamsByMethod := make(map[string]ExtraParamDef, len(extraParams))
	for _, extra := range extraParams {
		extraParamsByMethod[extra.Method] = extra
	}

	var lines []string
	lines = append(lines, emitXMacro("LSP_REQUEST_TRAITS_XMACRO", buildRequestTraitEntries(requests, g.renderer, nameMap, extraParamsByMethod))...)
	lines = append(lines, "")
	lines = append(lines, emitXMacro("LSP_NOTIFICATION_TRAITS_XMACRO", buildNotificationTraitEntries(notifications, g.renderer, nameMap, extraParamsByMethod))...)

	lines = append(lines,
		"",
		"#define LSP_TRAITS_TYPE(...) __VA_ARGS__",
		"",
		"#define LSP_REQUEST_TRAITS_DECLARE(PARAMS, RESULT, METHOD) \\",
		"template <> \\",
		"struct RequestTraits<LSP_TRAITS_TYPE PARAMS> { \\",
		"    using Result = LSP_TRAITS_TYPE RESULT; \\",
		"    constexpr inline static std::string_view method = METHOD; \\",
		"};",
		"",
		"LSP_REQUEST_TRAITS_XMACRO(LSP_REQUEST_TRAITS_DECLARE)",
		"",
		"#undef LSP_REQUEST_TRAITS_DECLARE",
		"",
		"#define LSP_NOTIFICATION_TRAITS_DECLARE(PARAMS, METHOD) \\",
		"template <> \\",
		"struct NotificationTraits<LSP_TRAITS_TYPE PARAMS> { \\",
		"    constexpr inline static std::string_view method = METHOD; \\",
		"};",
		"",
		"LSP_NOTIFICATION_TRAITS_XMACRO(LSP_NOTIFICATION_TRAITS_DECLARE)",
		"",
		"#undef LSP_NOTIFICATION_TRAITS_DECLARE",
		"#undef LSP_TRAITS_TYPE",
	)

	return strings.Join(lines, "\n")
}
