package lspgen

import "testing"

func TestDeriveParamsNameStripsRequestSuffix(t *testing.T) {
	got := deriveParamsName("RenameRequest", "textDocument/rename")
	if want := "RenameParams"; got != want {
		t.Errorf("deriveParamsName() = %q, want %q", got, want)
	}
}

func TestDeriveParamsNameStripsNotificationSuffix(t *testing.T) {
	got := deriveParamsName("DidOpenTextDocumentNotification", "textDocument/didOpen")
	if want := "DidOpenTextDocumentParams"; got != want {
		t.Errorf("deriveParamsName() = %q, want %q", got, want)
	}
}

func TestDeriveParamsNameFallsBackToMethod(t *testing.T) {
	got := deriveParamsName("", "textDocument/foldingRange")
	if want := "TextDocumentFoldingRangeParams"; got != want {
		t.Errorf("deriveParamsName() = %q, want %q", got, want)
	}
}

func TestCollectExtraParamsOnlyForMissingParams(t *testing.T) {
	requests := []*RequestDef{
		{Method: "textDocument/hover", Params: ref("HoverParams")},
		{Method: "shutdown", Params: nil},
	}
	notifications := []*NotificationDef{
		{Method: "exit", Params: nil},
	}

	extras := collectExtraParams(requests, notifications)
	if len(extras) != 2 {
		t.Fatalf("collectExtraParams() returned %d entries, want 2", len(extras))
	}
	methods := map[string]bool{}
	for _, e := range extras {
		methods[e.Method] = true
	}
	if !methods["shutdown"] || !methods["exit"] {
		t.Errorf("collectExtraParams() = %+v, want entries for shutdown and exit", extras)
	}
}

func TestEmitXMacroWrapsEveryLineButTheLast(t *testing.T) {
	entries := []traitEntry{
		{Params: "HoverParams", Result: "Hover", Method: `"textDocument/hover"`},
		{Params: "LSPEmpty", Result: "null", Method: `"shutdown"`},
	}
	lines := emitXMacro("LSP_REQUEST_TRAITS_XMACRO", entries)
	if len(lines) != 3 {
		t.Fatalf("emitXMacro() produced %d lines, want 3 (header + 2 entries)", len(lines))
	}
	for i, line := range lines[:len(lines)-1] {
		if line[len(line)-1] != '\\' {
			t.Errorf("line %d = %q, want trailing backslash continuation", i, line)
		}
	}
	if lines[len(lines)-1][len(lines[len(lines)-1])-1] == '\\' {
		t.Error("last line ends in a continuation backslash, want none")
	}
}

func TestRenderMethodParamsFallsBackToExtraParam(t *testing.T) {
	nameMap := map[string]string{"ShutdownParams": "ShutdownParams"}
	extraParamsByMethod := map[string]ExtraParamDef{
		"shutdown": {Name: "ShutdownParams", Method: "shutdown"},
	}
	model := newEmptyModel()
	renderer := NewTypeRenderer(model)
	renderer.bindNameMap(nameMap)

	got := renderMethodParams(renderer, nameMap, extraParamsByMethod, "shutdown", nil)
	if want := "ShutdownParams"; got != want {
		t.Errorf("renderMethodParams() = %q, want %q", got, want)
	}
}

func TestRenderMethodParamsFallsBackToLSPEmpty(t *testing.T) {
	model := newEmptyModel()
	renderer := NewTypeRenderer(model)
	renderer.bindNameMap(map[string]string{})

	got := renderMethodParams(renderer, map[string]string{}, map[string]ExtraParamDef{}, "exit", nil)
	if want := "LSPEmpty"; got != want {
		t.Errorf("renderMethodParams() = %q, want %q", got, want)
	}
}
