package lspgen

import (
	"sort"

	"github.com/lspcppgen/lspcppgen/genutil"
)

// BuildNameMap builds a deterministic, collision-free mapping from every
// schema-defined name to a sanitized C++ type identifier. Names are
// processed in sorted order so that a collision between two schema names
// that sanitize to the same identifier always resolves the same way
// regardless of the order the caller assembled definitionNames in.
func BuildNameMap(definitionNames []string) map[string]string {
	sorted := append([]string(nil), definitionNames...)
	sort.Strings(sorted)

	out := make(map[string]string, len(sorted))
	used := make(map[string]bool, len(sorted))
	for _, original := range sorted {
		base := genutil.SanitizeTypeIdentifier(original, "Type")
		candidate := genutil.MakeNameUnique(base, used)
		out[original] = candidate
	}
	return out
}

// resolveName looks up name in nameMap, falling back to a freshly
// sanitized identifier if the name map has no entry (this only happens for
// names the dependency walk encounters that were never registered in the
// name map, e.g. a dangling reference to an undefined structure).
func resolveName(nameMap map[string]string, name string) string {
	if mapped, ok := nameMap[name]; ok {
		return mapped
	}
	return genutil.SanitizeTypeIdentifier(name, "Type")
}
