package genutil

import (
	"strconv"
	"strings"
)

// CamelToSnake inserts an underscore before every uppercase letter that is
// preceded by a lowercase letter or followed by a lowercase letter, then
// lowercases the result. It is the classic word-boundary split used to turn
// an UpperCamelCase or lowerCamelCase schema name into a snake_case member
// name.
func CamelToSnake(name string) string {
	runes := []rune(name)
	var out strings.Builder
	for i, c := range runes {
		if isUpper(c) {
			if i > 0 && (isLower(runes[i-1]) || (i+1 < len(runes) && isLower(runes[i+1]))) {
				out.WriteByte('_')
			}
			out.WriteRune(toLower(c))
		} else {
			out.WriteRune(c)
		}
	}
	return out.String()
}

func isUpper(c rune) bool { return c >= 'A' && c <= 'Z' }
func isLower(c rune) bool { return c >= 'a' && c <= 'z' }
func toLower(c rune) rune {
	if isUpper(c) {
		return c - 'A' + 'a'
	}
	return c
}
func isDigit(c rune) bool { return c >= '0' && c <= '9' }
func isAlnum(c rune) bool {
	return isUpper(c) || isLower(c) || isDigit(c)
}

func replaceNonIdentChars(name string) string {
	var out strings.Builder
	for _, c := range name {
		if isAlnum(c) || c == '_' {
			out.WriteRune(c)
		} else {
			out.WriteByte('_')
		}
	}
	return out.String()
}

// SanitizeIdentifier turns name into a valid, non-keyword C++ member/variable
// identifier: every character outside [A-Za-z0-9_] becomes '_', leading and
// trailing underscores are stripped, fallback is substituted if the result is
// empty, a leading digit is prefixed with '_', and a collision with a C++
// keyword is escaped by appending '_'. It returns the sanitized text and
// whether keyword-escaping was triggered, so callers can surface a
// diagnostic.
func SanitizeIdentifier(name, fallback string) (string, bool) {
	text := strings.Trim(replaceNonIdentChars(name), "_")
	if text == "" {
		text = fallback
	}
	if r := []rune(text); len(r) > 0 && isDigit(r[0]) {
		text = "_" + text
	}
	keywordHit := IsCppKeyword(text)
	if keywordHit {
		text += "_"
	}
	return text, keywordHit
}

// SanitizeTypeIdentifier turns name into a valid, non-keyword C++ type
// identifier. Unlike SanitizeIdentifier it preserves leading/trailing
// underscores (types are frequently distinguished by a leading underscore in
// the schema), instead prefixing a leading underscore with "Lsp" so the
// result never collides with a reserved double-underscore or
// underscore-plus-uppercase identifier pattern, and prefixing a leading
// digit with "T_" rather than a bare underscore.
func SanitizeTypeIdentifier(name, fallback string) string {
	text := replaceNonIdentChars(name)
	if text == "" {
		text = fallback
	}
	if r := []rune(text); len(r) > 0 && isDigit(r[0]) {
		text = "T_" + text
	}
	if strings.HasPrefix(text, "_") {
		text = "Lsp" + text
	}
	if IsCppKeyword(text) {
		text += "_"
	}
	return text
}

// EnumMemberUpperCamel normalizes text (a schema enum member name or a
// literal value used as one) into an UpperCamelCase enumerator identifier.
// Non-alphanumeric runs collapse to a single word boundary; if nothing
// alphanumeric survives, fallback is used instead; a leading digit is
// prefixed with 'V'; a collision with a C++ keyword is escaped with a
// trailing underscore.
func EnumMemberUpperCamel(text, fallback string) string {
	normalized := replaceNonIdentChars(text)
	snake := CamelToSnake(normalized)
	var parts []string
	for _, part := range strings.Split(snake, "_") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	var candidate string
	if len(parts) > 0 {
		var b strings.Builder
		for _, part := range parts {
			r := []rune(part)
			b.WriteRune(toUpperRune(r[0]))
			b.WriteString(string(r[1:]))
		}
		candidate = b.String()
	} else {
		candidate = fallback
	}

	if r := []rune(candidate); len(r) > 0 && isDigit(r[0]) {
		candidate = "V" + candidate
	}
	if IsCppKeyword(candidate) {
		candidate += "_"
	}
	return candidate
}

func toUpperRune(c rune) rune {
	if isLower(c) {
		return c - 'a' + 'A'
	}
	return c
}

// MakeNameUnique returns a name guaranteed not to collide with any name
// already recorded in used, recording it before returning. Collisions are
// broken by appending "_2", "_3", … to base — the suffix rule spec.md's name
// map and collision-renaming passes both require, distinct from ygot's
// MakeNameUnique (which instead appends a single trailing underscore
// repeatedly) because spec.md pins down this exact numbered-suffix shape for
// both the global name map (§4.3) and member collision resolution (§4.7).
func MakeNameUnique(base string, used map[string]bool) string {
	if !used[base] {
		used[base] = true
		return base
	}
	suffix := 2
	for {
		candidate := base + "_" + strconv.Itoa(suffix)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
		suffix++
	}
}
