package lspgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lspcppgen/lspcppgen/genutil"
)

// smallestUnsignedType returns the narrowest fixed-width unsigned C++
// integer type that can hold every value up to maxValue.
func smallestUnsignedType(maxValue int) string {
	switch {
	case maxValue <= 0xFF:
		return "std::uint8_t"
	case maxValue <= 0xFFFF:
		return "std::uint16_t"
	case maxValue <= 0xFFFFFFFF:
		return "std::uint32_t"
	default:
		return "std::uint64_t"
	}
}

// smallestSignedType returns the narrowest fixed-width signed C++ integer
// type that can hold every value in [minValue, maxValue].
func smallestSignedType(minValue, maxValue int) string {
	switch {
	case minValue >= -(1<<7) && maxValue <= (1<<7)-1:
		return "std::int8_t"
	case minValue >= -(1<<15) && maxValue <= (1<<15)-1:
		return "std::int16_t"
	case minValue >= -(1<<31) && maxValue <= (1<<31)-1:
		return "std::int32_t"
	default:
		return "std::int64_t"
	}
}

// emitAlias renders a single type-alias `using` declaration.
func (g *Generator) emitAlias(aliasName string) string {
	alias := g.model.Aliases[aliasName]
	aliasCpp := g.nameMap[aliasName]
	aliasType, err := g.renderer.RenderType(alias.TypeExpr, fmt.Sprintf("alias[%s]", aliasName), "")
	if err != nil {
		aliasType = "LspEmptyObject"
	}

	var lines []string
	genutil.AppendDoc(&lines, "", genutil.BuildDocLines(alias.Doc.Documentation, alias.Doc.Since, alias.Doc.SinceTags, alias.Doc.Deprecated, alias.Doc.Proposed))
	lines = append(lines, fmt.Sprintf("using %s = %s;", aliasCpp, aliasType))
	return strings.Join(lines, "\n")
}

// emitStruct renders a single struct declaration, including its members
// in flattened-then-local order, each member's doc comment, and a default
// initializer where one applies.
func (g *Generator) emitStruct(structName string) string {
	structDef := g.model.Structures[structName]
	structCpp := g.nameMap[structName]

	var lines []string
	genutil.AppendDoc(&lines, "", genutil.BuildDocLines(structDef.Doc.Documentation, structDef.Doc.Since, structDef.Doc.SinceTags, structDef.Doc.Deprecated, structDef.Doc.Proposed))
	lines = append(lines, fmt.Sprintf("struct %s {", structCpp))

	members := g.collectStructMembers(structName)
	usedNames := map[string]int{}
	if len(members) == 0 {
		lines = append(lines, "    // empty")
	}

	for index, member := range members {
		genutil.AppendDoc(&lines, "    ", member.Comments)
		memberName := g.uniqueMemberName(structName, member.BaseName, usedNames)
		decl := fmt.Sprintf("    %s %s", member.CxxType, memberName)
		if member.HasDefault {
			decl += fmt.Sprintf(" = %s", member.DefaultValue)
		}
		decl += ";"
		lines = append(lines, decl)
		if index+1 < len(members) {
			lines = append(lines, "")
		}
	}

	lines = append(lines, "};")
	return strings.Join(lines, "\n")
}

// emitEnum renders a single enumeration declaration: a scoped enum for an
// integer/uinteger/closed-string enum, or a std::string-derived struct of
// static string_view constants for an open (supportsCustomValues) string
// enum.
func (g *Generator) emitEnum(enumName string) string {
	enumDef := g.model.Enumerations[enumName]
	enumCpp := g.nameMap[enumName]
	baseName := baseTypeName(enumDef.TypeExpr)

	comments := genutil.BuildDocLines(enumDef.Doc.Documentation, enumDef.Doc.Since, enumDef.Doc.SinceTags, enumDef.Doc.Deprecated, enumDef.Doc.Proposed)
	comments = append(comments, fmt.Sprintf("supportsCustomValues: %s", strconv.FormatBool(enumDef.SupportsCustomValues)))

	var lines []string
	genutil.AppendDoc(&lines, "", comments)

	switch {
	case baseName == "integer" || baseName == "uinteger":
		return g.emitIntegerEnum(enumCpp, baseName, enumDef, lines)
	case baseName == "string" && enumDef.SupportsCustomValues:
		return g.emitOpenStringEnum(enumCpp, enumDef, lines)
	case baseName == "string":
		return g.emitClosedStringEnum(enumCpp, enumDef, lines)
	default:
		lines = append(lines, fmt.Sprintf("// Unsupported enum base type: %s", baseName))
		return strings.Join(lines, "\n")
	}
}

func (g *Generator) emitIntegerEnum(enumCpp, baseName string, enumDef *EnumDef, lines []string) string {
	underlying := baseName
	if !enumDef.SupportsCustomValues {
		var values []int
		for _, v := range enumDef.Values {
			if n, err := strconv.Atoi(v.Value); err == nil {
				values = append(values, n)
			}
		}
		if len(values) > 0 {
			min, max := values[0], values[0]
			for _, v := range values {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			if baseName == "integer" {
				underlying = smallestSignedType(min, max)
			} else {
				underlying = smallestUnsignedType(max)
			}
		}
	}

	lines = append(lines, fmt.Sprintf("enum class %s : %s {", enumCpp, underlying))
	usedMemberNames := map[string]int{}
	valueCommentsList := buildValueCommentsList(enumDef.Values)
	for index, value := range enumDef.Values {
		valueComments := valueCommentsList[index]
		genutil.AppendDoc(&lines, "    ", valueComments)

		baseMemberName := genutil.EnumMemberUpperCamel(value.Name, "Value"+strconv.Itoa(index+1))
		memberName := dedupeEnumMember(baseMemberName, usedMemberNames)

		comma := ""
		if index+1 < len(enumDef.Values) {
			comma = ","
		}
		lines = append(lines, fmt.Sprintf("    %s = %s%s", memberName, value.Value, comma))
		if index+1 < len(enumDef.Values) && (len(valueComments) > 0 || len(valueCommentsList[index+1]) > 0) {
			lines = append(lines, "")
		}
	}
	lines = append(lines, "};")
	return strings.Join(lines, "\n")
}

func (g *Generator) emitOpenStringEnum(enumCpp string, enumDef *EnumDef, lines []string) string {
	lines = append(lines, fmt.Sprintf("struct %s : std::string {", enumCpp))
	lines = append(lines, "    using std::string::string;")
	lines = append(lines, "    using std::string::operator=;")
	if len(enumDef.Values) > 0 {
		lines = append(lines, "")
	}
	valueCommentsList := buildValueCommentsList(enumDef.Values)
	for index, value := range enumDef.Values {
		valueComments := valueCommentsList[index]
		genutil.AppendDoc(&lines, "    ", valueComments)
		memberName, _ := genutil.SanitizeIdentifier(genutil.CamelToSnake(value.Name), fmt.Sprintf("value_%d", index))
		escaped := strconv.Quote(value.Value)
		lines = append(lines, fmt.Sprintf("    constexpr inline static std::string_view %s = %s;", memberName, escaped))
		if index+1 < len(enumDef.Values) && (len(valueComments) > 0 || len(valueCommentsList[index+1]) > 0) {
			lines = append(lines, "")
		}
	}
	lines = append(lines, "};")
	return strings.Join(lines, "\n")
}

func (g *Generator) emitClosedStringEnum(enumCpp string, enumDef *EnumDef, lines []string) string {
	maxValue := len(enumDef.Values) - 1
	if maxValue < 0 {
		maxValue = 0
	}
	underlying := smallestUnsignedType(maxValue)
	lines = append(lines, fmt.Sprintf("enum class %s : %s {", enumCpp, underlying))
	usedMemberNames := map[string]int{}
	valueCommentsList := buildValueCommentsList(enumDef.Values)
	for index, value := range enumDef.Values {
		valueComments := valueCommentsList[index]
		genutil.AppendDoc(&lines, "    ", valueComments)

		baseMemberName := genutil.EnumMemberUpperCamel(value.Value, "Value"+strconv.Itoa(index+1))
		memberName := dedupeEnumMember(baseMemberName, usedMemberNames)

		comma := ""
		if index+1 < len(enumDef.Values) {
			comma = ","
		}
		lines = append(lines, fmt.Sprintf("    %s%s", memberName, comma))
		if index+1 < len(enumDef.Values) && (len(valueComments) > 0 || len(valueCommentsList[index+1]) > 0) {
			lines = append(lines, "")
		}
	}
	lines = append(lines, "};")
	return strings.Join(lines, "\n")
}

func dedupeEnumMember(base string, used map[string]int) string {
	index := used[base]
	used[base]++
	if index == 0 {
		return base
	}
	return base + strconv.Itoa(index+1)
}

func buildValueCommentsList(values []EnumValueDef) [][]string {
	out := make([][]string, len(values))
	for i, v := range values {
		out[i] = genutil.BuildDocLines(v.Doc.Documentation, v.Doc.Since, v.Doc.SinceTags, v.Doc.Deprecated, v.Doc.Proposed)
	}
	return out
}
