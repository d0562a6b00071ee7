package genutil

import (
	"fmt"
	"regexp"
	"strings"
)

var tagMentionPatterns = map[string]*regexp.Regexp{}

// documentationMentionsTag reports whether documentation already mentions
// the given @tag (case-insensitively, with or without the leading '@'), so
// BuildDocLines does not duplicate a tag line the author already wrote out
// by hand.
func documentationMentionsTag(documentation, tag string) bool {
	if documentation == "" {
		return false
	}
	re, ok := tagMentionPatterns[tag]
	if !ok {
		re = regexp.MustCompile(`(?i)\b@?` + regexp.QuoteMeta(tag) + `\b`)
		tagMentionPatterns[tag] = re
	}
	return re.MatchString(documentation)
}

// BuildDocLines assembles the doc-comment body for an IR node: the raw
// documentation text (split into lines), followed by synthesized @since,
// @sinceTags, @deprecated and @proposed tag lines for any metadata not
// already called out in the documentation text itself. Trailing blank lines
// are trimmed.
func BuildDocLines(documentation, since string, sinceTags []string, deprecated string, proposed bool) []string {
	var lines []string
	if documentation != "" {
		for _, line := range strings.Split(documentation, "\n") {
			lines = append(lines, strings.TrimRight(line, " \t\r"))
		}
	}

	hasSince := documentationMentionsTag(documentation, "since")
	hasSinceTags := documentationMentionsTag(documentation, "sinceTags")
	hasDeprecated := documentationMentionsTag(documentation, "deprecated")
	hasProposed := documentationMentionsTag(documentation, "proposed")

	if since != "" && !hasSince {
		lines = append(lines, fmt.Sprintf("@since %s", since))
	}
	if len(sinceTags) > 0 && !hasSince && !hasSinceTags {
		lines = append(lines, fmt.Sprintf("@sinceTags %s", strings.Join(sinceTags, ", ")))
	}
	if deprecated != "" && !hasDeprecated {
		lines = append(lines, fmt.Sprintf("@deprecated %s", deprecated))
	}
	if proposed && !hasProposed {
		lines = append(lines, "@proposed")
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// AppendDoc appends a Doxygen-style "///" comment block built from comments
// to out, each line indented by indent. A blank comment line renders as a
// bare "///" so that paragraph breaks survive. No-op if comments is empty.
func AppendDoc(out *[]string, indent string, comments []string) {
	for _, line := range comments {
		if line == "" {
			*out = append(*out, indent+"///")
			continue
		}
		*out = append(*out, indent+"/// "+line)
	}
}
