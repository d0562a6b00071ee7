package genutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildDocLines(t *testing.T) {
	tests := []struct {
		name          string
		documentation string
		since         string
		sinceTags     []string
		deprecated    string
		proposed      bool
		want          []string
	}{
		{
			name:          "plain documentation only",
			documentation: "The kind of a completion entry.",
			want:          []string{"The kind of a completion entry."},
		},
		{
			name:          "adds since tag",
			documentation: "A position in a text document.",
			since:         "3.0.0",
			want:          []string{"A position in a text document.", "@since 3.0.0"},
		},
		{
			name:          "does not duplicate an already-present since tag",
			documentation: "Foo.\n@since 3.0.0",
			since:         "3.0.0",
			want:          []string{"Foo.", "@since 3.0.0"},
		},
		{
			name:       "deprecated and proposed with no documentation",
			deprecated: "use Bar instead",
			proposed:   true,
			want:       []string{"@deprecated use Bar instead", "@proposed"},
		},
		{
			name:          "sinceTags suppressed when since already present in text",
			documentation: "Foo.\n@since 3.0.0",
			sinceTags:     []string{"3.15.0"},
			want:          []string{"Foo.", "@since 3.0.0"},
		},
		{
			name:          "does not duplicate a since mentioned in prose, not just @since form",
			documentation: "Since 3.16 this changed.",
			since:         "3.16.0",
			want:          []string{"Since 3.16 this changed."},
		},
		{
			name:          "does not duplicate a deprecated mentioned in prose",
			documentation: "This method is deprecated in favor of textDocument/foldingRange.",
			deprecated:    "use textDocument/foldingRange instead",
			want:          []string{"This method is deprecated in favor of textDocument/foldingRange."},
		},
		{
			name:          "trims trailing blank lines",
			documentation: "Foo.\n\n",
			want:          []string{"Foo."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildDocLines(tt.documentation, tt.since, tt.sinceTags, tt.deprecated, tt.proposed)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildDocLines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAppendDoc(t *testing.T) {
	var out []string
	AppendDoc(&out, "  ", []string{"Line one.", "", "Line two."})
	want := []string{
		"  /// Line one.",
		"  ///",
		"  /// Line two.",
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("AppendDoc() mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendDocEmptyIsNoop(t *testing.T) {
	out := []string{"existing"}
	AppendDoc(&out, "", nil)
	if len(out) != 1 {
		t.Errorf("AppendDoc with empty comments mutated out: %v", out)
	}
}
