package docassist_test

import (
	"testing"

	"github.com/fwojciec/docassist"
	"github.com/stretchr/testify/assert"
)

func TestFormatDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		docs []*docassist.Document
		want string
	}{
		{
			name: "nil",
			want: "",
		},
		{
			name: "titled document",
			docs: []*docassist.Document{
				{SourceURL: "https://docs.example.com/scan", Title: "Scan profiles", Content: "Profiles control depth."},
			},
			want: "# Scan profiles\nSource: https://docs.example.com/scan\n\nProfiles control depth.",
		},
		{
			name: "untitled document falls back to its URL",
			docs: []*docassist.Document{
				{SourceURL: "https://docs.example.com/faq", Content: "Ask away."},
			},
			want: "# https://docs.example.com/faq\nSource: https://docs.example.com/faq\n\nAsk away.",
		},
		{
			name: "empty content",
			docs: []*docassist.Document{
				{SourceURL: "https://docs.example.com/blank", Title: "Blank"},
			},
			want: "# Blank\nSource: https://docs.example.com/blank\n",
		},
		{
			name: "several documents keep order and markdown",
			docs: []*docassist.Document{
				{SourceURL: "https://docs.example.com/a", Title: "A", Content: "## Steps\n\n- one\n- two"},
				{SourceURL: "https://docs.example.com/b", Title: "B", Content: "```sh\nscan --quick\n```"},
			},
			want: "# A\nSource: https://docs.example.com/a\n\n## Steps\n\n- one\n- two" +
				"\n\n---\n\n" +
				"# B\nSource: https://docs.example.com/b\n\n```sh\nscan --quick\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docassist.FormatDocuments(tt.docs))
		})
	}
}
