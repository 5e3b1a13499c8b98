package aggregator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "README", "readme"},
		{"strips autocad suffix", "Projekt-X.dwg - AutoCAD 2024", "projekt-x.dwg"},
		{"strips word suffix and version", "Document1 (v2) - Word", "document1"},
		{"strips version without v", "Plan (3) - Excel", "plan"},
		{"strips trailing year", "Quarterly Report - 2023", "quarterly report"},
		{"collapses whitespace", "  foo   bar  ", "foo bar"},
		{"keeps unknown app suffix", "notes - SomeTool", "notes - sometool"},
		{"strips code suffix", "main.go - Code - OSS", "main.go"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeTitle(tc.input))
		})
	}
}
