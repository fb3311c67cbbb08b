package synth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileTemplate(t *testing.T) {
	tests := []struct {
		source string
		want   []Placeholder
	}{
		{"Re: Project update", nil},
		{"Meeting tomorrow at {time}", []Placeholder{PlaceholderTime}},
		{"Re: Re: {topic} discussion", []Placeholder{PlaceholderTopic}},
		{"{name} and {day}", []Placeholder{PlaceholderName, PlaceholderDay}},
		{"Unclosed {brace", nil},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tmpl, err := compileTemplate(tt.source)
			require.NoError(t, err)
			require.Equal(t, tt.want, tmpl.placeholders())
		})
	}
}

func TestTemplateRender(t *testing.T) {
	tmpl, err := compileTemplate("Lunch on {day} at {time}?")
	require.NoError(t, err)

	got := tmpl.render(func(p Placeholder) string {
		return "<" + p.String() + ">"
	})
	require.Equal(t, "Lunch on <day> at <time>?", got)
}

func TestDefaultSubjectsCompile(t *testing.T) {
	for _, src := range DefaultVocabulary().Subjects {
		tmpl, err := compileTemplate(src)
		require.NoError(t, err, src)
		require.Equal(t, src, tmpl.render(func(p Placeholder) string { return "{" + p.String() + "}" }))
	}
}
