package synth

import (
	"fmt"
	"strings"

	"github.com/infodancer/mailseed/errors"
)

// Placeholder is one of the fixed substitution kinds a subject template may use.
type Placeholder int

const (
	PlaceholderTime Placeholder = iota + 1
	PlaceholderTopic
	PlaceholderEvent
	PlaceholderName
	PlaceholderDate
	PlaceholderDay
)

var placeholderNames = map[string]Placeholder{
	"time":  PlaceholderTime,
	"topic": PlaceholderTopic,
	"event": PlaceholderEvent,
	"name":  PlaceholderName,
	"date":  PlaceholderDate,
	"day":   PlaceholderDay,
}

// String returns the name used inside braces in templates.
func (p Placeholder) String() string {
	for name, v := range placeholderNames {
		if v == p {
			return name
		}
	}
	return fmt.Sprintf("Placeholder(%d)", int(p))
}

// segment is either literal text or a placeholder reference.
type segment struct {
	literal     string
	placeholder Placeholder
}

// template is a subject line compiled into segments.
type template struct {
	source   string
	segments []segment
}

// compileTemplate splits source on {name} references. Unmatched braces are
// kept as literal text.
func compileTemplate(source string) (template, error) {
	t := template{source: source}
	rest := source
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			t.segments = append(t.segments, segment{literal: rest})
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			t.segments = append(t.segments, segment{literal: rest})
			break
		}
		end += open

		if open > 0 {
			t.segments = append(t.segments, segment{literal: rest[:open]})
		}
		name := rest[open+1 : end]
		p, ok := placeholderNames[name]
		if !ok {
			return template{}, fmt.Errorf("%q in %q: %w", name, source, errors.ErrUnknownPlaceholder)
		}
		t.segments = append(t.segments, segment{placeholder: p})
		rest = rest[end+1:]
	}
	return t, nil
}

// placeholders returns the placeholders referenced by the template, in order.
func (t template) placeholders() []Placeholder {
	var out []Placeholder
	for _, s := range t.segments {
		if s.placeholder != 0 {
			out = append(out, s.placeholder)
		}
	}
	return out
}

// render fills every placeholder through resolve.
func (t template) render(resolve func(Placeholder) string) string {
	var b strings.Builder
	for _, s := range t.segments {
		if s.placeholder != 0 {
			b.WriteString(resolve(s.placeholder))
			continue
		}
		b.WriteString(s.literal)
	}
	return b.String()
}
