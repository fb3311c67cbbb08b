package synth

import (
	"bytes"
	"io"
	"strings"
)

// Part content types, in the order they are emitted.
const (
	ContentTypePlain = "text/plain; charset=utf-8"
	ContentTypeHTML  = "text/html; charset=utf-8"
)

// Header is a single message header field.
type Header struct {
	Name  string
	Value string
}

// Message is one synthesized multipart/alternative message.
// It is not modified after Generate returns it.
type Message struct {
	// Headers are emitted in order.
	Headers []Header

	Boundary  string
	PlainBody string
	HTMLBody  string
}

// Header returns the value of the first header with the given name, or "".
func (m *Message) Header(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// WriteTo serializes the message. Lines end in LF, as maildir files do.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, h := range m.Headers {
		b.WriteString(h.Name)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	writePart(&b, m.Boundary, ContentTypePlain, m.PlainBody)
	writePart(&b, m.Boundary, ContentTypeHTML, m.HTMLBody)

	b.WriteString("--")
	b.WriteString(m.Boundary)
	b.WriteString("--\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Bytes returns the serialized message.
func (m *Message) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = m.WriteTo(&buf)
	return buf.Bytes()
}

func writePart(b *strings.Builder, boundary, contentType, body string) {
	b.WriteString("--")
	b.WriteString(boundary)
	b.WriteString("\nContent-Type: ")
	b.WriteString(contentType)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}
