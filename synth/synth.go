// Package synth generates plausible multipart email messages from fixed
// vocabulary tables.
//
// A Synthesizer owns its random source and is not safe for concurrent use;
// create one per worker.
package synth

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	// maxBackdate bounds how far in the past a Date header may lie.
	maxBackdate = 90 * 24 * time.Hour

	// maxParagraphs is the largest number of body paragraphs per message.
	maxParagraphs = 4

	// boundaryPrefix cannot occur in vocabulary text.
	boundaryPrefix = "==============="
)

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithClock sets the time source used for Date headers and {date} subjects.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		s.now = now
	}
}

// Synthesizer produces messages from a Vocabulary.
type Synthesizer struct {
	vocab    Vocabulary
	subjects []template
	rnd      *rand.Rand
	now      func() time.Time
}

// New validates vocab and compiles its subject templates. A nil rnd is
// replaced by a randomly seeded source.
func New(vocab Vocabulary, rnd *rand.Rand, opts ...Option) (*Synthesizer, error) {
	if err := vocab.validate(); err != nil {
		return nil, err
	}

	subjects := make([]template, 0, len(vocab.Subjects))
	for _, src := range vocab.Subjects {
		t, err := compileTemplate(src)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, t)
	}

	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Synthesizer{
		vocab:    vocab,
		subjects: subjects,
		rnd:      rnd,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate builds a message addressed to recipient.
func (s *Synthesizer) Generate(recipient string) *Message {
	now := s.now()

	senderName := s.name()
	senderLocal, senderDomain := s.address()
	sent := now.Add(-time.Duration(s.between(0, int(maxBackdate/time.Second))) * time.Second)

	plain := s.body()
	boundary := fmt.Sprintf("%s_%d==", boundaryPrefix, s.between(1000000, 9999999))

	return &Message{
		Headers: []Header{
			{Name: "From", Value: fmt.Sprintf("%s <%s@%s>", senderName, senderLocal, senderDomain)},
			{Name: "To", Value: recipient},
			{Name: "Subject", Value: s.subject(now)},
			{Name: "Date", Value: FormatDate(sent)},
			{Name: "Message-ID", Value: fmt.Sprintf("<%d@%s>", s.between(1000000, 9999999), senderDomain)},
			{Name: "MIME-Version", Value: "1.0"},
			{Name: "Content-Type", Value: fmt.Sprintf("multipart/alternative; boundary=%q", boundary)},
		},
		Boundary:  boundary,
		PlainBody: plain,
		HTMLBody:  TextToHTML(plain),
	}
}

// FormatDate formats t in UTC as an RFC 5322 date with the "-0000" zone.
func FormatDate(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " -0000"
}

func (s *Synthesizer) pick(items []string) string {
	return items[s.rnd.IntN(len(items))]
}

// between returns a uniform integer in [lo, hi].
func (s *Synthesizer) between(lo, hi int) int {
	return lo + s.rnd.IntN(hi-lo+1)
}

func (s *Synthesizer) name() string {
	return s.pick(s.vocab.FirstNames) + " " + s.pick(s.vocab.LastNames)
}

func (s *Synthesizer) address() (local, domain string) {
	local = strings.ToLower(s.pick(s.vocab.FirstNames)) + "." + strings.ToLower(s.pick(s.vocab.LastNames))
	return local, s.pick(s.vocab.Domains)
}

// subject fills a random template. {date} uses the current time, not the
// backdated send time.
func (s *Synthesizer) subject(now time.Time) string {
	t := s.subjects[s.rnd.IntN(len(s.subjects))]
	return t.render(func(p Placeholder) string {
		switch p {
		case PlaceholderTime:
			return s.pick(s.vocab.Times)
		case PlaceholderTopic:
			return s.pick(s.vocab.Topics)
		case PlaceholderEvent:
			return s.pick(s.vocab.Events)
		case PlaceholderName:
			return s.pick(s.vocab.FirstNames)
		case PlaceholderDate:
			return now.Format(time.RFC1123Z)
		case PlaceholderDay:
			return s.pick(s.vocab.Days)
		}
		return ""
	})
}

// body joins 1-4 distinct paragraphs and appends a signature.
func (s *Synthesizer) body() string {
	n := s.between(1, maxParagraphs)
	if n > len(s.vocab.Paragraphs) {
		n = len(s.vocab.Paragraphs)
	}

	paragraphs := make([]string, 0, n+1)
	for _, i := range s.rnd.Perm(len(s.vocab.Paragraphs))[:n] {
		paragraphs = append(paragraphs, s.vocab.Paragraphs[i])
	}
	paragraphs = append(paragraphs, s.pick(s.vocab.SignOffs)+",\n"+s.name())
	return strings.Join(paragraphs, "\n\n")
}
