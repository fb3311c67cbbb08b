package maildir

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/infodancer/mailseed"
	mserrors "github.com/infodancer/mailseed/errors"
	"github.com/infodancer/mailseed/synth"
)

const (
	// DefaultSubdir is the maildir location under each home directory.
	DefaultSubdir = "Maildir"

	DefaultMinMessages = 5
	DefaultMaxMessages = 20

	// maxNameAttempts bounds retries when a generated filename is taken.
	maxNameAttempts = 8
)

// WriterConfig contains settings for a Writer.
type WriterConfig struct {
	// MinMessages and MaxMessages bound the per-recipient message count, inclusive.
	MinMessages int
	MaxMessages int

	// Subdir is the maildir directory below the mailbox root. Defaults to "Maildir".
	Subdir string

	// Identity is embedded in every filename.
	Identity Identity

	// Seed makes generation reproducible. Zero picks a random seed.
	Seed uint64

	// Vocabulary overrides synth.DefaultVocabulary when non-nil.
	Vocabulary *synth.Vocabulary

	// Clock overrides time.Now for message dates and filenames.
	Clock func() time.Time

	Logger logrus.FieldLogger
}

// Writer populates mailboxes with synthesized messages.
// A Writer is not safe for concurrent use; each worker owns one.
type Writer struct {
	min, max int
	subdir   string

	rnd    *rand.Rand
	synth  *synth.Synthesizer
	namer  *Namer
	logger logrus.FieldLogger
}

// NewWriter validates cfg and creates a Writer.
func NewWriter(cfg WriterConfig) (*Writer, error) {
	if cfg.MinMessages < 0 || cfg.MaxMessages < cfg.MinMessages {
		return nil, fmt.Errorf("%d-%d: %w", cfg.MinMessages, cfg.MaxMessages, mserrors.ErrInvalidRange)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	vocab := synth.DefaultVocabulary()
	if cfg.Vocabulary != nil {
		vocab = *cfg.Vocabulary
	}
	s, err := synth.New(vocab, rnd, synth.WithClock(clock))
	if err != nil {
		return nil, err
	}

	subdir := cfg.Subdir
	if subdir == "" {
		subdir = DefaultSubdir
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Writer{
		min:    cfg.MinMessages,
		max:    cfg.MaxMessages,
		subdir: subdir,
		rnd:    rnd,
		synth:  s,
		namer:  NewNamer(cfg.Identity, rnd, clock),
		logger: logger,
	}, nil
}

// MaildirFor returns the maildir of a recipient.
func (w *Writer) MaildirFor(recipient mailseed.Recipient) *Maildir {
	return New(filepath.Join(recipient.MailboxRoot, w.subdir))
}

// PopulateUser implements mailseed.Populator. The recipient's maildir is
// created if missing. Once started, the batch runs to completion; ctx is
// not consulted between messages.
func (w *Writer) PopulateUser(ctx context.Context, recipient mailseed.Recipient) (int, error) {
	if recipient.MailboxRoot == "" {
		return 0, fmt.Errorf("%s: %w", recipient.Address, mserrors.ErrInvalidPath)
	}

	md := w.MaildirFor(recipient)
	if err := md.Create(); err != nil {
		return 0, fmt.Errorf("create maildir %s: %w", md.Path(), err)
	}

	count := w.min + w.rnd.IntN(w.max-w.min+1)
	for i := 0; i < count; i++ {
		data := w.synth.Generate(recipient.Address).Bytes()
		if err := w.deliver(md, data); err != nil {
			return i, fmt.Errorf("deliver to %s: %w", md.Path(), err)
		}
	}

	w.logger.WithFields(logrus.Fields{
		"recipient": recipient.Address,
		"maildir":   md.Path(),
		"messages":  count,
	}).Debug("Populated mailbox")

	return count, nil
}

// deliver writes one message, generating a new filename if one is taken.
func (w *Writer) deliver(md *Maildir, data []byte) error {
	var err error
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := w.namer.Next()
		if err = md.Deliver(name, data); !errors.Is(err, mserrors.ErrMessageExists) {
			return err
		}
		w.logger.WithField("file", name).Trace("Filename taken, retrying")
	}
	return err
}

var _ mailseed.Populator = (*Writer)(nil)
