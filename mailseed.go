// Package mailseed populates per-user Maildir trees with synthetic messages.
//
// The root package holds the domain types shared by the loader, writer and
// dispatcher subpackages, plus a registry of user directory sources.
package mailseed

import (
	"context"
	"time"
)

// Recipient is one entry of the user directory.
type Recipient struct {
	// Address is the recipient address written into the To header.
	Address string

	// MailboxRoot is the home directory holding the recipient's Maildir.
	MailboxRoot string
}

// Populator writes synthetic messages into one recipient's mailbox.
type Populator interface {
	// PopulateUser delivers a batch of messages and returns how many were written.
	PopulateUser(ctx context.Context, recipient Recipient) (int, error)
}

// Directory supplies the recipients to populate.
type Directory interface {
	// Recipients returns every usable entry of the directory.
	Recipients(ctx context.Context) ([]Recipient, error)
}

// RecipientResult is the outcome of populating a single recipient.
type RecipientResult struct {
	Recipient Recipient

	// Messages is the number of messages delivered before Err, if any.
	Messages int

	Err error
}

// OK reports whether the recipient was populated without error.
func (r RecipientResult) OK() bool {
	return r.Err == nil
}

// PopulationResult aggregates a whole run.
type PopulationResult struct {
	// Recipients is the number of recipients that were populated successfully.
	Recipients int

	// MessagesCreated counts every message written, including those
	// delivered to a recipient before it failed.
	MessagesCreated int

	// Elapsed is the wall-clock time from dispatch start to the final join.
	Elapsed time.Duration

	// Failures lists recipients that failed when failures are collected.
	Failures []RecipientResult
}

// ElapsedSeconds returns Elapsed in seconds.
func (r PopulationResult) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// Throughput returns messages per second. ok is false when no measurable
// time elapsed.
func (r PopulationResult) Throughput() (rate float64, ok bool) {
	secs := r.ElapsedSeconds()
	if secs <= 0 {
		return 0, false
	}
	return float64(r.MessagesCreated) / secs, true
}
