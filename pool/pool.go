// Package pool fans mailbox population out over a fixed set of workers.
package pool

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/bradenaw/juniper/parallel"
	"github.com/bradenaw/juniper/xslices"
	"github.com/sirupsen/logrus"

	"github.com/infodancer/mailseed"
	"github.com/infodancer/mailseed/errors"
)

// Policy decides what happens when a recipient fails.
type Policy int

const (
	// PolicyAbort stops scheduling recipients after the first failure.
	PolicyAbort Policy = iota

	// PolicyContinue records failures and populates the remaining recipients.
	PolicyContinue
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicyContinue:
		return "continue"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy converts a configuration name into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "abort":
		return PolicyAbort, nil
	case "continue":
		return PolicyContinue, nil
	}
	return 0, fmt.Errorf("%q: %w", name, errors.ErrInvalidPolicy)
}

// WorkerFactory creates the Populator owned by one worker.
// worker ranges over [0, workers).
type WorkerFactory func(worker int) (mailseed.Populator, error)

// Config contains settings for a Dispatcher.
type Config struct {
	// Workers bounds parallelism. Zero means runtime.NumCPU().
	Workers int

	Policy Policy

	NewWorker WorkerFactory

	Logger logrus.FieldLogger
}

// Dispatcher runs one Populator per worker over a list of recipients.
type Dispatcher struct {
	workers   int
	policy    Policy
	newWorker WorkerFactory
	logger    logrus.FieldLogger
}

// New validates cfg and creates a Dispatcher.
func New(cfg Config) (*Dispatcher, error) {
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%d: %w", cfg.Workers, errors.ErrInvalidWorkers)
	}
	if cfg.NewWorker == nil {
		return nil, stderrors.New("pool: nil worker factory")
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Dispatcher{
		workers:   workers,
		policy:    cfg.Policy,
		newWorker: cfg.NewWorker,
		logger:    logger,
	}, nil
}

// Workers returns the configured pool size.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// workersFor returns the number of workers started for n recipients.
func (d *Dispatcher) workersFor(n int) int {
	if n < d.workers {
		return n
	}
	return d.workers
}

// PopulateAll populates every recipient and aggregates the outcome.
//
// Under PolicyAbort the first failure cancels the run; under PolicyContinue
// failures are collected in the result and reported as ErrPartialPopulation.
// Cancelling ctx stops new recipients from being scheduled. In both cases
// recipients already in progress finish, and the returned result covers the
// work that completed.
func (d *Dispatcher) PopulateAll(ctx context.Context, recipients []mailseed.Recipient) (mailseed.PopulationResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return mailseed.PopulationResult{}, err
	}

	workers := d.workersFor(len(recipients))
	if workers == 0 {
		return mailseed.PopulationResult{Elapsed: time.Since(start)}, nil
	}

	populators := make([]mailseed.Populator, workers)
	for w := range populators {
		p, err := d.newWorker(w)
		if err != nil {
			return mailseed.PopulationResult{Elapsed: time.Since(start)}, fmt.Errorf("create worker %d: %w", w, err)
		}
		populators[w] = p
	}

	jobs := make(chan int, len(recipients))
	for i := range recipients {
		jobs <- i
	}
	close(jobs)

	d.logger.WithFields(logrus.Fields{
		"recipients": len(recipients),
		"workers":    workers,
		"policy":     d.policy.String(),
	}).Debug("Dispatching recipients")

	// Each slot is written by exactly one worker; nil means never started.
	results := make([]*mailseed.RecipientResult, len(recipients))

	err := parallel.DoContext(ctx, workers, workers, func(ctx context.Context, w int) error {
		for i := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}

			recipient := recipients[i]
			n, err := populators[w].PopulateUser(ctx, recipient)
			results[i] = &mailseed.RecipientResult{Recipient: recipient, Messages: n, Err: err}
			if err == nil {
				continue
			}

			d.logger.WithError(err).WithFields(logrus.Fields{
				"recipient": recipient.Address,
				"worker":    w,
			}).Warn("Failed to populate mailbox")

			if d.policy == PolicyAbort {
				return fmt.Errorf("populate %s: %w", recipient.Address, err)
			}
		}
		return nil
	})

	result := aggregate(results)
	result.Elapsed = time.Since(start)

	if err != nil {
		return result, err
	}
	if len(result.Failures) > 0 {
		causes := xslices.Map(result.Failures, func(r mailseed.RecipientResult) error {
			return fmt.Errorf("populate %s: %w", r.Recipient.Address, r.Err)
		})
		return result, fmt.Errorf("%d of %d recipients failed: %w",
			len(result.Failures), len(recipients), stderrors.Join(append([]error{errors.ErrPartialPopulation}, causes...)...))
	}
	return result, nil
}

// aggregate sums the started recipients. Messages delivered before a
// recipient failed still count toward MessagesCreated.
func aggregate(results []*mailseed.RecipientResult) mailseed.PopulationResult {
	var result mailseed.PopulationResult

	started := xslices.Filter(results, func(r *mailseed.RecipientResult) bool { return r != nil })
	for _, r := range started {
		result.MessagesCreated += r.Messages
		if r.OK() {
			result.Recipients++
			continue
		}
		result.Failures = append(result.Failures, *r)
	}
	return result
}
