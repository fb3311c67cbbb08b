package maildir

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"
)

// Identity is the process identity embedded in delivered filenames.
// It is captured once at startup and passed to every worker.
type Identity struct {
	Hostname string
	PID      int
}

// CurrentIdentity returns the sanitized hostname and pid of this process.
func CurrentIdentity() Identity {
	return Identity{
		Hostname: getHostname(),
		PID:      os.Getpid(),
	}
}

// Namer generates filenames for new/.
// Format: seconds.micros.pid_random.hostname
// Example: 1705678901.123456.12345_482913.mailhost
type Namer struct {
	identity Identity
	rnd      *rand.Rand
	now      func() time.Time
}

// NewNamer creates a Namer. A nil now defaults to time.Now.
func NewNamer(identity Identity, rnd *rand.Rand, now func() time.Time) *Namer {
	if now == nil {
		now = time.Now
	}
	identity.Hostname = sanitizeHostname(identity.Hostname)
	return &Namer{identity: identity, rnd: rnd, now: now}
}

// Next returns a new filename.
func (n *Namer) Next() string {
	now := n.now()
	return fmt.Sprintf("%d.%06d.%d_%d.%s",
		now.Unix(),
		now.Nanosecond()/1000,
		n.identity.PID,
		100000+n.rnd.IntN(900000),
		n.identity.Hostname,
	)
}

// getHostname returns the sanitized system hostname.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	return sanitizeHostname(hostname)
}

// sanitizeHostname removes or replaces characters that are problematic in filenames.
func sanitizeHostname(hostname string) string {
	// ':' separates the maildir info suffix
	hostname = strings.ReplaceAll(hostname, "/", "_")
	hostname = strings.ReplaceAll(hostname, ":", "_")
	hostname = strings.ReplaceAll(hostname, "\x00", "")
	return hostname
}
