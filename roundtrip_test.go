package mailseed_test

// Round-trip integration tests for the population engine.
//
// These tests wire the full stack: the passwd directory opened through the
// registry, the dispatcher, and one maildir writer per worker. The layout
// mirrors a container at startup:
//
//	root/
//	  users            ← Dovecot users file
//	  alice/Maildir/{cur,new,tmp}
//	  bob/Maildir/{cur,new,tmp}

import (
	"context"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/infodancer/mailseed"
	"github.com/infodancer/mailseed/maildir"
	_ "github.com/infodancer/mailseed/passwd" // register passwd directory
	"github.com/infodancer/mailseed/pool"
)

type testEnv struct {
	root       string
	recipients []mailseed.Recipient
}

// newTestEnv writes a users file with the given logins (plus one malformed
// line) and loads it through the registry.
func newTestEnv(t *testing.T, logins ...string) *testEnv {
	t.Helper()
	root := t.TempDir()

	var b strings.Builder
	b.WriteString("# generated\n")
	for i, login := range logins {
		fmt.Fprintf(&b, "%s:{PLAIN}secret:%d:%d::%s::\n", login, 1000+i, 1000+i, filepath.Join(root, login))
		if i == 0 {
			b.WriteString("malformed:x:1:1\n")
		}
	}
	users := filepath.Join(root, "users")
	if err := os.WriteFile(users, []byte(b.String()), 0600); err != nil {
		t.Fatalf("write users: %v", err)
	}

	dir, err := mailseed.OpenDirectory(mailseed.DirectoryConfig{Type: "passwd", Path: users})
	if err != nil {
		t.Fatalf("OpenDirectory: %v", err)
	}
	recipients, err := dir.Recipients(context.Background())
	if err != nil {
		t.Fatalf("Recipients: %v", err)
	}
	return &testEnv{root: root, recipients: recipients}
}

// populate runs one full pass with min..max messages per recipient.
func (e *testEnv) populate(t *testing.T, workers, min, max int, seed uint64) mailseed.PopulationResult {
	t.Helper()
	identity := maildir.Identity{Hostname: "roundtrip", PID: 4242}

	d, err := pool.New(pool.Config{
		Workers: workers,
		NewWorker: func(worker int) (mailseed.Populator, error) {
			return maildir.NewWriter(maildir.WriterConfig{
				MinMessages: min,
				MaxMessages: max,
				Identity:    identity,
				Seed:        seed + uint64(worker),
			})
		},
	})
	if err != nil {
		t.Fatalf("pool.New: %v", err)
	}

	result, err := d.PopulateAll(context.Background(), e.recipients)
	if err != nil {
		t.Fatalf("PopulateAll: %v", err)
	}
	return result
}

func (e *testEnv) newFiles(t *testing.T, login string) []string {
	t.Helper()
	files, err := maildir.New(filepath.Join(e.root, login, "Maildir")).ListNew()
	if err != nil {
		t.Fatalf("ListNew %s: %v", login, err)
	}
	return files
}

func TestRoundTrip_FixedCount(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	if len(env.recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(env.recipients))
	}

	result := env.populate(t, 4, 2, 2, 1)
	if result.MessagesCreated != 4 {
		t.Fatalf("MessagesCreated = %d, want 4", result.MessagesCreated)
	}
	if result.Recipients != 2 {
		t.Fatalf("Recipients = %d, want 2", result.Recipients)
	}
	for _, login := range []string{"alice", "bob"} {
		if got := len(env.newFiles(t, login)); got != 2 {
			t.Fatalf("%s: expected 2 messages, got %d", login, got)
		}
	}
}

func TestRoundTrip_CountsMatchDisk(t *testing.T) {
	logins := []string{"u0", "u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8", "u9"}
	env := newTestEnv(t, logins...)

	result := env.populate(t, 3, 5, 20, 7)

	total := 0
	for _, login := range logins {
		n := len(env.newFiles(t, login))
		if n < 5 || n > 20 {
			t.Fatalf("%s: %d messages outside [5, 20]", login, n)
		}
		total += n
	}
	if total != result.MessagesCreated {
		t.Fatalf("disk holds %d messages, result reports %d", total, result.MessagesCreated)
	}
	if result.ElapsedSeconds() < 0 {
		t.Fatalf("negative elapsed time: %v", result.Elapsed)
	}
}

func TestRoundTrip_SecondRunIsAdditive(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	first := env.populate(t, 2, 1, 6, 11)
	before := make(map[string]bool)
	for _, login := range []string{"alice", "bob"} {
		for _, name := range env.newFiles(t, login) {
			before[login+"/"+name] = true
		}
	}

	second := env.populate(t, 2, 1, 6, 23)

	after := make(map[string]bool)
	for _, login := range []string{"alice", "bob"} {
		for _, name := range env.newFiles(t, login) {
			after[login+"/"+name] = true
		}
	}
	if len(after) != first.MessagesCreated+second.MessagesCreated {
		t.Fatalf("expected %d messages, found %d", first.MessagesCreated+second.MessagesCreated, len(after))
	}
	for name := range before {
		if !after[name] {
			t.Fatalf("message %s lost after second run", name)
		}
	}
}

func TestRoundTrip_MessagesAddressedToRecipient(t *testing.T) {
	env := newTestEnv(t, "carol")
	env.populate(t, 1, 3, 3, 5)

	dir := filepath.Join(env.root, "carol", "Maildir", "new")
	for _, name := range env.newFiles(t, "carol") {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		msg, err := mail.ReadMessage(f)
		if err != nil {
			_ = f.Close()
			t.Fatalf("parse %s: %v", name, err)
		}
		if got := msg.Header.Get("To"); got != "carol" {
			t.Errorf("%s: To = %q, want carol", name, got)
		}
		if !strings.HasPrefix(msg.Header.Get("Content-Type"), "multipart/alternative;") {
			t.Errorf("%s: unexpected Content-Type %q", name, msg.Header.Get("Content-Type"))
		}
		_ = f.Close()
	}
}
