package passwd

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/infodancer/mailseed"
	"github.com/infodancer/mailseed/errors"
)

func writePasswd(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write passwd file: %v", err)
	}
	return path
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# Dovecot users",
		"",
		"alice@example.com:{PLAIN}pw:1000:1000::/home/alice::",
		"   ",
		"bob@example.com:{PLAIN}pw:1001:1001::/home/bob",
		"broken:{PLAIN}pw:1002:1002",
		"  # indented comment",
		"  carol:x:1003:1003:Carol:/srv/carol:/bin/sh  ",
	}, "\n")

	got, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []mailseed.Recipient{
		{Address: "alice@example.com", MailboxRoot: "/home/alice"},
		{Address: "bob@example.com", MailboxRoot: "/home/bob"},
		{Address: "carol", MailboxRoot: "/srv/carol"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d recipients, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("recipient %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParse_OnlyComments(t *testing.T) {
	got, err := Parse(strings.NewReader("# nothing here\n\n#still nothing\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no recipients, got %v", got)
	}
}

func TestParse_SkippedCount(t *testing.T) {
	_, skipped, err := parse(strings.NewReader("a:b:c:d\nok:x:1:1::/home/ok\ne:f\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 2 {
		t.Fatalf("skipped = %d, want 2", skipped)
	}
}

func TestDirectory_Recipients(t *testing.T) {
	path := writePasswd(t, "alice:x:1:1::/home/alice::\nbob:x:2:2::/home/bob::\n")

	dir := NewDirectory(path, nil)
	if dir.Path() != path {
		t.Fatalf("Path() = %q, want %q", dir.Path(), path)
	}

	recipients, err := dir.Recipients(context.Background())
	if err != nil {
		t.Fatalf("Recipients: %v", err)
	}
	if len(recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(recipients))
	}
}

func TestDirectory_Missing(t *testing.T) {
	dir := NewDirectory(filepath.Join(t.TempDir(), "nope"), nil)

	_, err := dir.Recipients(context.Background())
	if !stderrors.Is(err, errors.ErrDirectoryNotFound) {
		t.Fatalf("expected ErrDirectoryNotFound, got %v", err)
	}
}

func TestRegistered(t *testing.T) {
	path := writePasswd(t, "alice:x:1:1::/home/alice::\n")

	dir, err := mailseed.OpenDirectory(mailseed.DirectoryConfig{Type: "passwd", Path: path})
	if err != nil {
		t.Fatalf("OpenDirectory: %v", err)
	}
	recipients, err := dir.Recipients(context.Background())
	if err != nil {
		t.Fatalf("Recipients: %v", err)
	}
	if len(recipients) != 1 || recipients[0].Address != "alice" {
		t.Fatalf("unexpected recipients: %v", recipients)
	}

	if _, err := mailseed.OpenDirectory(mailseed.DirectoryConfig{Type: "passwd"}); err != errors.ErrDirectoryConfigInvalid {
		t.Fatalf("expected ErrDirectoryConfigInvalid, got %v", err)
	}
}
