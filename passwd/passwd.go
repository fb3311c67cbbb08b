// Package passwd provides a user directory backed by a passwd-style file.
//
// Each line has at least six colon-separated fields. Field 0 is the login,
// used as the recipient address, and field 5 is the home directory:
//
//	alice@example.com:{PLAIN}secret:1000:1000::/home/alice::
//
// Blank lines and lines starting with '#' are ignored. Lines with fewer
// than six fields are skipped.
package passwd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/infodancer/mailseed"
	"github.com/infodancer/mailseed/errors"
)

const (
	// DefaultPath is the Dovecot users file.
	DefaultPath = "/etc/dovecot/users"

	minFields   = 6
	loginField  = 0
	homeField   = 5
	commentChar = "#"
)

// Directory implements mailseed.Directory over a passwd file.
type Directory struct {
	path   string
	logger logrus.FieldLogger
}

// NewDirectory creates a Directory reading path. The file is read on each
// call to Recipients.
func NewDirectory(path string, logger logrus.FieldLogger) *Directory {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Directory{path: path, logger: logger}
}

// Path returns the passwd file path.
func (d *Directory) Path() string {
	return d.path
}

// Recipients implements mailseed.Directory.
func (d *Directory) Recipients(ctx context.Context) ([]mailseed.Recipient, error) {
	f, err := os.Open(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", d.path, errors.ErrDirectoryNotFound)
		}
		return nil, fmt.Errorf("open passwd file: %w", err)
	}
	defer func() { _ = f.Close() }()

	recipients, skipped, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("read passwd file: %w", err)
	}
	if skipped > 0 {
		d.logger.WithFields(logrus.Fields{
			"file":    d.path,
			"skipped": skipped,
		}).Debug("Skipped malformed passwd lines")
	}
	return recipients, nil
}

// Parse reads recipients from passwd-formatted r.
func Parse(r io.Reader) ([]mailseed.Recipient, error) {
	recipients, _, err := parse(r)
	return recipients, err
}

// parse also reports how many non-comment lines were malformed.
func parse(r io.Reader) (recipients []mailseed.Recipient, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, commentChar) {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) < minFields {
			skipped++
			continue
		}

		recipients = append(recipients, mailseed.Recipient{
			Address:     parts[loginField],
			MailboxRoot: parts[homeField],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return recipients, skipped, nil
}

var _ mailseed.Directory = (*Directory)(nil)
