// Package maildir writes synthesized messages into Maildir-format mailboxes.
//
// Each recipient's messages land in a Maildir below their home directory:
//
//	home/
//	└── Maildir/
//	    ├── new/     # Delivered messages
//	    ├── cur/     # Created empty for the mail server
//	    └── tmp/     # Staging area during delivery
//
// Messages are written to tmp/ and then linked into new/, so a file in new/
// is always complete. Filenames combine a microsecond timestamp, the process
// id, a random integer and the hostname:
//
//	1705678901.123456.12345_482913.mailhost
//
// An existing file is never replaced. If a generated name is already taken
// the Writer draws a new one.
//
// Populate a single mailbox:
//
//	w, err := maildir.NewWriter(maildir.WriterConfig{
//	    MinMessages: 5,
//	    MaxMessages: 20,
//	    Identity:    maildir.CurrentIdentity(),
//	})
//	n, err := w.PopulateUser(ctx, mailseed.Recipient{
//	    Address:     "alice",
//	    MailboxRoot: "/home/alice",
//	})
package maildir
