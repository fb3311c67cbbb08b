// Package errors provides centralized error definitions for mailseed.
package errors

import "errors"

// Configuration errors.
var (
	// ErrInvalidRange indicates the message count range is negative or inverted.
	ErrInvalidRange = errors.New("invalid message count range")

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidPolicy indicates an unknown failure policy name.
	ErrInvalidPolicy = errors.New("invalid failure policy")
)

// Directory errors.
var (
	// ErrDirectoryNotFound indicates the user directory file does not exist.
	ErrDirectoryNotFound = errors.New("user directory not found")

	// ErrNoRecipients indicates the user directory yielded no usable entries.
	ErrNoRecipients = errors.New("no recipients")

	// ErrDirectoryNotRegistered indicates the requested directory type is not registered.
	ErrDirectoryNotRegistered = errors.New("directory type not registered")

	// ErrDirectoryConfigInvalid indicates the directory configuration is invalid.
	ErrDirectoryConfigInvalid = errors.New("invalid directory configuration")
)

// Vocabulary errors.
var (
	// ErrEmptyVocabulary indicates a vocabulary table has no entries.
	ErrEmptyVocabulary = errors.New("empty vocabulary table")

	// ErrUnknownPlaceholder indicates a subject template names an unsupported placeholder.
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
)

// Maildir errors.
var (
	// ErrMaildirNotFound indicates the maildir directory does not exist.
	ErrMaildirNotFound = errors.New("maildir not found")

	// ErrMessageExists indicates a message file with the same name is already present.
	ErrMessageExists = errors.New("message already exists")

	// ErrInvalidPath indicates an invalid mailbox root.
	ErrInvalidPath = errors.New("invalid maildir path")
)

// Population errors.
var (
	// ErrPartialPopulation indicates some recipients failed while others were populated.
	ErrPartialPopulation = errors.New("partial population")
)
