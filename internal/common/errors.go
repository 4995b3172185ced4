package common

import "errors"

// Business logic errors
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("a user with this email already exists")

	// Client errors
	ErrClientNotFound   = errors.New("client not found")
	ErrCpfCnpjTaken     = errors.New("a client with this CPF/CNPJ already exists")
	ErrClientEmailTaken = errors.New("a client with this email already exists")

	// Process errors
	ErrProcessNotFound    = errors.New("process not found")
	ErrProcessNumberTaken = errors.New("a process with this number already exists")

	// Financial errors
	ErrEntryNotFound = errors.New("financial entry not found")

	// Document errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrEmptyFile        = errors.New("file is missing or empty")
	ErrFileTooLarge     = errors.New("file exceeds the maximum allowed size")

	// Chat errors
	ErrSelfMessage     = errors.New("cannot send a message to yourself")
	ErrEmptyContent    = errors.New("message content cannot be empty")
	ErrContentTooLong  = errors.New("message content exceeds the maximum length")
	ErrRecipientAbsent = errors.New("recipient not found")
)
