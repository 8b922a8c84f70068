package reaction

import "errors"

var (
	// ErrInvalidEntryKind indicates an unrecognised entry-kind string
	ErrInvalidEntryKind = errors.New("invalid entry kind")

	// ErrEntryNotFound indicates the entry does not exist or its list kind has no owner lookup
	ErrEntryNotFound = errors.New("entry not found")

	// ErrSelfReaction indicates the acting user owns the entry
	ErrSelfReaction = errors.New("cannot react to your own entry")

	// ErrConflict indicates a concurrent write raced on the (user, entry, kind) key
	ErrConflict = errors.New("concurrent reaction update")

	// ErrStorageUnavailable indicates the reaction store failed
	ErrStorageUnavailable = errors.New("reaction storage unavailable")

	// ErrInvalidCursor indicates a malformed pagination cursor
	ErrInvalidCursor = errors.New("invalid pagination token")
)

// IsCallerError reports whether err is a rejection caused by the request itself.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrInvalidEntryKind) ||
		errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrSelfReaction) ||
		errors.Is(err, ErrInvalidCursor)
}
