// Package reaction holds the vocabulary shared by the reaction store, the
// engine and the transports: entry kinds, result shapes and error sentinels.
package reaction

import (
	"fmt"
	"strings"
)

// Kind tags which list an entry belongs to.
type Kind string

const (
	KindFavorite   Kind = "FAVORITE"
	KindWatched    Kind = "WATCHED"
	KindTop10      Kind = "TOP10"
	KindWatchLater Kind = "WATCH_LATER"
)

// Kinds lists every known entry kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindFavorite, KindWatched, KindTop10, KindWatchLater}
}

// ParseKind accepts the canonical names as well as the URL aliases used by the
// list endpoints ("favorites", "watch-later", ...). Matching ignores case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "favorite", "favorites":
		return KindFavorite, nil
	case "watched":
		return KindWatched, nil
	case "top10":
		return KindTop10, nil
	case "watch_later", "watch-later", "watchlater":
		return KindWatchLater, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEntryKind, s)
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFavorite, KindWatched, KindTop10, KindWatchLater:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }
