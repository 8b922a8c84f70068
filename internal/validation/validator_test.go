package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	EntryType string   `json:"entryType" validate:"required,entrykind"`
	UserID    string   `json:"userId" validate:"required,max=8"`
	Action    string   `json:"action" validate:"omitempty,oneof=like dislike remove"`
	IDs       []uint64 `json:"ids" validate:"max=3"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(&sample{EntryType: "Watch-Later", UserID: "a", Action: "like", IDs: []uint64{1}}))
}

func TestStruct_CollectsFieldErrors(t *testing.T) {
	err := Struct(&sample{EntryType: "bookmarks", UserID: "way-too-long-id", Action: "love", IDs: []uint64{1, 2, 3, 4}})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Tag
	}
	assert.Equal(t, map[string]string{
		"entryType": "entrykind",
		"userId":    "max",
		"action":    "oneof",
		"ids":       "max",
	}, fields)
	assert.Contains(t, err.Error(), "userId must be at most 8 characters")
}

func TestStruct_Required(t *testing.T) {
	err := Struct(&sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entryType is required")
	assert.Contains(t, err.Error(), "userId is required")
}

func TestGet_Singleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}
