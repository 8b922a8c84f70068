package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_EmptyIsFirstPage(t *testing.T) {
	c, err := Decode("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}

func TestEncodeDecode(t *testing.T) {
	token, err := Encode(Cursor{ID: "abc", CreatedUnix: 1700000000123})
	require.NoError(t, err)

	c, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", c.ID)
	assert.Equal(t, int64(1700000000123), c.CreatedUnix)
}

func TestDecode_Invalid(t *testing.T) {
	for _, token := range []string{"%%%", "bm90LWpzb24=", "e30="} {
		_, err := Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}
