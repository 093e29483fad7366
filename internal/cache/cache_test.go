package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(1024 * 1024)

	require.NoError(t, c.Set("k", "value", time.Minute))

	var got string
	require.NoError(t, c.Get("k", &got))
	require.Equal(t, "value", got)

	require.NoError(t, c.Delete("k"))
	require.Error(t, c.Get("k", &got))
}

func TestFetch(t *testing.T) {
	c := NewMemoryCache(1024 * 1024)

	calls := 0
	load := func() (string, error) {
		calls++
		return "owner-id", nil
	}

	v, err := Fetch(c, "presentations:owner:x", time.Minute, load)
	require.NoError(t, err)
	require.Equal(t, "owner-id", v)

	v, err = Fetch(c, "presentations:owner:x", time.Minute, load)
	require.NoError(t, err)
	require.Equal(t, "owner-id", v)
	require.Equal(t, 1, calls, "second fetch must be served from cache")

	_, err = Fetch(c, "other", time.Minute, func() (string, error) {
		return "", errors.New("boom")
	})
	require.Error(t, err)
}

func TestKey(t *testing.T) {
	require.Equal(t, "shares:abc:1", Key("shares", "abc", 1))
	require.Equal(t, "sessions:h", KeySessionHash("h"))
	require.Equal(t, "presentations:owner:p1", KeyPresentationOwner("p1"))
}
