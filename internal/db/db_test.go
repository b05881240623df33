package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) {
	t.Helper()
	Open(Config{File: filepath.Join(t.TempDir(), "data", "history.db")})
	t.Cleanup(func() {
		require.NoError(t, Close())
	})
}

func collect() ([]uint64, []Entry) {
	var ids []uint64
	var entries []Entry
	for id, e := range All() {
		ids = append(ids, id)
		entries = append(entries, e)
	}
	return ids, entries
}

func TestAppendAll(t *testing.T) {
	openTemp(t)

	now := time.Now().UTC().Truncate(time.Second)
	for i, ct := range []string{"LIPPS ASVPH", "BCD", "JK"} {
		id, err := Append(Entry{Time: now, Source: "cli", Key: "4", Ciphertext: ct})
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), id)
	}

	ids, entries := collect()
	assert.Equal(t, []uint64{1, 2, 3}, ids)
	require.Len(t, entries, 3)
	assert.Equal(t, "LIPPS ASVPH", entries[0].Ciphertext)
	assert.Equal(t, "JK", entries[2].Ciphertext)
	assert.True(t, entries[0].Time.Equal(now))
}

func TestAllStopsEarly(t *testing.T) {
	openTemp(t)

	for range 5 {
		_, err := Append(Entry{Ciphertext: "A"})
		require.NoError(t, err)
	}

	n := 0
	for range All() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestClear(t *testing.T) {
	openTemp(t)

	for range 4 {
		_, err := Append(Entry{Ciphertext: "A"})
		require.NoError(t, err)
	}
	require.NoError(t, Clear())

	ids, _ := collect()
	assert.Empty(t, ids)

	id, err := Append(Entry{Ciphertext: "B"})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
}

func TestOpenTwice(t *testing.T) {
	openTemp(t)
	assert.True(t, Opened())
	assert.Panics(t, func() { Open(Config{File: filepath.Join(t.TempDir(), "other.db")}) })
}

func TestOpenRequiresFile(t *testing.T) {
	assert.Panics(t, func() { Open(Config{}) })
	assert.False(t, Opened())
}
