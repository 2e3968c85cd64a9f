package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedScanner plays back a fixed sequence of SCAN pages and records the
// cursor each call was issued with.
type scriptedScanner struct {
	pages   [][]string
	cursors []uint64
	scanErr error

	seenCursors []uint64
	deleted     []string
}

func (s *scriptedScanner) Scan(_ context.Context, cursor uint64, _ string, _ int64) *redis.ScanCmd {
	s.seenCursors = append(s.seenCursors, cursor)
	cmd := redis.NewScanCmd(context.Background(), nil)
	if s.scanErr != nil {
		cmd.SetErr(s.scanErr)
		return cmd
	}
	i := len(s.seenCursors) - 1
	cmd.SetVal(s.pages[i], s.cursors[i])
	return cmd
}

func (s *scriptedScanner) Del(_ context.Context, keys ...string) *redis.IntCmd {
	s.deleted = append(s.deleted, keys...)
	cmd := redis.NewIntCmd(context.Background())
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestDeleteByScanFollowsContinuationCursor(t *testing.T) {
	s := &scriptedScanner{
		pages: [][]string{
			{"cache:u1:/api/stats/overview?"},
			{},
			{"cache:u1:/api/moods?", "cache:u1:/api/stats/day/2026-02-28?"},
		},
		cursors: []uint64{17, 42, 0},
	}

	require.NoError(t, deleteByScan(s, "cache:u1:*"))

	// every SCAN after the first carries the cursor the server returned
	assert.Equal(t, []uint64{0, 17, 42}, s.seenCursors)
	assert.Equal(t, []string{
		"cache:u1:/api/stats/overview?",
		"cache:u1:/api/moods?",
		"cache:u1:/api/stats/day/2026-02-28?",
	}, s.deleted)
}

func TestDeleteByScanSinglePage(t *testing.T) {
	s := &scriptedScanner{
		pages:   [][]string{{"cache:u1:/api/habits?"}},
		cursors: []uint64{0},
	}

	require.NoError(t, deleteByScan(s, "cache:u1:*"))
	assert.Equal(t, []uint64{0}, s.seenCursors)
	assert.Equal(t, []string{"cache:u1:/api/habits?"}, s.deleted)
}

func TestDeleteByScanPropagatesScanError(t *testing.T) {
	s := &scriptedScanner{scanErr: errors.New("connection reset")}

	err := deleteByScan(s, "cache:u1:*")
	require.Error(t, err)
	assert.Empty(t, s.deleted)
}
