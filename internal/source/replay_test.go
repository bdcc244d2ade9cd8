package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/run-tracker-go/internal/models"
)

const fixtureJSON = `[
	{"longitude": 13.413215, "latitude": 52.521918, "accuracy": 8},
	{"longitude": 13.411000, "latitude": 52.522500, "accuracy": 9},
	{"longitude": 13.408000, "latitude": 52.523200, "accuracy": 10}
]`

func writeFixtures(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixes.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o644))
	return path
}

type fixCollector struct {
	mu    sync.Mutex
	fixes []models.Fix
}

func (c *fixCollector) add(f models.Fix) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fixes = append(c.fixes, f)
}

func (c *fixCollector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fixes)
}

func TestReplayMissingFile(t *testing.T) {
	_, err := NewReplay(filepath.Join(t.TempDir(), "nope.json"), time.Millisecond)
	assert.Error(t, err)
}

func TestReplayMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewReplay(path, time.Millisecond)
	assert.Error(t, err)
}

func TestReplayPlaysAllFixesInOrder(t *testing.T) {
	replay, err := NewReplay(writeFixtures(t), time.Millisecond)
	require.NoError(t, err)

	var c fixCollector
	sub, err := replay.Subscribe(c.add, func(error) {})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.Eventually(t, func() bool { return c.len() == 3 }, time.Second, time.Millisecond)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Equal(t, 13.413215, c.fixes[0].Longitude)
	assert.Equal(t, 13.411000, c.fixes[1].Longitude)
	assert.Equal(t, 13.408000, c.fixes[2].Longitude)
}

func TestReplayRejectsSecondSubscriber(t *testing.T) {
	replay, err := NewReplay(writeFixtures(t), time.Millisecond)
	require.NoError(t, err)

	sub, err := replay.Subscribe(func(models.Fix) {}, func(error) {})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	_, err = replay.Subscribe(func(models.Fix) {}, func(error) {})
	assert.Error(t, err)
}

func TestReplayCursorSurvivesResubscribe(t *testing.T) {
	replay, err := NewReplay(writeFixtures(t), time.Millisecond)
	require.NoError(t, err)

	var first fixCollector
	sub, err := replay.Subscribe(first.add, func(error) {})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return first.len() >= 1 }, time.Second, time.Millisecond)
	sub.Unsubscribe()
	// let a callback already past the cancellation check drain
	time.Sleep(10 * time.Millisecond)
	consumed := first.len()

	// resuming continues the recording instead of restarting it
	var second fixCollector
	sub2, err := replay.Subscribe(second.add, func(error) {})
	require.NoError(t, err)
	defer sub2.Unsubscribe()

	require.Eventually(t, func() bool { return consumed+second.len() == 3 }, time.Second, time.Millisecond)

	second.mu.Lock()
	defer second.mu.Unlock()
	if len(second.fixes) > 0 {
		assert.NotEqual(t, 13.413215, second.fixes[0].Longitude)
	}
}
