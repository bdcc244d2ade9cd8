package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/run-tracker-go/internal/models"
	"github.com/jengzang/run-tracker-go/internal/tracker"
)

func TestFeedDeliversToSubscriber(t *testing.T) {
	feed := NewFeed()

	var fixes []models.Fix
	var errs []error
	sub, err := feed.Subscribe(
		func(f models.Fix) { fixes = append(fixes, f) },
		func(e error) { errs = append(errs, e) },
	)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	feed.Push(models.Fix{Longitude: 13.4, Latitude: 52.5, Accuracy: 5})
	feed.PushError(tracker.ErrTimeout)

	require.Len(t, fixes, 1)
	assert.Equal(t, 13.4, fixes[0].Longitude)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], tracker.ErrTimeout)
}

func TestFeedDropsFixesWithoutSubscriber(t *testing.T) {
	feed := NewFeed()

	// must not panic or block
	feed.Push(models.Fix{Longitude: 13.4, Latitude: 52.5})
	feed.PushError(tracker.ErrUnavailable)
}

func TestFeedRejectsSecondSubscriber(t *testing.T) {
	feed := NewFeed()

	sub, err := feed.Subscribe(func(models.Fix) {}, func(error) {})
	require.NoError(t, err)

	_, err = feed.Subscribe(func(models.Fix) {}, func(error) {})
	assert.Error(t, err)

	// after unsubscribing the slot is free again
	sub.Unsubscribe()
	sub2, err := feed.Subscribe(func(models.Fix) {}, func(error) {})
	require.NoError(t, err)
	sub2.Unsubscribe()
}

func TestFeedUnsubscribeStopsDelivery(t *testing.T) {
	feed := NewFeed()

	count := 0
	sub, err := feed.Subscribe(func(models.Fix) { count++ }, func(error) {})
	require.NoError(t, err)

	feed.Push(models.Fix{})
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	feed.Push(models.Fix{})

	assert.Equal(t, 1, count)
}
