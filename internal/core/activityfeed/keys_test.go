package activityfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedKey(t *testing.T) {
	e := newTestEngine(t, newMemStore(), nil)

	assert.Equal(t, "activity_feed:david", e.FeedKey("david", false))
	assert.Equal(t, "activity_feed:aggregate:david", e.FeedKey("david", true))
}

func TestFeedKey_CustomNamespace(t *testing.T) {
	e := newTestEngine(t, newMemStore(), func(c *Config) {
		c.Namespace = "notifications"
		c.AggregateKey = "all"
	})

	assert.Equal(t, "notifications:david", e.FeedKey("david", false))
	assert.Equal(t, "notifications:all:david", e.FeedKey("david", true))
}

func TestFeedKey_IndividualAndAggregateDiffer(t *testing.T) {
	cases := []struct{ namespace, aggregateKey, userID string }{
		{"activity_feed", "aggregate", "david"},
		{"a", "b", "c"},
		{"ns", "aggregate", "aggregate"},
		{"x", "y", "y:z"},
	}
	for _, c := range cases {
		individual := feedKey(c.namespace, c.aggregateKey, c.userID, false)
		aggregate := feedKey(c.namespace, c.aggregateKey, c.userID, true)
		assert.NotEqual(t, individual, aggregate)
		assert.Equal(t, individual, feedKey(c.namespace, c.aggregateKey, c.userID, false))
		assert.Equal(t, aggregate, feedKey(c.namespace, c.aggregateKey, c.userID, true))
	}
}
