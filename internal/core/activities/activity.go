// Package activities publishes activity records and fans their ids out to
// activity feeds. The records themselves live in the activities table; feeds
// only hold ids scored by publish time.
package activities

import "time"

// Activity is one entry shown in a feed: actor did verb to object
type Activity struct {
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	ID          string    `json:"id"`
	ActorID     string    `json:"actorId"`
	Verb        string    `json:"verb"`
	Object      string    `json:"object"`
}

// Score returns the feed score for the activity (unix seconds)
func (a *Activity) Score() float64 {
	return float64(a.PublishedAt.Unix())
}

// PublishRequest is the input for publishing an activity
type PublishRequest struct {
	PublishedAt time.Time `json:"publishedAt"`
	Aggregate   *bool     `json:"aggregate,omitempty"`
	ActorID     string    `json:"actorId"`
	Verb        string    `json:"verb"`
	Object      string    `json:"object"`
	// Audience receives the activity in their aggregate feeds
	Audience []string `json:"audience,omitempty"`
}

// DeleteRequest is the input for deleting an activity
type DeleteRequest struct {
	ActivityID string   `json:"id"`
	Audience   []string `json:"audience,omitempty"`
}
