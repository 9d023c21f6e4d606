package activityfeed

// FeedKey returns the sorted-set key for a user's feed:
//
//	individual: "{namespace}:{userID}"
//	aggregate:  "{namespace}:{aggregateKey}:{userID}"
func (e *Engine) FeedKey(userID string, aggregate bool) string {
	return feedKey(e.cfg.Namespace, e.cfg.AggregateKey, userID, aggregate)
}

func feedKey(namespace, aggregateKey, userID string, aggregate bool) string {
	if aggregate {
		return namespace + ":" + aggregateKey + ":" + userID
	}
	return namespace + ":" + userID
}
