package cache

import (
	"math"
	"strings"
	"time"
)

// placeKey is the stored form of a place: whitespace collapsed, lower case.
// Every backend keys on it, so a place hits or misses the same way everywhere.
func placeKey(place string) string {
	return strings.ToLower(strings.Join(strings.Fields(place), " "))
}

// groupPlaces maps each distinct stored key to the caller spellings sharing it.
// keys keeps first-seen order; blank places are dropped.
func groupPlaces(places []string) (keys []string, spellings map[string][]string) {
	spellings = make(map[string][]string, len(places))
	for _, p := range places {
		k := placeKey(p)
		if k == "" {
			continue
		}
		if _, ok := spellings[k]; !ok {
			keys = append(keys, k)
		}
		spellings[k] = append(spellings[k], p)
	}
	return keys, spellings
}

// cutoff is the oldest cached_at, in Unix seconds, still fresh at now.
// A non-positive ttl keeps rows forever.
func cutoff(now time.Time, ttl time.Duration) int64 {
	if ttl <= 0 {
		return math.MinInt64
	}
	return now.Add(-ttl).Unix()
}
