// Package cache provides the dashboard's stats cache: a plain key→value
// byte cache owned explicitly by the server layer and flushed whenever the
// merged timeline file changes.
package cache

// StatsCache caches serialized aggregate responses keyed by endpoint and
// filter parameters.
type StatsCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Flush()
}
