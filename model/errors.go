package model

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned when no cached Spotify token exists.
// Callers treat it as "skip the API fetch", not as a failure.
var ErrNoSession = errors.New("no authenticated spotify session")

// ConfigError reports missing or invalid credential configuration.
// Fatal: the operator has to fix the environment before anything can run.
type ConfigError struct {
	Field  string
	Reason string
	Remedy string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s (%s)", e.Field, e.Reason, e.Remedy)
}

// DataSourceError reports a missing, unreadable or empty historical source.
// Fatal for the merge run: the recent API window alone can never stand in
// for the full timeline.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("data source %s unavailable", e.Source)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// RemoteCallError reports a failed Spotify API call (auth expiry, rate
// limit, network). Never fatal: callers log it and continue with zero rows.
type RemoteCallError struct {
	Op  string
	Err error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("spotify %s: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

// ImageLookupError reports a failed artist or track image resolution.
// The dashboard falls back to a placeholder.
type ImageLookupError struct {
	Query string
	Err   error
}

func (e *ImageLookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image lookup %q: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("image lookup %q: no result", e.Query)
}

func (e *ImageLookupError) Unwrap() error { return e.Err }
