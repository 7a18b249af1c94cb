// Package timezone resolves wall clock time in the configured APP_TIMEZONE.
//
// Stay dates are calendar dates. They are parsed with ParseDate into UTC midnights so that
// the difference between two of them is always a whole number of days, regardless of
// daylight saving transitions in the application timezone. Today maps the current wall
// clock date into the same representation.
package timezone
