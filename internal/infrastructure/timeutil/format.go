package timeutil

import "time"

// TimestampLayout is the wire format for every timestamp the service emits.
const TimestampLayout = time.RFC3339

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// StoredTime truncates t to millisecond precision in UTC, matching what
// BSON datetimes and the DynamoDB marshaller round-trip.
func StoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
