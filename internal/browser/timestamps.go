package browser

// Browser families encode timestamps against different epochs. All values
// are normalized to Unix-epoch seconds before storage so cross-browser
// ordering is consistent.

// chromiumEpochOffset is the number of seconds between 1601-01-01 (the
// Windows FILETIME epoch used by Chromium) and the Unix epoch.
const chromiumEpochOffset = 11_644_473_600

// safariEpochOffset is the number of seconds between the Unix epoch and
// 2001-01-01 (the Core Data reference date used by Safari).
const safariEpochOffset = 978_307_200

// chromiumTimeToUnix converts microseconds since 1601-01-01 to Unix seconds.
func chromiumTimeToUnix(micros int64) int64 {
	if micros == 0 {
		return 0
	}
	return micros/1_000_000 - chromiumEpochOffset
}

// firefoxTimeToUnix converts microseconds since the Unix epoch to seconds.
func firefoxTimeToUnix(micros int64) int64 {
	return micros / 1_000_000
}

// safariTimeToUnix converts seconds since 2001-01-01 to Unix seconds.
func safariTimeToUnix(seconds float64) int64 {
	if seconds == 0 {
		return 0
	}
	return int64(seconds) + safariEpochOffset
}
