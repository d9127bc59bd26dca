package core

// CheckFreshness bounds how long a signed timestamp can be used to log in.
// Timestamps ahead of the server clock are rejected without leeway; the
// lifetime boundary itself is still accepted.
func CheckFreshness(claimed uint64, now int64, lifetime uint32) error {
	if now < 0 || claimed > uint64(now) {
		return ErrTimestampFromFuture
	}
	if claimed+uint64(lifetime) < uint64(now) {
		return ErrLoginExpired
	}
	return nil
}
