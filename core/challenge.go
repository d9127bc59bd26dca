package core

import "strconv"

// BuildChallenge returns the exact bytes a wallet signs to log in. address is
// the text the client submitted, not its canonical form, so the signature
// covers what the user was shown.
func BuildChallenge(originURL, address string, timestamp uint64) []byte {
	return []byte("I want to login at " + originURL + " with address " + address + " at " + strconv.FormatUint(timestamp, 10))
}
