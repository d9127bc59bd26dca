package core

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/xssnick/tonutils-go/address"
)

// AccountIDSize is the length of the account part of an address in bytes.
const AccountIDSize = 32

// packedAddressLen is the text length of the 36-byte packed form.
const packedAddressLen = 48

// CanonicalAddress is an address reduced to its workchain and account id.
// Two addresses are the same wallet iff their canonical forms are equal.
type CanonicalAddress struct {
	Workchain int8
	AccountID [AccountIDSize]byte
}

// String returns the raw "workchain:hex" form with lowercase hex.
func (a CanonicalAddress) String() string {
	return strconv.Itoa(int(a.Workchain)) + ":" + hex.EncodeToString(a.AccountID[:])
}

// UserFriendly returns the packed base64url form with the bounceable flag set
// or cleared.
func (a CanonicalAddress) UserFriendly(bounceable bool) string {
	addr := address.NewAddress(0, byte(a.Workchain), a.AccountID[:])
	addr.SetBounce(bounceable)
	return addr.String()
}

// ParseAddress normalizes address text. The raw "workchain:64-hex" form is
// tried first, then the packed checksummed form in its bounceable and
// non-bounceable flavours.
func ParseAddress(text string) (CanonicalAddress, error) {
	if addr, ok := parseRawAddress(text); ok {
		return addr, nil
	}
	if addr, ok := parsePackedAddress(text); ok {
		return addr, nil
	}
	return CanonicalAddress{}, fmt.Errorf("%q: %w", text, ErrAddressParse)
}

func parseRawAddress(text string) (CanonicalAddress, bool) {
	wc, account, found := strings.Cut(text, ":")
	if !found || len(account) != 2*AccountIDSize || !isWorkchainText(wc) {
		return CanonicalAddress{}, false
	}
	workchain, err := strconv.ParseInt(wc, 10, 8)
	if err != nil {
		return CanonicalAddress{}, false
	}
	data, err := hex.DecodeString(account)
	if err != nil {
		return CanonicalAddress{}, false
	}

	addr := CanonicalAddress{Workchain: int8(workchain)}
	copy(addr.AccountID[:], data)
	return addr, true
}

// isWorkchainText accepts an optional minus sign followed by decimal digits
// without leading zeros. "+0", "-0" and "00" are rejected.
func isWorkchainText(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || (digits[0] == '0' && (len(digits) > 1 || len(s) > 1)) {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isPackedText reports whether s has the exact length and alphabet of a
// base64 or base64url encoded packed address.
func isPackedText(s string) bool {
	if len(s) != packedAddressLen {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '+', c == '/', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// parsePackedAddress decodes the 36-byte flags|workchain|account|crc16 form.
// The checksum covers both flag interpretations, so one decode serves both.
func parsePackedAddress(text string) (CanonicalAddress, bool) {
	if !isPackedText(text) {
		return CanonicalAddress{}, false
	}
	parsed, err := address.ParseAddr(text)
	if err != nil {
		return CanonicalAddress{}, false
	}
	data := parsed.Data()
	if len(data) != AccountIDSize {
		return CanonicalAddress{}, false
	}

	addr := CanonicalAddress{Workchain: int8(parsed.Workchain())}
	copy(addr.AccountID[:], data)
	return addr, true
}
