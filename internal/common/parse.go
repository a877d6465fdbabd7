package common

import (
	"strconv"
	"strings"
)

// ParseUint64orHex parses a decimal or 0x-prefixed hexadecimal block number.
func ParseUint64orHex(val string) (uint64, error) {
	if hex, ok := strings.CutPrefix(strings.ToLower(val), "0x"); ok {
		return strconv.ParseUint(hex, 16, 64)
	}

	return strconv.ParseUint(val, 10, 64)
}

const bytesInMB = 1 << 20

func BytesToMB(bytes uint64) uint64 {
	return bytes / bytesInMB
}

// ToLowerWithTrim normalizes a config key such as a component name.
func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
