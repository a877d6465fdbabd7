package rpc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ChainPaywall/internal/common"
)

var (
	tooManyResultsRe = regexp.MustCompile(`(?i)query returned more than \d+ results`)
	blockRangeRe     = regexp.MustCompile(`\[(0x[0-9a-fA-F]+),\s*(0x[0-9a-fA-F]+)\]`)
)

// rangeLimitMarkers are provider messages that reject an eth_getLogs range as too wide.
var rangeLimitMarkers = []string{
	"log response size exceeded",
	"block range is too wide",
	"block range too large",
	"exceed maximum block range",
	"ranges over 10000 blocks are not supported",
}

// IsTooManyResultsError reports whether err rejects a log query for its size.
// The second return value carries the provider message, which may contain a
// suggested block range.
func IsTooManyResultsError(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		errData := fmt.Sprintf("%v", dataErr.ErrorData())
		if tooManyResultsRe.MatchString(errData) {
			return true, errData
		}
	}

	msg := err.Error()
	if tooManyResultsRe.MatchString(msg) {
		return true, msg
	}

	lower := strings.ToLower(msg)
	for _, marker := range rangeLimitMarkers {
		if strings.Contains(lower, marker) {
			return true, msg
		}
	}

	return false, ""
}

// ParseSuggestedBlockRange extracts the range a provider suggests in its error, e.g.
// "Query returned more than 20000 results. Try with this block range [0x7dfd25, 0x7e0fcc]."
func ParseSuggestedBlockRange(msg string) (fromBlock, toBlock uint64, ok bool) {
	matches := blockRangeRe.FindStringSubmatch(msg)
	if len(matches) != 3 {
		return 0, 0, false
	}

	from, err := common.ParseUint64orHex(matches[1])
	if err != nil {
		return 0, 0, false
	}
	to, err := common.ParseUint64orHex(matches[2])
	if err != nil || to < from {
		return 0, 0, false
	}

	return from, to, true
}
