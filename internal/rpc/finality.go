package rpc

import (
	"context"
	"fmt"

	pkgrpc "github.com/goran-ethernal/ChainPaywall/pkg/rpc"
)

// BlockFinality selects which chain head the watcher treats as settled.
type BlockFinality string

const (
	FinalityFinalized BlockFinality = "finalized"
	FinalitySafe      BlockFinality = "safe"
	FinalityLatest    BlockFinality = "latest"
)

// ParseBlockFinality parses a configured finality mode.
func ParseBlockFinality(s string) (BlockFinality, error) {
	switch f := BlockFinality(s); f {
	case FinalityFinalized, FinalitySafe, FinalityLatest:
		return f, nil
	default:
		return "", fmt.Errorf("invalid block finality: %s (must be one of: finalized, safe, latest)", s)
	}
}

// SettledHead returns the highest block number the watcher may scan.
// With FinalityLatest the head is moved back by lag blocks.
func SettledHead(ctx context.Context, client pkgrpc.EthClient, finality BlockFinality, lag uint64) (uint64, error) {
	switch finality {
	case FinalityFinalized:
		header, err := client.GetFinalizedBlockHeader(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get finalized block: %w", err)
		}
		return header.Number.Uint64(), nil

	case FinalitySafe:
		header, err := client.GetSafeBlockHeader(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get safe block: %w", err)
		}
		return header.Number.Uint64(), nil

	case FinalityLatest:
		header, err := client.GetLatestBlockHeader(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest block: %w", err)
		}
		head := header.Number.Uint64()
		if head < lag {
			return 0, nil
		}
		return head - lag, nil

	default:
		return 0, fmt.Errorf("unsupported block finality: %s", finality)
	}
}
