package rpc

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/pkg/config"
	pkgrpc "github.com/goran-ethernal/ChainPaywall/pkg/rpc"
)

var _ pkgrpc.EthClient = (*Client)(nil)

// Client wraps the Ethereum RPC client. Every call except subscriptions is
// retried with exponential backoff according to the chain retry settings.
type Client struct {
	eth   *ethclient.Client
	retry *config.RetryConfig
	log   *logger.Logger
}

// NewClient dials the given endpoint. Websocket endpoints support log subscriptions.
func NewClient(ctx context.Context, endpoint string, retry *config.RetryConfig, log *logger.Logger) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return &Client{
		eth:   ethclient.NewClient(rpcClient),
		retry: retry,
		log:   log.WithComponent(common.ComponentRPC),
	}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// GetLogs retrieves logs matching the given filter query.
// "Too many results" errors are returned unchanged so the caller can split the range.
func (c *Client) GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log
	err := c.call(ctx, "eth_getLogs", func() error {
		var err error
		logs, err = c.eth.FilterLogs(ctx, query)
		return err
	})

	return logs, err
}

func (c *Client) GetLatestBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.header(ctx, "latest", nil)
}

func (c *Client) GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.header(ctx, "finalized", big.NewInt(int64(rpc.FinalizedBlockNumber)))
}

func (c *Client) GetSafeBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.header(ctx, "safe", big.NewInt(int64(rpc.SafeBlockNumber)))
}

// SubscribeFilterLogs opens a log subscription. It is not retried; the watcher
// falls back to polling when the subscription cannot be established.
func (c *Client) SubscribeFilterLogs(
	ctx context.Context,
	query ethereum.FilterQuery,
	ch chan<- types.Log,
) (ethereum.Subscription, error) {
	RPCMethodInc("eth_subscribe")

	sub, err := c.eth.SubscribeFilterLogs(ctx, query, ch)
	if err != nil {
		RPCMethodError("eth_subscribe", errorType(err))
		return nil, err
	}

	return sub, nil
}

func (c *Client) header(ctx context.Context, tag string, number *big.Int) (*types.Header, error) {
	var header *types.Header
	err := c.call(ctx, "eth_getBlockByNumber", func() error {
		var err error
		header, err = c.eth.HeaderByNumber(ctx, number)
		return err
	})
	if err != nil {
		c.log.Debugw("failed to fetch block header", "tag", tag, "error", err)
		return nil, err
	}

	return header, nil
}

// call runs fn under the retry policy and records request metrics.
func (c *Client) call(ctx context.Context, method string, fn func() error) error {
	start := time.Now()
	RPCMethodInc(method)

	err := retryWithBackoff(ctx, c.retry, method, fn)

	RPCMethodDuration(method, time.Since(start))
	if err != nil {
		RPCMethodError(method, errorType(err))
	}

	return err
}

func errorType(err error) string {
	if tooMany, _ := IsTooManyResultsError(err); tooMany {
		return "too_many_results"
	}
	if retryableError(err) {
		return "transient"
	}

	return "other"
}
