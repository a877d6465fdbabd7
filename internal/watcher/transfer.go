package watcher

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// TransferTopic is the topic of the ERC-20 Transfer(address,address,uint256) event.
var TransferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

var errNotTransfer = errors.New("log is not an ERC-20 transfer")

// Transfer is a decoded ERC-20 Transfer event.
type Transfer struct {
	From  common.Address
	To    common.Address
	Value *big.Int

	TxHash      common.Hash
	BlockNumber uint64
	LogIndex    uint
}

// ParseTransfer decodes a Transfer log with indexed from and to addresses.
func ParseTransfer(log types.Log) (*Transfer, error) {
	if len(log.Topics) != 3 || log.Topics[0] != TransferTopic {
		return nil, errNotTransfer
	}
	if len(log.Data) != common.HashLength {
		return nil, fmt.Errorf("%w: unexpected data length %d", errNotTransfer, len(log.Data))
	}

	return &Transfer{
		From:        common.BytesToAddress(log.Topics[1].Bytes()),
		To:          common.BytesToAddress(log.Topics[2].Bytes()),
		Value:       new(big.Int).SetBytes(log.Data),
		TxHash:      log.TxHash,
		BlockNumber: log.BlockNumber,
		LogIndex:    log.Index,
	}, nil
}

// addressTopic left-pads an address to a 32 byte topic.
func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}
