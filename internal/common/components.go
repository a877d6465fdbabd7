package common

const (
	ComponentWatcher     = "watcher"
	ComponentAddressBook = "address-book"
	ComponentLedger      = "ledger"
	ComponentStore       = "store"
	ComponentCheckpoint  = "checkpoint"
	ComponentRPC         = "rpc"
	ComponentIdentity    = "identity"
	ComponentAPI         = "api"
	ComponentMaintenance = "maintenance"
)

var AllComponents = map[string]struct{}{
	ComponentWatcher:     {},
	ComponentAddressBook: {},
	ComponentLedger:      {},
	ComponentStore:       {},
	ComponentCheckpoint:  {},
	ComponentRPC:         {},
	ComponentIdentity:    {},
	ComponentAPI:         {},
	ComponentMaintenance: {},
}
