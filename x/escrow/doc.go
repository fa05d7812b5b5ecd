/*
Package escrow implements a single-asset time-locked wallet.

The contract is deployed at genesis with an owner and the ticker of the
native asset. The owner can lock an amount once, on behalf of a
beneficiary, until a block height. From that height on the beneficiary
can withdraw the whole amount. A contract that was withdrawn from cannot
be locked again.

	Unlocked --lock--> Locked --withdraw--> Withdrawn

The state machine in machine.go is independent of the store and the
transaction format: the caller, the block height and the ledger used to
move coins are passed to every operation.
*/
package escrow
