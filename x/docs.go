/*
Package x contains the extensions of the application.

Extensions implement common functionality (Handler, Decorator,
Initializer, query handlers) and are combined together by the app
package to construct the application.

  sigs    authenticates signed transactions and protects against replay
  utils   provides decorators shared by every message (savepoint, logging)
  cash    is the ledger: wallets, balances and coin transfers
  escrow  is the time locked wallet contract

Note that types in exported code will be prefixed by the package,
so follow standard go naming conventions and avoid stutter.
Use eg. `escrow.LockMsg` in place of `escrow.EscrowLockMsg`.
*/
package x
