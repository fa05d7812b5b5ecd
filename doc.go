/*
Package timelock defines the interfaces shared by every part of the time
locked wallet application: storage, transactions, handlers, results and
events. It also contains helpers to work with the context, addresses and
ABCI responses.

Extensions (see the x/ directory) build on top of those interfaces. The
escrow state machine lives in x/escrow, the ledger it moves coins with lives
in x/cash and the ABCI shell that glues them together lives in app.
*/
package timelock
