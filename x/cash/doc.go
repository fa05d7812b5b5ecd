/*
Package cash is the ledger of the native asset: it keeps a wallet of coins
per address, moves coins between wallets and lets account owners send
coins with a SendMsg.

Every successful move is reported with a transfer event that carries the
sender, the recipient and the amount.
*/
package cash
