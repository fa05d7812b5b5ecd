/*
Package crypto contains the keys and signatures used to authenticate
transactions. Only ed25519 is supported.

A public key is turned into a timelock.Condition of the form
"sigs/ed25519/<pubkey>", whose address identifies the account.
*/
package crypto
