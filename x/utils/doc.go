/*
Package utils provides decorators that every application stacks in front
of its handlers: Recovery turns panics into errors, Logging reports every
transaction with its duration and Savepoint makes a transaction atomic by
running it on a cache wrap of the store.
*/
package utils
