// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity stores registered voters and candidates.

Store is the interface the rest of the system depends on; SQLStore
backs it with the voter and candidate tables, MemStore keeps it in
memory for tests and dev runs.

University IDs are one shared namespace: registering a candidate with
a voter's ID (or vice versa) fails with ErrDuplicateID. GetIdentity
resolves either role, so candidates log in and vote like anyone else.

HasVoted is the only field mutated after registration. The ledger
flips it under its commit lock via SetVoted; nothing else writes it.
*/
package identity
