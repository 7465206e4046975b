// Package store implements the encrypted identity store.
//
// The store is a single JSON file holding, under an authenticated
// encryption envelope, the wallets (seed phrases and imported keys),
// network configuration, tracked tokens and the three active pointers.
//
// Unlock is the only operation that reads the file. It returns a
// Session handle; the handle is the proof of a successful unlock, and
// every read or mutation goes through it. Mutations replace the
// in-memory document and immediately re-encrypt and rewrite the whole
// file atomically.
//
// Two historical on-disk shapes are still readable: an envelope missing
// the networks/tokens fields (migrated in place on unlock) and a legacy
// plaintext document (sealed under the supplied password on first
// unlock, one-way).
package store
