// Package batchlib resolves batches of IP addresses against a local
// geolocation database.
//
// batchlib is the core of geobatch. The rest of the application is a thin
// CLI wrapper: it opens databases, reads flags and decides where to put
// the output.
//
// The pipeline is AddressSource -> WorkerPool -> Collector. A source
// yields AddressEntry values in input order, a WorkerPool fans them out
// to a bounded set of workers which run a Resolver against a shared
// read-only Database, and a Collector restores the input order. Workers
// finish in any order; ResultSet is always sorted by the input index.
//
// Per-address problems (garbage input, addresses absent from the
// database, database read errors) never stop a batch. They are carried
// as LookupFailure values in the result set.
package batchlib
