// Geobatch resolves batches of IP addresses against local MaxMind
// databases and exports the results as CSV or JSON.
//
// Idea is simple: you have a file with a few hundred thousand IP
// addresses and you want to know where they come from and who owns
// them. Lookups are local (databases are memory-mapped), so the whole
// thing is CPU bound and runs on a bounded pool of workers.
//
// Tool itself is organized into 4 logical parts:
//
// Batchlib
//
// batchlib is a core of the application: resolver, worker pool,
// collector of results. It knows nothing about files and flags.
//
// Providers
//
// Database implementations. At the moment it is MaxMind: GeoLite2 or
// GeoIP2 city database plus optional ASN database.
//
// Sources and exporters
//
// Input side (addresses from the command line and from the file) and
// output side (CSV and JSON writers, atomic output files).
//
// Geobatch
//
// A main package itself wires everything together and provides CLI.
package main
