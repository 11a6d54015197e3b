// Package digester computes SHA-1 file digests for provenance records.
// A Digester is injected into the finalizer: SHA1 hashes in process,
// Fixed returns a placeholder without touching the filesystem, and
// Command delegates to the platform checksum tool (sha1sum or fciv.exe).
package digester
