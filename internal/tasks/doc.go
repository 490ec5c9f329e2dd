// Package tasks orchestrates batch operations against the photo library with real-time progress reporting.
//
// # Core Operations
//
// The [PublishEngine] interface defines three operations:
//
//  1. [PublishEngine.ExecuteImport] : Batch photo import
//     - Authorizes against the library exactly once per batch
//     - Imports each manifest entry strictly sequentially, in manifest order
//     - Best-effort restores album memberships and favorite status from a
//       prior version of the same logical photo
//     - Returns a per-photo outcome; one bad photo never aborts the batch
//
//  2. [PublishEngine.ExecuteDelete] : Batch asset deletion
//     - Authorizes once, then deletes the entire list as a single request
//     - All-or-nothing per the library's own deletion contract
//
//  3. [PublishEngine.LocateURL] : Deep-link resolution for a single asset
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for the CLI layer.
// Updates use select with default to prevent blocking.
//
// # Sequencing
//
// Entries within a batch are processed strictly sequentially. The photo
// library misbehaves under overlapping or rapidly repeated requests, so the
// engine additionally paces its calls with a rate limiter. The only retry
// anywhere is the bounded post-import verification poll that absorbs the
// library's eventual-consistency lag.
//
// # Implementation
//
// [PhotosEngine] implements [PublishEngine] with dependencies on:
//   - [library.AssetLibrary] : the narrow photo library capability surface
//   - [log.Logger] : the stderr diagnostic channel for best-effort warnings
package tasks
