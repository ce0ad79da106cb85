// SPDX-License-Identifier: MPL-2.0

// Package catalog implements the durable tool catalog: a SQLite-backed
// store for tools, bundles, labels, usage counters, GitHub metadata, and
// the extraction/AI caches. A Store is a single-writer handle; callers
// that share one across goroutines must serialize access themselves.
package catalog
