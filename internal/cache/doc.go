// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache keeps recently served transaction pages in Redis.
//
// Entries are keyed by user, a per-user generation counter and a hash of the
// list query. Writes for a user bump the generation, which makes every page
// cached for that user unreachable at once; stale entries expire by TTL.
package cache
