// Package cache stores computed layouts and artifacts between runs.
//
// [Cache] is a minimal byte store. [FileCache] backs the CLI,
// [RedisCache] backs servers sharing one cache, and [NullCache] disables
// caching. A [Keyer] derives content-addressed keys: the layout of a graph
// is stored under layout:<sha256 of graph hash and options>, so editing the
// project invalidates it without explicit eviction.
package cache
