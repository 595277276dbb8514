// Package source provides the places a raw configuration record can come
// from: an in-memory map, a snapshot of KEY=value pairs such as os.Environ(),
// a configuration file read through the loader, or a SQLite settings table.
//
// Every Source returns a fresh map from Load, so callers may modify it.
package source
