// Package model defines the data shared by the fetcher, the batch converter and the
// window: platforms, persisted preferences, download results and per-file conversion
// records.
package model
