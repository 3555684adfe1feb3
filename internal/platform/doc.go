// Package platform contains OS integration and external tooling glue: directory and
// file helpers, tool lookup, URL classification, playlist listing and reveal in the
// system file manager.
package platform
