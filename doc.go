// Package scalegen generates native type declarations from runtime metadata
// snapshots: a registry of numerically identified type definitions plus the
// calls and events of each runtime module.
//
// The generators live in package codegen, the descriptor model and snapshot
// codecs in package metadata. This package holds the error taxonomy shared by
// both.
package scalegen
