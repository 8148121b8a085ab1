/*
Package config reads the handful of environment knobs the parser-
construction core consults (§6.4). Values are read through
github.com/npillmayer/schuko/gconf, the same global configuration
facility gorgo itself reads booleans from (see
lr/earley/parsetree.go's "panic-on-parser-stuck" check).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import "github.com/npillmayer/schuko/gconf"

// Keys under which the core's config knobs are registered with gconf.
const (
	KeyAllowOccludingSymbols  = "radlr-allow-occluding-symbols"
	KeyEnableBreadcrumb       = "radlr-enable-breadcrumb-parsing"
	KeyOcclusionTrackingMode  = "radlr-occlusion-tracking-mode"
)

// Config is a snapshot of the core's configuration, taken once per build so
// that a graph build is not affected by concurrent mutation of the global
// gconf store (§5: graph builds run independently and must not share
// mutable state beyond the interner).
type Config struct {
	// AllowOccludingSymbols, when false, prevents the graph builder from
	// merging occluding terminal groups (§4.3.1); ambiguity that would
	// otherwise be absorbed by the merge surfaces as an error instead.
	AllowOccludingSymbols bool

	// EnableBreadcrumbParsing selects breadcrumb-shift semantics for peek
	// leaves (§4.3.3, §9 open question). The graph builder does not read
	// it and builds no Breadcrumb* states.
	EnableBreadcrumbParsing bool

	// OcclusionTrackingMode marks the current build as a preliminary
	// occlusion-tracking pass; while set, the graph builder does not report
	// unmerged occlusion conflicts as ambiguity errors.
	OcclusionTrackingMode bool
}

// Default returns the zero-value Config: no occlusion merging, no
// breadcrumb parsing, not in occlusion-tracking mode. Scanners always
// force AllowOccludingSymbols on regardless of this default (§4.3.1).
func Default() Config {
	return Config{}
}

// FromGlobal snapshots the process-wide gconf store into a Config. Intended
// for use by cmd/radlrc and tests that want to honor flags/config files
// without threading a Config through every call.
func FromGlobal() Config {
	return Config{
		AllowOccludingSymbols:   gconf.GetBool(KeyAllowOccludingSymbols),
		EnableBreadcrumbParsing: gconf.GetBool(KeyEnableBreadcrumb),
		OcclusionTrackingMode:   gconf.GetBool(KeyOcclusionTrackingMode),
	}
}
