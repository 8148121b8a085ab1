/*
Package trace gives every radlrgo sub-package a uniformly-keyed tracer,
mirroring the per-package tracer() helper found throughout gorgo
(lr/earley, lr/glr, lr/scanner): rather than each package hand-rolling its
own call to tracing.Select, they call trace.For with their own name.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package trace

import "github.com/npillmayer/schuko/tracing"

// For returns the tracer for a radlrgo sub-package, keyed as "radlr.<pkg>".
// Call it once per package as:
//
//	func tracer() tracing.Trace { return trace.For("pdb") }
func For(pkg string) tracing.Trace {
	return tracing.Select("radlr." + pkg)
}
