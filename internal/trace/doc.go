// Package trace records where a check run spends its time.
//
// Events are spans (begin/end pairs) and points, tagged with a Scope. The
// configured Level decides which scopes are emitted:
//
//	phase   run and per-phase spans (load, parse, bind, analyze)
//	detail  plus one span per file
//	debug   plus one point per analyzed match construct
//
// Tracers travel through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", 0)
//	defer sp.End("")
package trace
