// Package trace records what the checker does while it runs: which files
// it visits, how many passes a file needed, which rules fired and which
// changesets were committed or rejected.
//
// Enable it from the command line:
//
//	phpsniff fix --trace=- --trace-level=pass src/
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: failures only
//   - LevelPass: run, file and pass boundaries
//   - LevelRule: plus one span per rule per pass
//   - LevelDebug: plus every changeset
//
// Tracers travel through the driver in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "pass", parent)
//	defer span.End("")
package trace
