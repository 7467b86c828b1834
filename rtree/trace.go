package rtree

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'rtree'
func tracer() tracing.Trace {
	return tracing.Select("rtree")
}
