// Package core defines the shared types used across the corelog pipeline.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log event on its way to a formatter, and the Field
// type for structured key-value pairs.
//
// Entry objects are pooled via sync.Pool. An Entry only lives for the
// duration of a single synchronous format-and-dispatch pass (async sinks
// queue fully formatted lines, never entries), so recycling is always
// safe. Callers get an Entry with GetEntry and return it with PutEntry
// once every sink has been handed the formatted line.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
