// Package mxcodec implements a self-describing binary serialization
// codec for heterogeneous, possibly-nested numeric values: real and
// complex arrays of ten element widths, booleans, 8- and 16-bit
// character strings, sparse vectors, heterogeneous cells, and named
// record ("struct") arrays.
//
// [Encode] walks a [Value] and produces a buffer made of a two-byte
// signature, a recursive tagged encoding of the value, and 1-4 bytes
// of trailing padding. [Decode] recovers an equivalent Value from such
// a buffer with no outside information. [DecodeInto] instead takes a
// pointer to a caller-supplied template Value, which fixes the
// expected class and shape category of every slot, and overwrites it
// in place with the overlaid result: struct fields present in the
// buffer but absent from the template are skipped, while fields
// present in the template but absent from the buffer are carried
// through untouched with their original values, as long as at least
// one field name matches.
//
// The format is symmetric in byte order: [Encode] can write
// little-endian, big-endian, or the host's native order, and the
// decoder detects which was used by inspecting the two signature
// bytes, with no out-of-band hint required.
//
// mxcodec is purely synchronous: every exported function runs to
// completion or returns an error, with no suspension points. Distinct
// calls share no mutable state and may run concurrently, except that
// [DecodeInto] mutates the Value tree reachable from its template
// argument and so must not be given a template that's in use by
// another concurrent call.
package mxcodec
