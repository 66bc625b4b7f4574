// Package wire provides low-level encoding and decoding primitives for
// the mxcodec binary format.
//
// The provided encoder and decoder are low level tools: they know how
// to write and read bytes of a given width in a given byte order, and
// how to grow an output buffer, but they do not know anything about
// tags, classes, or shapes. Those belong to the mxcodec package, which
// is built on top of this one.
package wire
