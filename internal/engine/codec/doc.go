// Package codec serializes formula buffers.
//
// Documents are CBOR maps with integer keys, encoded with the core
// deterministic options so that equal buffers encode to equal bytes:
//
//	c, _ := codec.NewCodec()
//	data, _ := c.EncodeState(buf.State())
//	st, _ := c.DecodeState(data)
//	buf.Restore(st)
//
// A clip holds a bare layout tree with no cursor, as copied to a clipboard.
// Decoding validates the tree so that a clip can be inserted as is.
package codec
