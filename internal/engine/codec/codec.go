package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/buffer"
	"github.com/dshills/mathfield/internal/engine/layout"
)

// Version is the document format written by this package.
const Version = 1

// Kind tells what a document holds.
type Kind uint8

const (
	KindState Kind = iota + 1
	KindClip
)

type document struct {
	Version int           `cbor:"1,keyasint"`
	Kind    Kind          `cbor:"2,keyasint"`
	State   *buffer.State `cbor:"3,keyasint,omitempty"`
	Clip    []arena.Block `cbor:"4,keyasint,omitempty"`
}

// Codec encodes and decodes documents.
type Codec struct {
	encMode   cbor.EncMode
	decMode   cbor.DecMode
	maxBlocks int
}

// Option configures a Codec.
type Option func(*Codec)

// WithMaxBlocks rejects documents holding more than n blocks.
func WithMaxBlocks(n int) Option {
	return func(c *Codec) {
		c.maxBlocks = n
	}
}

// NewCodec creates a codec.
func NewCodec(opts ...Option) (*Codec, error) {
	c := &Codec{maxBlocks: arena.DefaultMaxBlocks}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	c.encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}
	c.decMode, err = decOpts.DecMode()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// EncodeState encodes a buffer state.
func (c *Codec) EncodeState(st buffer.State) ([]byte, error) {
	return c.encMode.Marshal(document{Version: Version, Kind: KindState, State: &st})
}

// DecodeState decodes a buffer state. The state is checked against the tree
// by buffer.Restore, not here.
func (c *Codec) DecodeState(data []byte) (buffer.State, error) {
	doc, err := c.decode(data, KindState)
	if err != nil {
		return buffer.State{}, err
	}
	if doc.State == nil {
		return buffer.State{}, fmt.Errorf("%w: no state", ErrMalformed)
	}
	if len(doc.State.Blocks) > c.maxBlocks {
		return buffer.State{}, fmt.Errorf("%w: %d blocks, limit %d", ErrMalformed, len(doc.State.Blocks), c.maxBlocks)
	}
	return *doc.State, nil
}

// EncodeTree encodes a layout tree as a clip.
func (c *Codec) EncodeTree(t layout.Tree) ([]byte, error) {
	return c.encMode.Marshal(document{Version: Version, Kind: KindClip, Clip: t.Blocks()})
}

// DecodeTree decodes a clip. The tree is a valid rack.
func (c *Codec) DecodeTree(data []byte) (layout.Tree, error) {
	doc, err := c.decode(data, KindClip)
	if err != nil {
		return nil, err
	}
	if len(doc.Clip) == 0 {
		return nil, fmt.Errorf("%w: empty clip", ErrInvalidTree)
	}
	if len(doc.Clip) > c.maxBlocks {
		return nil, fmt.Errorf("%w: %d blocks, limit %d", ErrMalformed, len(doc.Clip), c.maxBlocks)
	}

	s := arena.NewStack(arena.WithMaxBlocks(len(doc.Clip)))
	s.Load(doc.Clip)
	if err := layout.Validate(s, 0); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTree, err)
	}
	if size := s.TreeSize(0); size != s.Len() {
		return nil, fmt.Errorf("%w: %d blocks after the tree", ErrInvalidTree, s.Len()-size)
	}
	return layout.Tree(doc.Clip), nil
}

func (c *Codec) decode(data []byte, kind Kind) (document, error) {
	var doc document
	if err := c.decMode.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if doc.Version < 1 || doc.Version > Version {
		return document{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if doc.Kind != kind {
		return document{}, fmt.Errorf("%w: kind %d, want %d", ErrMalformed, doc.Kind, kind)
	}
	return doc, nil
}
