package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/buffer"
	"github.com/dshills/mathfield/internal/engine/layout"
)

func newCodec(t *testing.T, opts ...Option) *Codec {
	t.Helper()
	c, err := NewCodec(opts...)
	require.NoError(t, err)
	return c
}

func mustState(t *testing.T, src string) buffer.State {
	t.Helper()
	b, err := buffer.NewBufferFromString(src)
	require.NoError(t, err)
	return b.State()
}

func TestStateRoundTrip(t *testing.T) {
	c := newCodec(t)
	st := mustState(t, "1+frac{2|}{sqrt{3}}")

	data, err := c.EncodeState(st)
	require.NoError(t, err)

	got, err := c.DecodeState(data)
	require.NoError(t, err)
	if diff := cmp.Diff(st, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	b := buffer.NewBuffer()
	require.NoError(t, b.Restore(got))
	assert.Equal(t, "1+frac{2|}{sqrt{3}}", b.String())
}

func TestEncodingIsDeterministic(t *testing.T) {
	c := newCodec(t)
	a, err := c.EncodeState(mustState(t, "x+|y"))
	require.NoError(t, err)
	b, err := c.EncodeState(mustState(t, "x+|y"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodeStateErrors(t *testing.T) {
	c := newCodec(t)
	clip, err := c.EncodeTree(layout.Text("12"))
	require.NoError(t, err)
	future, err := c.encMode.Marshal(document{Version: Version + 1, Kind: KindState, State: &buffer.State{}})
	require.NoError(t, err)
	noState, err := c.encMode.Marshal(document{Version: Version, Kind: KindState})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"garbage", []byte{0xff, 0x00}, ErrMalformed},
		{"empty", nil, ErrMalformed},
		{"clip", clip, ErrMalformed},
		{"future version", future, ErrUnsupportedVersion},
		{"no state", noState, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DecodeState(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeStateLimit(t *testing.T) {
	data, err := newCodec(t).EncodeState(mustState(t, "12345|"))
	require.NoError(t, err)

	_, err = newCodec(t, WithMaxBlocks(8)).DecodeState(data)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestTreeRoundTrip(t *testing.T) {
	c := newCodec(t)
	tree := layout.Rack(layout.Frac(layout.Text("1"), layout.Text("x")), layout.CodePoint('+'))

	data, err := c.EncodeTree(tree)
	require.NoError(t, err)

	got, err := c.DecodeTree(data)
	require.NoError(t, err)
	assert.Equal(t, tree, got)
}

func TestDecodeTreeRejectsInvalidTrees(t *testing.T) {
	c := newCodec(t)
	encode := func(blocks []arena.Block) []byte {
		data, err := c.encMode.Marshal(document{Version: Version, Kind: KindClip, Clip: blocks})
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name   string
		blocks []arena.Block
	}{
		{"empty", nil},
		{"code point root", layout.CodePoint('1').Blocks()},
		{"trailing blocks", append(layout.Text("1").Blocks(), layout.Rack()...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DecodeTree(encode(tt.blocks))
			assert.ErrorIs(t, err, ErrInvalidTree)
		})
	}
}
