package codec

import "errors"

var (
	// ErrMalformed indicates data that is not a CBOR document of this package.
	ErrMalformed = errors.New("malformed document")

	// ErrUnsupportedVersion indicates a document written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported document version")

	// ErrInvalidTree indicates a clip whose blocks are not a layout tree.
	ErrInvalidTree = errors.New("invalid layout tree")
)
