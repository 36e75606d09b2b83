package arena

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrArenaExhausted indicates an edit needed more blocks than the arena holds.
var ErrArenaExhausted = errors.New("arena exhausted")

// exhausted is the value carried by the panic raised on overflow.
type exhausted struct {
	need int
	max  int
}

// Guard runs fn and converts an arena overflow raised inside it into an
// error wrapping ErrArenaExhausted. Any other panic is propagated.
func Guard(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(exhausted)
		if !ok {
			panic(r)
		}
		Log.WithFields(logrus.Fields{
			"need": e.need,
			"max":  e.max,
		}).Debug("arena exhausted, edit aborted")
		err = fmt.Errorf("%w: need %d blocks, capacity %d", ErrArenaExhausted, e.need, e.max)
	}()
	fn()
	return nil
}

// EnsureFits raises the overflow Guard recovers when need blocks exceed max.
// Edits run on scratch stacks larger than their buffer use it to check the
// tree they are about to commit.
func EnsureFits(need, max int) {
	if need > max {
		panic(exhausted{need: need, max: max})
	}
}
