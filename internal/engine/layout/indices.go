package layout

// Sentinel child indices returned by the motion tables.
const (
	// OutsideIndex designates the node itself rather than one of its
	// children.
	OutsideIndex = -1
	// CantMoveIndex means the node refuses the move.
	CantMoveIndex = -2
)

// Child indices per node type.
const (
	FractionNumerator   = 0
	FractionDenominator = 1

	TwoRowsUpper = 0
	TwoRowsLower = 1

	RootRadicand = 0
	RootIndex    = 1

	PtN = 0
	PtK = 1

	ParametricVariable = 0
	ParametricLower    = 1
	ParametricUpper    = 2
	ParametricArgument = 3

	IntegralDifferential = 0
	IntegralLower        = 1
	IntegralUpper        = 2
	IntegralIntegrand    = 3

	DiffVariable = 0
	DiffAbscissa = 1
	DiffOrder    = 2
	DiffDerivand = 3

	ListSequenceFunction = 0
	ListSequenceVariable = 1
	ListSequenceUpper    = 2
)

// Direction is a cursor move direction.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// IsHorizontal reports whether d is Left or Right.
func (d Direction) IsHorizontal() bool { return d == Left || d == Right }

// IsVertical reports whether d is Up or Down.
func (d Direction) IsVertical() bool { return d == Up || d == Down }

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// PositionInLayout tells where the cursor sits in the rack it is leaving
// during a vertical move.
type PositionInLayout uint8

const (
	AtLeft PositionInLayout = iota
	AtMiddle
	AtRight
)
