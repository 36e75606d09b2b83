// Package render lays math layout trees out on a grid of terminal cells.
//
// Every node is measured as a box: a width and height in cells, a baseline
// row and the origin of each child relative to the box. Racks align their
// children on the baseline; fractions stack numerator, bar and denominator;
// grids hide their gray row and column unless the cursor is inside them.
//
// Cells implements Metrics, which the cursor uses for vertical moves and
// caret geometry, and draws boxes onto any Canvas. A tcell.Screen is a
// Canvas, and so is the in-memory Sheet used by tests:
//
//	sheet := render.NewSheet(40, 5)
//	cells := render.NewCells()
//	cells.Draw(sheet, s, root, render.Point{}, render.Frame{Cursor: arena.NoNode})
//	fmt.Print(sheet)
package render
