package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeField(b *testing.B, terms int) *Field {
	b.Helper()
	src := strings.Repeat("frac{1}{x}+", terms) + "1"
	f, err := New(WithContent(src))
	if err != nil {
		b.Fatal(err)
	}
	return f
}

// ============================================================================
// Read Operation Benchmarks
// ============================================================================

func BenchmarkFieldString(b *testing.B) {
	f := setupLargeField(b, 200)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = f.String()
	}
}

func BenchmarkFieldCursorOrigin(b *testing.B) {
	f := setupLargeField(b, 200)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = f.CursorOrigin()
	}
}

// ============================================================================
// Write Operation Benchmarks
// ============================================================================

func BenchmarkFieldInsertText(b *testing.B) {
	f := setupLargeField(b, 200)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := f.InsertText("x"); err != nil {
			b.Fatal(err)
		}
		if err := f.PerformBackspace(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFieldInsertTemplate(b *testing.B) {
	f := setupLargeField(b, 200)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := f.InsertTemplate("fraction"); err != nil {
			b.Fatal(err)
		}
		if err := f.Undo(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFieldMove(b *testing.B) {
	f := setupLargeField(b, 200)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := f.Move(Left, false); err != nil {
			b.Fatal(err)
		}
		if _, err := f.Move(Right, false); err != nil {
			b.Fatal(err)
		}
	}
}
