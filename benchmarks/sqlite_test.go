package benchmarks

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/envokin/pkg/envokin/source"
)

// BenchmarkSQLite_Set measures writing one setting.
func BenchmarkSQLite_Set(b *testing.B) {
	store, cleanup := createSQLiteSource(b)
	defer cleanup()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Set(ctx, fmt.Sprintf("KEY_%03d", i%100), "value")
	}
}

// BenchmarkSQLite_Load measures reading a 100-row settings table.
func BenchmarkSQLite_Load(b *testing.B) {
	store, cleanup := createSQLiteSource(b)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		_ = store.Set(ctx, fmt.Sprintf("KEY_%03d", i), "value")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Load(ctx)
	}
}

func createSQLiteSource(b *testing.B) (*source.SQLiteSource, func()) {
	b.Helper()
	store, err := source.NewSQLite(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	return store, func() { store.Close() }
}
