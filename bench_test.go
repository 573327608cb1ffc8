package tart

import (
	"fmt"
	"testing"
)

// Benchmarks sized off original_source/benches/art_bench.rs's shapes
// (sequential u64 keys, random byte-string keys), matching the corpus
// convention of shipping a testing.B suite alongside the library
// (gaissmai/bart/bench_test.go).

func BenchmarkInsertSequentialUint64(b *testing.B) {
	tree := New[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree, _, _, _ = tree.Insert(FixedKeyFromUint64(uint64(i), 16), i, uint64(i+1))
	}
}

func BenchmarkInsertInPlaceSequentialUint64(b *testing.B) {
	tree := New[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree, _, _, _ = tree.InsertInPlace(FixedKeyFromUint64(uint64(i), 16), i, uint64(i+1))
	}
}

func BenchmarkGetSequentialUint64(b *testing.B) {
	tree := New[int]()
	const n = 100000
	for i := 0; i < n; i++ {
		tree, _, _, _ = tree.Insert(FixedKeyFromUint64(uint64(i), 16), i, uint64(i+1))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Get(FixedKeyFromUint64(uint64(i%n), 16))
	}
}

func BenchmarkDeleteSequentialUint64(b *testing.B) {
	const n = 100000
	base := New[int]()
	for i := 0; i < n; i++ {
		base, _, _, _ = base.Insert(FixedKeyFromUint64(uint64(i), 16), i, uint64(i+1))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		base.Remove(FixedKeyFromUint64(uint64(i%n), 16))
	}
}

func BenchmarkInsertRandomByteStrings(b *testing.B) {
	tree := New[int]()
	keys := make([]Key, b.N)
	for i := range keys {
		keys[i] = KeyFromString(fmt.Sprintf("k-%x-%d", i*2654435761, i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree, _, _, _ = tree.Insert(keys[i], i, uint64(i+1))
	}
}

func BenchmarkIterate(b *testing.B) {
	tree := New[int]()
	const n = 10000
	for i := 0; i < n; i++ {
		tree, _, _, _ = tree.Insert(FixedKeyFromUint64(uint64(i), 16), i, uint64(i+1))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := tree.Iter()
		for {
			if _, ok := it.Next(); !ok {
				break
			}
		}
	}
}
