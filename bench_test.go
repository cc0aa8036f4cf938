package parfill_test

import (
	"fmt"
	"testing"

	"github.com/parfill/parfill"
)

// work simulates a produce function with a nontrivial per-slot cost.
func work(i int) int {
	acc := i
	for k := 0; k < 512; k++ {
		acc = acc*31 + k
	}
	return acc
}

func BenchmarkFill(b *testing.B) {
	for _, n := range []int{1 << 8, 1 << 12, 1 << 16} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			dst := make([]int, n)
			b.ResetTimer()
			for b.Loop() {
				parfill.Fill(dst, work)
			}
		})
	}
}

func BenchmarkFillSequentialBaseline(b *testing.B) {
	for _, n := range []int{1 << 8, 1 << 12, 1 << 16} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			dst := make([]int, n)
			b.ResetTimer()
			for b.Loop() {
				for i := range dst {
					dst[i] = work(i)
				}
			}
		})
	}
}

func BenchmarkFillCheapProduce(b *testing.B) {
	// Near-zero produce cost stresses the fork-join overhead itself.
	dst := make([]int, 1<<16)
	b.ResetTimer()
	for b.Loop() {
		parfill.Fill(dst, func(i int) int { return i })
	}
}

func BenchmarkTryFill(b *testing.B) {
	dst := make([]int, 1<<12)
	b.ResetTimer()
	for b.Loop() {
		if err := parfill.TryFill(dst, func(i int) (int, error) { return work(i), nil }); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFillPoolExecutor(b *testing.B) {
	p := parfill.NewPool(4)
	defer p.Close()

	dst := make([]int, 1<<12)
	b.ResetTimer()
	for b.Loop() {
		parfill.Fill(dst, work, parfill.WithExecutor(p))
	}
}
