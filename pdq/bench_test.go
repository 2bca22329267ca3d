package pdq

import (
	"fmt"
	"image"
	"math/rand"
	"testing"
)

// ─── hashing benchmarks ──────────────────────────────────────

func BenchmarkFromGray(b *testing.B) {
	sizes := []struct{ w, h int }{
		{64, 64},
		{512, 512},
		{1920, 1080},
	}
	for _, s := range sizes {
		buf := makeGrayBuf(s.w, s.h)
		b.Run(fmt.Sprintf("%dx%d", s.w, s.h), func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := FromGray(buf, s.w, s.h); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFromRGB(b *testing.B) {
	const w, h = 512, 512
	buf := makeRGBBuf(w, h)
	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := FromRGB(buf, w, h); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFromImage_NRGBA(b *testing.B) {
	const w, h = 512, 512
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = byte((i * 131) % 256)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := FromImage(img); err != nil {
			b.Fatal(err)
		}
	}
}

// ─── comparison and codec benchmarks ─────────────────────────

func BenchmarkHammingDistance(b *testing.B) {
	rng := rand.New(rand.NewSource(5))
	x, y := randomHash(rng), randomHash(rng)
	b.ReportAllocs()
	var sink int
	for i := 0; i < b.N; i++ {
		sink += x.HammingDistance(y)
	}
	_ = sink
}

func BenchmarkHex_RoundTrip(b *testing.B) {
	rng := rand.New(rand.NewSource(6))
	h := randomHash(rng)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := h.Hex()
		if _, err := FromHex(s); err != nil {
			b.Fatal(err)
		}
	}
}

// ─── parallel hashing ────────────────────────────────────────

func BenchmarkFromGray_Parallel(b *testing.B) {
	const w, h = 512, 512
	buf := makeGrayBuf(w, h)
	b.SetBytes(int64(len(buf)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, _, err := FromGray(buf, w, h); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
