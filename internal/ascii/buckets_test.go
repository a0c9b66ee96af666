package ascii

import (
	"testing"
)

type dot struct {
	opacity float64
}

func (d dot) Alpha() float64 { return d.opacity }

func TestNewBucketsStyles(t *testing.T) {
	base := RGB{12, 34, 56}
	b := NewBuckets(base, 4)

	for k := 0; k < OpacityLevels; k++ {
		want := Fill{RGB: base, Alpha: float64(k) / 50}
		if b.Styles[k] != want {
			t.Errorf("slot %d: expected %v, got %v", k, want, b.Styles[k])
		}
		if len(b.Indices[k]) != 4 {
			t.Errorf("slot %d: expected capacity 4, got %d", k, len(b.Indices[k]))
		}
	}

	if got := b.Styles[25].String(); got != "rgba(12, 34, 56, 0.5)" {
		t.Errorf("unexpected style string %q", got)
	}
}

func TestFillBucketsPartition(t *testing.T) {
	src := []dot{{0}, {-0.2}, {0.01}, {0.5}, {0.51}, {1}, {1.7}, {0.009}, {0.5}}
	b := NewBuckets(RGB{}, 1)
	FillBuckets(b, src)

	seen := make(map[int32]int)
	for k := 0; k < OpacityLevels; k++ {
		if int(b.Counts[k]) > len(b.Indices[k]) {
			t.Fatalf("slot %d: count %d exceeds backing length %d", k, b.Counts[k], len(b.Indices[k]))
		}
		for _, i := range b.Bucket(k) {
			seen[i]++
			if want := Level(src[i].opacity); want != k {
				t.Errorf("element %d in slot %d, expected slot %d", i, k, want)
			}
		}
	}

	for i, d := range src {
		n := seen[int32(i)]
		if d.opacity <= 0 && n != 0 {
			t.Errorf("element %d with opacity %f should not be bucketed", i, d.opacity)
		}
		if d.opacity > 0 && n != 1 {
			t.Errorf("element %d bucketed %d times, expected once", i, n)
		}
	}

	if b.Counts[50] != 2 {
		t.Errorf("expected opacities >= 0.99 clamped into slot 50, got %d", b.Counts[50])
	}
	if b.Counts[0] != 1 {
		t.Errorf("expected opacity 0.009 to round into slot 0, got %d", b.Counts[0])
	}
}

func TestFillBucketsGrowAndReset(t *testing.T) {
	src := make([]dot, 100)
	for i := range src {
		src[i].opacity = 0.3
	}

	b := NewBuckets(RGB{}, 0)
	FillBuckets(b, src)
	if b.Counts[15] != 100 {
		t.Fatalf("expected 100 entries in slot 15, got %d", b.Counts[15])
	}
	grown := len(b.Indices[15])

	for i := range src {
		src[i].opacity = 0
	}
	src[3].opacity = 0.3
	FillBuckets(b, src)

	if b.Counts[15] != 1 {
		t.Errorf("expected counts reset between fills, got %d", b.Counts[15])
	}
	if len(b.Indices[15]) != grown {
		t.Errorf("bucket storage shrank from %d to %d", grown, len(b.Indices[15]))
	}
	if b.Bucket(15)[0] != 3 {
		t.Errorf("expected index 3, got %d", b.Bucket(15)[0])
	}
}

func TestFillBucketsFuncExcludes(t *testing.T) {
	src := []dot{{0.2}, {0.4}, {0.6}}
	b := NewBuckets(RGB{}, 2)
	FillBucketsFunc(b, src, func(d *dot) float64 {
		if d.opacity > 0.5 {
			return 0
		}
		return d.opacity
	})

	total := 0
	for k := 0; k < OpacityLevels; k++ {
		total += int(b.Counts[k])
	}
	if total != 2 {
		t.Errorf("expected 2 bucketed elements, got %d", total)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		opacity float64
		want    int
	}{
		{0, 0},
		{-1, 0},
		{0.01, 1},
		{0.5, 25},
		{0.999, 50},
		{3, 50},
	}
	for _, tt := range tests {
		if got := Level(tt.opacity); got != tt.want {
			t.Errorf("Level(%f) = %d, want %d", tt.opacity, got, tt.want)
		}
	}
}
