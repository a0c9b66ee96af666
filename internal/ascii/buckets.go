package ascii

// OpacityLevels is the number of quantised opacity slots (0..50).
const OpacityLevels = 51

// Translucent is implemented by any drawable element with an opacity.
type Translucent interface {
	Alpha() float64
}

// Buckets groups element indices by quantised opacity. Slot k holds the
// elements drawn with Styles[k], which is the base colour at alpha k/50.
// Index slices grow by doubling and never shrink; Counts[k] never exceeds
// len(Indices[k]).
type Buckets struct {
	Indices [OpacityLevels][]int32
	Counts  [OpacityLevels]int32
	Styles  [OpacityLevels]Fill
}

func NewBuckets(base RGB, capacity int) *Buckets {
	if capacity < 0 {
		capacity = 0
	}
	b := &Buckets{}
	for k := 0; k < OpacityLevels; k++ {
		b.Indices[k] = make([]int32, capacity)
		b.Styles[k] = Fill{RGB: base, Alpha: float64(k) / 50}
	}
	return b
}

// Level quantises an opacity to its bucket slot, clamped to [0,50].
func Level(opacity float64) int {
	key := int(opacity*50 + 0.5)
	if key < 0 {
		return 0
	}
	if key >= OpacityLevels {
		return OpacityLevels - 1
	}
	return key
}

// Bucket returns the indices filled into slot k for the current frame. The
// slice aliases internal storage and is only valid until the next fill.
func (b *Buckets) Bucket(k int) []int32 {
	return b.Indices[k][:b.Counts[k]]
}

func (b *Buckets) reset() {
	for k := range b.Counts {
		b.Counts[k] = 0
	}
}

func (b *Buckets) add(key int, i int) {
	count := b.Counts[key]
	idx := b.Indices[key]
	if int(count) >= len(idx) {
		n := len(idx) * 2
		if n == 0 {
			n = 16
		}
		bigger := make([]int32, n)
		copy(bigger, idx)
		b.Indices[key] = bigger
	}
	b.Indices[key][count] = int32(i)
	b.Counts[key] = count + 1
}

// FillBuckets classifies every element with positive opacity. Elements at or
// below zero are skipped and therefore never drawn.
func FillBuckets[T Translucent](b *Buckets, src []T) {
	b.reset()
	for i := range src {
		o := src[i].Alpha()
		if o <= 0 {
			continue
		}
		b.add(Level(o), i)
	}
}

// FillBucketsFunc is FillBuckets for elements whose opacity is read through
// an accessor, which also lets a caller partition one slice across several
// bucket tables by returning 0 for elements it wants excluded.
func FillBucketsFunc[T any](b *Buckets, src []T, alpha func(*T) float64) {
	b.reset()
	for i := range src {
		o := alpha(&src[i])
		if o <= 0 {
			continue
		}
		b.add(Level(o), i)
	}
}

// Paint draws every bucketed element bucket-major, switching the fill style
// once per non-empty slot.
func (b *Buckets) Paint(ctx Context, draw func(i int32)) {
	for k := 0; k < OpacityLevels; k++ {
		count := b.Counts[k]
		if count == 0 {
			continue
		}
		ctx.SetFillStyle(b.Styles[k])
		for _, i := range b.Indices[k][:count] {
			draw(i)
		}
	}
}
