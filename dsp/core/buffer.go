package core

// Sample is a floating-point audio sample type.
type Sample interface {
	~float32 | ~float64
}

// EnsureLen returns buf resliced to n, reallocating only when its capacity
// is too small. Contents are unspecified after a reallocation.
func EnsureLen[T Sample](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// CopyInto copies as much of src as fits into dst and returns the count.
func CopyInto(dst, src []float64) int {
	return copy(dst, src)
}

// ToFloat32 converts src into dst and returns the number of converted samples.
func ToFloat32(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i])
	}
	return n
}
