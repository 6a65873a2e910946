// Package recordsort provides a generic, allocation-free comparator-driven
// sort with scratch bounded to O(log n) rather than sort.Slice's
// unspecified, allocating algorithm. internal/canonical is the only
// caller; every other ordering need in this module uses sort.Slice
// directly.
package recordsort

// Sort orders data in place using cmp as the total-order comparator:
// cmp(a, b) < 0 means a sorts before b, 0 means equal, > 0 means after.
// A non-strict comparator is tolerated (ties permitted); stability is the
// caller's responsibility via a total order that never ties between
// distinct records.
func Sort[T any](data []T, cmp func(a, b T) int) {
	if len(data) < 2 {
		return
	}
	depthLimit := 2 * bitLen(len(data))
	introsort(data, cmp, depthLimit)
}

func bitLen(n int) int {
	b := 0
	for n > 0 {
		b++
		n >>= 1
	}
	return b
}

func introsort[T any](data []T, cmp func(a, b T) int, depthLimit int) {
	for len(data) > 12 {
		if depthLimit == 0 {
			heapsort(data, cmp)
			return
		}
		depthLimit--
		p := partition(data, cmp)
		// Recurse into the smaller side, loop over the larger one, to
		// bound stack depth at O(log n) the way a textbook introsort does.
		if p < len(data)-p {
			introsort(data[:p], cmp, depthLimit)
			data = data[p+1:]
		} else {
			introsort(data[p+1:], cmp, depthLimit)
			data = data[:p]
		}
	}
	insertionSort(data, cmp)
}

func partition[T any](data []T, cmp func(a, b T) int) int {
	lo, hi := 0, len(data)-1
	mid := lo + (hi-lo)/2
	medianOfThree(data, cmp, lo, mid, hi)
	pivot := data[mid]
	data[mid], data[hi-1] = data[hi-1], data[mid]

	i := lo
	for j := lo; j < hi-1; j++ {
		if cmp(data[j], pivot) < 0 {
			data[i], data[j] = data[j], data[i]
			i++
		}
	}
	data[i], data[hi-1] = data[hi-1], data[i]
	return i
}

func medianOfThree[T any](data []T, cmp func(a, b T) int, lo, mid, hi int) {
	if cmp(data[mid], data[lo]) < 0 {
		data[mid], data[lo] = data[lo], data[mid]
	}
	if cmp(data[hi], data[lo]) < 0 {
		data[hi], data[lo] = data[lo], data[hi]
	}
	if cmp(data[hi], data[mid]) < 0 {
		data[hi], data[mid] = data[mid], data[hi]
	}
}

func insertionSort[T any](data []T, cmp func(a, b T) int) {
	for i := 1; i < len(data); i++ {
		for j := i; j > 0 && cmp(data[j], data[j-1]) < 0; j-- {
			data[j], data[j-1] = data[j-1], data[j]
		}
	}
}

func heapsort[T any](data []T, cmp func(a, b T) int) {
	n := len(data)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(data, cmp, i, n)
	}
	for i := n - 1; i > 0; i-- {
		data[0], data[i] = data[i], data[0]
		siftDown(data, cmp, 0, i)
	}
}

func siftDown[T any](data []T, cmp func(a, b T) int, root, n int) {
	for {
		largest := root
		left := 2*root + 1
		right := 2*root + 2
		if left < n && cmp(data[left], data[largest]) > 0 {
			largest = left
		}
		if right < n && cmp(data[right], data[largest]) > 0 {
			largest = right
		}
		if largest == root {
			return
		}
		data[root], data[largest] = data[largest], data[root]
		root = largest
	}
}
