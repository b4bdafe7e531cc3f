package array

// No imports needed - algorithms are self-contained

// QuickSortThreshold defines the threshold below which insertion sort is used.
const QuickSortThreshold = 9

// swapElements swaps two elements.
func swapElements[T any](a, b *T) {
	temp := *a
	*a = *b
	*b = temp
}

// LessFunc is a function type for comparison operations.
type LessFunc[T any] func(a, b T) bool

// EqualFunc is a function type for equality operations.
type EqualFunc[T any] func(a, b T) bool

// QuickSort performs hybrid quicksort with insertion sort for small arrays.
func QuickSort[T any](arr ArrayInterface[T], less LessFunc[T]) {
	if arr.Size() < 2 {
		return
	}

	// Convert to slice for easier manipulation
	data := make([]T, arr.Size())
	for i := 0; i < arr.Size(); i++ {
		data[i] = arr.At(i)
	}

	// Perform quicksort on slice
	quickSortSlice(data, less)

	// Copy back to array
	for i := 0; i < arr.Size(); i++ {
		arr.Set(i, data[i])
	}
}

// quickSortSlice is the internal implementation of quicksort.
func quickSortSlice[T any](arr []T, less LessFunc[T]) {
	if len(arr) < 2 {
		return
	}

	type stackFrame struct {
		base  int
		limit int
	}

	stack := make([]stackFrame, 0, 80)
	base := 0
	limit := len(arr)

	for {
		length := limit - base

		if length > QuickSortThreshold {
			// Use quicksort for larger subarrays
			pivot := base + length/2
			swapElements(&arr[base], &arr[pivot])

			i := base + 1
			j := limit - 1

			// Ensure arr[j] <= arr[i] <= arr[base]
			if less(arr[j], arr[i]) {
				swapElements(&arr[i], &arr[j])
			}
			if less(arr[base], arr[i]) {
				swapElements(&arr[base], &arr[i])
			}
			if less(arr[j], arr[base]) {
				swapElements(&arr[j], &arr[base])
			}

			// Partition
			for {
				for i++; less(arr[i], arr[base]); i++ {
				}
				for j--; less(arr[base], arr[j]); j-- {
				}

				if i > j {
					break
				}

				swapElements(&arr[i], &arr[j])
			}

			swapElements(&arr[base], &arr[j])

			// Push the larger subarray onto stack
			if j-base > limit-i {
				stack = append(stack, stackFrame{base, j})
				base = i
			} else {
				stack = append(stack, stackFrame{i, limit})
				limit = j
			}
		} else {
			// Use insertion sort for small subarrays
			for i := base + 1; i < limit; i++ {
				j := i
				for j > base && less(arr[j], arr[j-1]) {
					swapElements(&arr[j], &arr[j-1])
					j--
				}
			}

			// Pop from stack
			if len(stack) > 0 {
				frame := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				base = frame.base
				limit = frame.limit
			} else {
				break
			}
		}
	}
}

// RemoveDuplicates removes duplicates from a sorted array.
// Returns the number of remaining elements.
func RemoveDuplicates[T any](arr ArrayInterface[T], equal EqualFunc[T]) int {
	if arr.Size() < 2 {
		return arr.Size()
	}

	j := 1
	for i := 1; i < arr.Size(); i++ {
		if !equal(arr.At(i), arr.At(i-1)) {
			arr.Set(j, arr.At(i))
			j++
		}
	}

	return j
}
