package timeline

import "sync/atomic"

// IDAllocator hands out item ids from a monotonic counter, encoded as a
// base-26 lowercase letter sequence: 1 -> "a", 26 -> "z", 27 -> "aa".
//
// Ids are never reused. Share one allocator between registries whose
// programs are rendered together so ids stay unique across them.
//
// Thread-safety: IDAllocator is safe for concurrent use (atomic operations).
type IDAllocator struct {
	seq atomic.Int64
}

// NewIDAllocator creates an allocator whose first id is "a".
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// NewIDAllocatorAt creates an allocator resuming after start.
func NewIDAllocatorAt(start int64) *IDAllocator {
	a := &IDAllocator{}
	a.seq.Store(start)
	return a
}

// Next returns the next id.
func (a *IDAllocator) Next() string {
	return Base26(a.seq.Add(1))
}

// Current returns the last allocated counter value without incrementing.
func (a *IDAllocator) Current() int64 {
	return a.seq.Load()
}

// Base26 encodes n (by magnitude) as bijective base-26 using 'a'..'z'.
// Zero encodes as the empty string.
func Base26(n int64) string {
	if n < 0 {
		n = -n
	}
	var buf []byte
	for n > 0 {
		remain := n % 26
		if remain == 0 {
			remain = 26
		}
		buf = append(buf, byte('a'+remain-1))
		n = (n - remain) / 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}
