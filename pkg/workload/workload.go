// Package workload holds the kernels the bench daemon counts events over.
package workload

import (
	"fmt"
	"sync"
)

// Kernel is one measured unit of work.
type Kernel interface {
	Name() string
	Run() error
}

// Dot computes the dot product of two fixed vectors, optionally evicting the caches
// first. Element i of the vectors is i+1 and 1/(i+1), so the product is the vector
// length.
type Dot struct {
	a, b   []float64
	thrash int64

	result float64
	sink   uint64
}

// NewDot allocates vectors of size elements. thrash is the number of bytes to sweep
// before each run; zero disables the sweep.
func NewDot(size, thrash int64) (*Dot, error) {
	if size <= 0 {
		return nil, fmt.Errorf("dot size must be positive, got %d", size)
	}
	if thrash < 0 {
		return nil, fmt.Errorf("thrash size must not be negative, got %d", thrash)
	}
	d := &Dot{
		a:      make([]float64, size),
		b:      make([]float64, size),
		thrash: thrash,
	}
	for i := range d.a {
		d.a[i] = float64(i + 1)
		d.b[i] = 1 / float64(i+1)
	}
	return d, nil
}

func (d *Dot) Name() string {
	return fmt.Sprintf("dot/%d", len(d.a))
}

func (d *Dot) Run() error {
	if d.thrash > 0 {
		d.sink += ThrashCache(d.thrash)
	}
	d.result = dot(d.a, d.b)
	return nil
}

// Result returns the product computed by the last Run.
func (d *Dot) Result() float64 {
	return d.result
}

//go:noinline
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

var (
	thrashMu  sync.Mutex
	thrashBuf []byte
)

// ThrashCache writes and then reads size bytes of a shared buffer to push other data
// out of the caches. It returns the sum of the bytes read.
func ThrashCache(size int64) uint64 {
	if size <= 0 {
		return 0
	}
	thrashMu.Lock()
	defer thrashMu.Unlock()

	if int64(len(thrashBuf)) < size {
		thrashBuf = make([]byte, size)
	}
	buf := thrashBuf[:size]
	for i := range buf {
		buf[i] = byte(i)
	}
	var n uint64
	for _, b := range buf {
		n += uint64(b)
	}
	return n
}
