package fx

// Pool is a fixed-capacity FIFO of particles backed by a ring buffer.
// Iteration is oldest first. Pushing into a full pool overwrites the oldest
// slot, so the newest particle always survives.
type Pool struct {
	items []Particle
	head  int // slot of the oldest particle
	n     int
}

func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = 1
	}
	return &Pool{items: make([]Particle, capacity)}
}

func (p *Pool) Len() int { return p.n }
func (p *Pool) Cap() int { return len(p.items) }

// Push appends pt, evicting the oldest particle first when the pool is full.
// It reports whether an eviction happened.
func (p *Pool) Push(pt Particle) bool {
	if p.n < len(p.items) {
		p.items[(p.head+p.n)%len(p.items)] = pt
		p.n++
		return false
	}
	p.items[p.head] = pt
	p.head++
	if p.head >= len(p.items) {
		p.head = 0
	}
	return true
}

// At returns the i-th oldest particle. It panics when i is out of range.
func (p *Pool) At(i int) *Particle {
	if i < 0 || i >= p.n {
		panic("fx: pool index out of range")
	}
	return &p.items[(p.head+i)%len(p.items)]
}

// Each calls fn for every live particle, oldest first.
func (p *Pool) Each(fn func(*Particle)) {
	idx := p.head
	for i := 0; i < p.n; i++ {
		fn(&p.items[idx])
		idx++
		if idx >= len(p.items) {
			idx = 0
		}
	}
}

func (p *Pool) Reset() {
	p.head = 0
	p.n = 0
}
