package pointer

// penChunkSize is the number of slots per arena chunk.
const penChunkSize = 16

// penHandle addresses a slot in a penArena. The generation makes handles to
// freed slots detectable after the slot is reused.
type penHandle struct {
	index uint32
	gen   uint32
}

type penSlot struct {
	gen  uint32
	live bool
	pen  penState
}

// penArena stores pen records in fixed-size chunks. Chunks are never moved
// or reallocated, so a *penState stays valid while the arena grows; only
// the outer chunk table is resized.
type penArena struct {
	chunks []*[penChunkSize]penSlot
	free   []uint32
	used   uint32
}

func (a *penArena) slot(i uint32) *penSlot {
	return &a.chunks[i/penChunkSize][i%penChunkSize]
}

// alloc returns a cleared live slot, reusing freed slots first.
func (a *penArena) alloc() (penHandle, *penState) {
	var i uint32
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		if a.used%penChunkSize == 0 {
			a.chunks = append(a.chunks, new([penChunkSize]penSlot))
		}
		i = a.used
		a.used++
	}
	s := a.slot(i)
	s.live = true
	s.pen = penState{}
	return penHandle{index: i, gen: s.gen}, &s.pen
}

// get returns the pen for h, or nil if h is stale.
func (a *penArena) get(h penHandle) *penState {
	if h.index >= a.used {
		return nil
	}
	s := a.slot(h.index)
	if !s.live || s.gen != h.gen {
		return nil
	}
	return &s.pen
}

// release frees h's slot. Outstanding handles to it go stale.
func (a *penArena) release(h penHandle) {
	if a.get(h) == nil {
		return
	}
	s := a.slot(h.index)
	s.live = false
	s.gen++
	s.pen = penState{}
	a.free = append(a.free, h.index)
}

func (a *penArena) reset() {
	*a = penArena{}
}
