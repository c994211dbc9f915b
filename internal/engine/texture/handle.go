package texture

// Handle is a shared reference to a GPU texture. The creator holds the
// first reference; each additional owner calls Retain and every owner
// calls Release once. The last Release frees the texture.
type Handle struct {
	id      uint32
	width   int
	height  int
	refs    int
	release func(id uint32)
}

// NewHandle wraps texture id with a reference count of one. release is
// called with id when the count drops to zero; it may be nil.
func NewHandle(id uint32, width, height int, release func(id uint32)) *Handle {
	return &Handle{id: id, width: width, height: height, refs: 1, release: release}
}

// ID returns the GL texture name.
func (h *Handle) ID() uint32 {
	return h.id
}

// Size returns the texture dimensions in pixels.
func (h *Handle) Size() (width, height int) {
	return h.width, h.height
}

// Retain adds an owner and returns h for chaining.
func (h *Handle) Retain() *Handle {
	if h.refs <= 0 {
		panic("texture: Retain on released handle")
	}
	h.refs++
	return h
}

// Release drops one owner. It reports whether this call freed the texture.
func (h *Handle) Release() bool {
	if h.refs <= 0 {
		panic("texture: Release called more times than Retain")
	}
	h.refs--
	if h.refs > 0 {
		return false
	}
	if h.release != nil {
		h.release(h.id)
	}
	return true
}

// Refs returns the current owner count.
func (h *Handle) Refs() int {
	return h.refs
}
