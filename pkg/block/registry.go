package block

import "github.com/matzehuels/corblivar/pkg/errors"

// RefOriginID is the reserved ID of the reference-origin block.
const RefOriginID = "RBOD"

// Registry owns all blocks of a floorplanning run.
type Registry struct {
	blocks    []*Block
	byID      map[string]Handle
	refOrigin *Block
}

// NewRegistry returns an empty registry with a zero-size reference origin.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Handle),
		refOrigin: &Block{
			ID:     RefOriginID,
			Handle: RefOrigin,
			Kind:   KindReferenceOrigin,
			Placed: true,
		},
	}
}

// Add registers a copy of b and returns its handle. TSV islands are sized
// from their count and pitch on insertion. Empty and taken IDs fail with
// [errors.ErrCodeInvalidBenchmark].
func (r *Registry) Add(b Block) (Handle, error) {
	if b.ID == "" {
		return 0, errors.New(errors.ErrCodeInvalidBenchmark, "block ID must not be empty")
	}
	if _, ok := r.byID[b.ID]; ok || b.ID == RefOriginID {
		return 0, errors.New(errors.ErrCodeInvalidBenchmark, "duplicate block ID: %s", b.ID)
	}
	h := Handle(len(r.blocks))
	b.Handle = h
	b.SizeTSVIsland()
	if b.ARMin == 0 && b.ARMax == 0 {
		ar := b.Bounds.AspectRatio()
		b.ARMin, b.ARMax = ar, ar
	}
	b.Backup, b.Best = b.Bounds, b.Bounds
	r.blocks = append(r.blocks, &b)
	r.byID[b.ID] = h
	return h, nil
}

// Get returns the block for h. RefOrigin yields the reference origin.
func (r *Registry) Get(h Handle) *Block {
	if h == RefOrigin {
		return r.refOrigin
	}
	return r.blocks[h]
}

// Lookup finds a block by ID, including the reference origin.
func (r *Registry) Lookup(id string) (*Block, bool) {
	if id == RefOriginID {
		return r.refOrigin, true
	}
	h, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.blocks[h], true
}

// Len returns the number of registered blocks, excluding the reference origin.
func (r *Registry) Len() int { return len(r.blocks) }

// All returns the registered blocks in handle order.
func (r *Registry) All() []*Block { return r.blocks }

// RefOrigin returns the reference-origin block.
func (r *Registry) RefOrigin() *Block { return r.refOrigin }

// ResetPlaced clears the placed flag of every block ahead of a decode pass.
func (r *Registry) ResetPlaced() {
	for _, b := range r.blocks {
		b.Placed = false
	}
}

// ResetAlignment clears every block's alignment status.
func (r *Registry) ResetAlignment() {
	for _, b := range r.blocks {
		b.Alignment = AlignUndef
	}
}

// Clone returns a deep copy with independent geometry.
func (r *Registry) Clone() *Registry {
	out := &Registry{
		blocks:    make([]*Block, len(r.blocks)),
		byID:      make(map[string]Handle, len(r.byID)),
		refOrigin: new(Block),
	}
	*out.refOrigin = *r.refOrigin
	for i, b := range r.blocks {
		cp := *b
		out.blocks[i] = &cp
	}
	for id, h := range r.byID {
		out.byID[id] = h
	}
	return out
}
