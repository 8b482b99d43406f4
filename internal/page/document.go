package page

import (
	"encoding/json"
	"fmt"
	"time"
)

type Document struct {
	Title       string    `json:"title"`
	Blocks      []Block   `json:"blocks"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Validate checks id uniqueness, position/index agreement and every
// block's content.
func (d *Document) Validate() error {
	return ValidateBlocks(d.Blocks)
}

func ValidateBlocks(blocks []Block) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: document has no blocks", ErrInvalidBlock)
	}
	seen := make(map[string]bool, len(blocks))
	for i, b := range blocks {
		if seen[b.ID] {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidBlock, b.ID)
		}
		seen[b.ID] = true
		if b.Position != i {
			return fmt.Errorf("%w: block %s at index %d has position %d", ErrInvalidBlock, b.ID, i, b.Position)
		}
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Renumber makes every position equal its index.
func (d *Document) Renumber() {
	for i := range d.Blocks {
		d.Blocks[i].Position = i
	}
}

func (d *Document) Append(b Block) error {
	for _, existing := range d.Blocks {
		if existing.ID == b.ID {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidBlock, b.ID)
		}
	}
	b.Position = len(d.Blocks)
	d.Blocks = append(d.Blocks, b)
	return nil
}

// Remove deletes the block with id and reports whether it existed.
func (d *Document) Remove(id string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.Blocks = append(d.Blocks[:i], d.Blocks[i+1:]...)
	d.Renumber()
	return true
}

// Move relocates the block with id to index to (clamped).
func (d *Document) Move(id string, to int) bool {
	from := d.index(id)
	if from < 0 {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to >= len(d.Blocks) {
		to = len(d.Blocks) - 1
	}
	b := d.Blocks[from]
	d.Blocks = append(d.Blocks[:from], d.Blocks[from+1:]...)
	d.Blocks = append(d.Blocks[:to], append([]Block{b}, d.Blocks[to:]...)...)
	d.Renumber()
	return true
}

func (d *Document) Find(id string) (Block, bool) {
	if i := d.index(id); i >= 0 {
		return d.Blocks[i], true
	}
	return Block{}, false
}

func (d *Document) index(id string) int {
	for i, b := range d.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Record maps each block type to its content; later blocks of the same
// type win.
func Record(blocks []Block) map[Kind]Content {
	out := make(map[Kind]Content, len(blocks))
	for _, b := range blocks {
		out[b.Type] = b.Content
	}
	return out
}

// CloneBlocks deep-copies blocks through their JSON form.
func CloneBlocks(blocks []Block) ([]Block, error) {
	raw, err := json.Marshal(blocks)
	if err != nil {
		return nil, err
	}
	var out []Block
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
