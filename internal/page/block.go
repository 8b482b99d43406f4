// Package page is the Page Document model: an ordered list of typed blocks
// whose content shape is fixed by the block type.
package page

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidBlock = errors.New("invalid block")

type Block struct {
	ID       string
	Type     Kind
	Content  Content
	Position int
}

// NewBlock derives Type from content.
func NewBlock(id string, content Content, position int) Block {
	return Block{ID: id, Type: content.Kind(), Content: content, Position: position}
}

type wireBlock struct {
	ID       string          `json:"id"`
	Type     Kind            `json:"type"`
	Content  json.RawMessage `json:"content"`
	Position int             `json:"position"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	if b.Content == nil {
		return nil, fmt.Errorf("%w: block %s has no content", ErrInvalidBlock, b.ID)
	}
	if b.Content.Kind() != b.Type {
		return nil, fmt.Errorf("%w: block %s declares %s but holds %s", ErrInvalidBlock, b.ID, b.Type, b.Content.Kind())
	}
	raw, err := json.Marshal(b.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireBlock{ID: b.ID, Type: b.Type, Content: raw, Position: b.Position})
}

// UnmarshalJSON decodes content into the concrete type named by "type".
func (b *Block) UnmarshalJSON(data []byte) error {
	var w wireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	content := newContent(w.Type)
	if content == nil {
		return fmt.Errorf("%w: unknown block type %q", ErrInvalidBlock, w.Type)
	}
	if len(w.Content) > 0 && string(w.Content) != "null" {
		if err := json.Unmarshal(w.Content, content); err != nil {
			return fmt.Errorf("failed to decode %s content: %w", w.Type, err)
		}
	}
	*b = Block{ID: w.ID, Type: w.Type, Content: content, Position: w.Position}
	return nil
}

func (b Block) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidBlock)
	}
	if b.Content == nil || b.Content.Kind() != b.Type {
		return fmt.Errorf("%w: block %s content does not match type %s", ErrInvalidBlock, b.ID, b.Type)
	}
	if err := b.Content.Validate(); err != nil {
		return fmt.Errorf("block %s (%s): %w", b.ID, b.Type, err)
	}
	return nil
}
