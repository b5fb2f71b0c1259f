// Package document implements the structural operations on a website.
//
// Every operation returns a new Website value and leaves its input untouched.
// Operations that reference a missing block id are no-ops.
package document

import (
	"errors"
	"strings"

	"github.com/goliatone/go-sitebuilder/website"
)

// Direction selects the neighbour a block is swapped with by MoveBlock.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

var ErrInvalidDirection = errors.New("document: direction must be up or down")

// ParseDirection normalises a user supplied direction.
func ParseDirection(value string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(value))) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	default:
		return "", ErrInvalidDirection
	}
}

// InsertBlock places block immediately after the block identified by afterID,
// or at the end when afterID is empty or unknown.
func InsertBlock(site website.Website, block website.ContentBlock, afterID string) website.Website {
	out := site.Clone()
	block = block.Clone()

	idx := -1
	if afterID != "" {
		idx = out.BlockIndex(afterID)
	}
	if idx < 0 {
		out.Blocks = append(out.Blocks, block)
		return out
	}

	blocks := make([]website.ContentBlock, 0, len(out.Blocks)+1)
	blocks = append(blocks, out.Blocks[:idx+1]...)
	blocks = append(blocks, block)
	blocks = append(blocks, out.Blocks[idx+1:]...)
	out.Blocks = blocks
	return out
}

// UpdateBlockContent sets a single content field on the target block. Unknown
// field names and values that do not fit the field are reported as errors;
// a missing block returns the input unchanged.
func UpdateBlockContent(site website.Website, blockID, field string, value any) (website.Website, error) {
	idx := site.BlockIndex(blockID)
	if idx < 0 {
		return site, nil
	}
	content, err := site.Blocks[idx].Content.With(field, value)
	if err != nil {
		return site, err
	}
	out := site.Clone()
	out.Blocks[idx].Content = content
	return out, nil
}

// ReplaceBlockContent swaps the entire content payload of the target block.
func ReplaceBlockContent(site website.Website, blockID string, content website.Content) website.Website {
	idx := site.BlockIndex(blockID)
	if idx < 0 {
		return site
	}
	out := site.Clone()
	out.Blocks[idx].Content = content.Clone()
	return out
}

// UpdateBlockStyle merges patch shallowly into the target block's styles.
func UpdateBlockStyle(site website.Website, blockID string, patch website.Styles) website.Website {
	idx := site.BlockIndex(blockID)
	if idx < 0 {
		return site
	}
	out := site.Clone()
	out.Blocks[idx].Styles = out.Blocks[idx].Styles.Merge(patch)
	return out
}

// MoveBlock swaps the target block with its neighbour in the given direction.
// Moving the first block up or the last block down changes nothing.
func MoveBlock(site website.Website, blockID string, direction Direction) website.Website {
	idx := site.BlockIndex(blockID)
	if idx < 0 {
		return site
	}
	target := idx
	switch direction {
	case Up:
		target = idx - 1
	case Down:
		target = idx + 1
	}
	if target == idx || target < 0 || target >= len(site.Blocks) {
		return site
	}
	out := site.Clone()
	out.Blocks[idx], out.Blocks[target] = out.Blocks[target], out.Blocks[idx]
	return out
}

// RemoveBlock filters the target block out of the website.
func RemoveBlock(site website.Website, blockID string) website.Website {
	idx := site.BlockIndex(blockID)
	if idx < 0 {
		return site
	}
	out := site.Clone()
	out.Blocks = append(out.Blocks[:idx], out.Blocks[idx+1:]...)
	return out
}
