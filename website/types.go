package website

// BlockType identifies the closed set of section variants a website can render.
type BlockType string

const (
	BlockHero         BlockType = "hero"
	BlockAbout        BlockType = "about"
	BlockServices     BlockType = "services"
	BlockFeatures     BlockType = "features"
	BlockTestimonials BlockType = "testimonials"
	BlockContact      BlockType = "contact"
	BlockCTA          BlockType = "cta"
	BlockGallery      BlockType = "gallery"
	BlockBannerGrid   BlockType = "banner-grid"
)

// BlockTypes lists every supported block type in render-friendly order.
func BlockTypes() []BlockType {
	return []BlockType{
		BlockHero,
		BlockAbout,
		BlockServices,
		BlockFeatures,
		BlockTestimonials,
		BlockContact,
		BlockCTA,
		BlockGallery,
		BlockBannerGrid,
	}
}

// IsValid reports whether the block type belongs to the supported set.
func (t BlockType) IsValid() bool {
	for _, known := range BlockTypes() {
		if t == known {
			return true
		}
	}
	return false
}

func (t BlockType) String() string { return string(t) }

// Website is the document edited by a user: ordered blocks plus the derived theme.
type Website struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	BusinessName string         `json:"businessName"`
	BusinessType string         `json:"businessType"`
	Location     string         `json:"location"`
	Theme        Theme          `json:"theme"`
	Blocks       []ContentBlock `json:"blocks"`
}

// ContentBlock is a single section of the generated page.
type ContentBlock struct {
	ID      string    `json:"id"`
	Type    BlockType `json:"type"`
	Content Content   `json:"content"`
	Styles  Styles    `json:"styles,omitempty"`
}

// Clone returns a copy of the block that shares no mutable state with the receiver.
func (b ContentBlock) Clone() ContentBlock {
	out := b
	out.Content = b.Content.Clone()
	out.Styles = b.Styles.Clone()
	return out
}

// Clone returns a deep copy of the website.
func (w Website) Clone() Website {
	out := w
	if w.Blocks != nil {
		out.Blocks = make([]ContentBlock, len(w.Blocks))
		for i, block := range w.Blocks {
			out.Blocks[i] = block.Clone()
		}
	}
	return out
}

// BlockIndex returns the position of the block with the given id, or -1.
func (w Website) BlockIndex(id string) int {
	for i, block := range w.Blocks {
		if block.ID == id {
			return i
		}
	}
	return -1
}

// Block returns the block with the given id.
func (w Website) Block(id string) (ContentBlock, bool) {
	idx := w.BlockIndex(id)
	if idx < 0 {
		return ContentBlock{}, false
	}
	return w.Blocks[idx], true
}

// HasBlock reports whether a block with the given id is present.
func (w Website) HasBlock(id string) bool {
	return w.BlockIndex(id) >= 0
}

// BlockIDs lists block ids in render order.
func (w Website) BlockIDs() []string {
	ids := make([]string, 0, len(w.Blocks))
	for _, block := range w.Blocks {
		ids = append(ids, block.ID)
	}
	return ids
}

// Styles holds free-form presentational properties for a block.
type Styles map[string]string

// Clone copies the style map.
func (s Styles) Clone() Styles {
	if s == nil {
		return nil
	}
	out := make(Styles, len(s))
	for key, value := range s {
		out[key] = value
	}
	return out
}

// Merge returns a new map with patch applied shallowly over the receiver.
func (s Styles) Merge(patch Styles) Styles {
	out := make(Styles, len(s)+len(patch))
	for key, value := range s {
		out[key] = value
	}
	for key, value := range patch {
		out[key] = value
	}
	return out
}
