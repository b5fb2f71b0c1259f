package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-sitebuilder/internal/catalog"
	"github.com/goliatone/go-sitebuilder/internal/document"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/persistence"
	"github.com/goliatone/go-sitebuilder/website"
)

// Session is the editor of one user. It is the single mutator of the user's
// current website; every mutation is persisted before it becomes visible.
type Session struct {
	registry *Registry
	userID   string

	mu       sync.Mutex
	loaded   bool
	site     website.Website
	hasSite  bool
	ui       uiState
	panelSeq uint64
	stopAnim func() bool
}

func newSession(registry *Registry, userID string) *Session {
	return &Session{
		registry: registry,
		userID:   userID,
		ui:       uiState{regenerating: make(map[string]bool)},
	}
}

// UserID returns the owner of the session.
func (s *Session) UserID() string { return s.userID }

func (s *Session) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	r := s.registry
	site, err := r.store.LoadWebsite(ctx, s.userID)
	switch {
	case err == nil:
		s.site, s.hasSite = site, true
	case persistence.IsNotFound(err):
		s.hasSite = false
	case errors.Is(err, persistence.ErrSnapshotCorrupt):
		r.logger.Warn("editor.snapshot.corrupt", "user_id", s.userID, "error", err)
		if regenErr := s.generateLocked(ctx); regenErr != nil {
			r.logger.Error("editor.snapshot.regenerate_failed", "user_id", s.userID, "error", regenErr)
			s.hasSite = false
		}
	default:
		return err
	}
	s.loaded = true
	return nil
}

// State returns a snapshot of the UI state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.snapshot(s.hasSite)
}

// Website returns a copy of the current website.
func (s *Session) Website() (website.Website, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasSite {
		return website.Website{}, false
	}
	return s.site.Clone(), true
}

func (s *Session) stopTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopAnim != nil {
		s.stopAnim()
		s.stopAnim = nil
	}
}

// commitLocked persists next and makes it the current website, then upserts
// its project summary. A failed summary upsert is logged; the saved snapshot
// stays current.
func (s *Session) commitLocked(ctx context.Context, next website.Website, action string) error {
	r := s.registry
	if err := r.store.SaveWebsite(ctx, s.userID, next); err != nil {
		return err
	}
	s.site, s.hasSite = next, true
	summary := website.Summarize(next, website.ProjectDraft, r.now().UTC())
	if _, err := r.store.UpsertRecentProject(ctx, s.userID, summary); err != nil {
		r.logger.Warn("editor.recent_projects.upsert_failed", "user_id", s.userID, "action", action, "error", err)
	}
	r.logger.Debug("editor.commit", "user_id", s.userID, "action", action, "blocks", len(next.Blocks))
	return nil
}

func (s *Session) profile(ctx context.Context, site website.Website) website.BusinessProfile {
	profile, err := s.registry.store.LoadProfile(ctx, s.userID)
	if err == nil {
		return profile
	}
	return website.BusinessProfile{
		Name:     site.BusinessName,
		Type:     site.BusinessType,
		Location: site.Location,
	}
}

// Generate builds a new website from the stored business profile, replaces
// the current one and marks onboarding complete.
func (s *Session) Generate(ctx context.Context) (website.Website, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.generateLocked(ctx); err != nil {
		return website.Website{}, err
	}
	s.loaded = true
	return s.site.Clone(), nil
}

func (s *Session) generateLocked(ctx context.Context) error {
	r := s.registry
	if r.generator == nil {
		return ErrGeneratorRequired
	}
	profile, err := r.store.LoadProfile(ctx, s.userID)
	if err != nil {
		if persistence.IsNotFound(err) {
			return ErrProfileRequired
		}
		return err
	}

	site, err := r.generator.Generate(ctx, profile)
	if err != nil {
		return &AlertError{Message: alertGenerate, Err: err}
	}
	if err := s.commitLocked(ctx, site, "generate"); err != nil {
		return err
	}
	if err := r.store.SetOnboardingCompleted(ctx, s.userID, true); err != nil {
		r.logger.Warn("editor.onboarding.flag_failed", "user_id", s.userID, "error", err)
	}
	s.ui.reset()
	s.panelSeq++
	r.logger.Info("editor.website.generated", "user_id", s.userID, "website_id", site.ID)
	return nil
}

// HandleEvent applies a UI interaction. While preview mode is active every
// event except toggle-preview is ignored.
func (s *Session) HandleEvent(evt Event) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if evt.Type != EventTogglePreview && s.ui.previewMode {
		return s.ui.snapshot(s.hasSite), nil
	}

	switch evt.Type {
	case EventTogglePreview:
		s.ui.previewMode = !s.ui.previewMode
		if s.ui.previewMode {
			s.ui.reset()
			s.panelSeq++
		}
	case EventClickBackground:
		s.ui.reset()
		s.panelSeq++
	case EventClickBlock:
		if !s.site.HasBlock(evt.BlockID) {
			break
		}
		s.ui.selectedBlockID = evt.BlockID
		if s.ui.menu != nil && s.ui.menu.BlockID != evt.BlockID {
			s.ui.menu = nil
		}
	case EventDoubleClickBlock:
		if !s.site.HasBlock(evt.BlockID) {
			break
		}
		x, y := ClampMenu(evt.X, evt.Y, evt.ViewportWidth, evt.ViewportHeight)
		s.ui.selectedBlockID = evt.BlockID
		s.ui.menu = &FloatingMenu{BlockID: evt.BlockID, X: x, Y: y}
	case EventClickElement:
		kind, field, err := elementPanel(evt.Element, evt.Field)
		if err != nil {
			return s.ui.snapshot(s.hasSite), err
		}
		if !s.site.HasBlock(evt.BlockID) {
			break
		}
		s.ui.selectedBlockID = evt.BlockID
		s.openPanelLocked(Panel{Kind: kind, BlockID: evt.BlockID, Field: field})
	case EventOpenAddSection:
		s.openPanelLocked(Panel{Kind: PanelAddSection, AfterID: evt.BlockID})
	case EventClosePanel:
		s.closePanelLocked()
	case EventDoubleClickText:
		if !s.site.HasBlock(evt.BlockID) || !website.IsContentField(evt.Field) {
			break
		}
		s.ui.inlineEdit = InlineEditKey(evt.BlockID, evt.Field)
	case EventBlurText:
		if evt.Field == "" || s.ui.inlineEdit == InlineEditKey(evt.BlockID, evt.Field) {
			s.ui.inlineEdit = ""
		}
	default:
		return s.ui.snapshot(s.hasSite), fmt.Errorf("%w: %q", ErrUnknownEvent, evt.Type)
	}
	return s.ui.snapshot(s.hasSite), nil
}

// openPanelLocked closes whatever panel is open and opens next. A request for
// the same kind while its entry animation runs is ignored.
func (s *Session) openPanelLocked(next Panel) {
	if s.ui.transitioning && s.ui.panel != nil && s.ui.panel.Kind == next.Kind {
		return
	}
	s.closePanelLocked()

	s.ui.panel = &next
	s.ui.menu = nil
	s.ui.transitioning = true
	s.panelSeq++

	seq := s.panelSeq
	if s.stopAnim != nil {
		s.stopAnim()
	}
	s.stopAnim = s.registry.timer(s.registry.transition, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.panelSeq == seq {
			s.ui.transitioning = false
		}
	})
}

func (s *Session) closePanelLocked() {
	if s.ui.panel == nil {
		return
	}
	s.ui.panel = nil
	s.ui.transitioning = false
	s.panelSeq++
}

// editableLocked returns the current website when edits are allowed.
func (s *Session) editableLocked() (website.Website, error) {
	if !s.hasSite {
		return website.Website{}, ErrNoWebsite
	}
	if s.ui.previewMode {
		return website.Website{}, ErrPreviewMode
	}
	return s.site, nil
}

// UpdateContent sets one content field of a block. A missing block is a no-op.
func (s *Session) UpdateContent(ctx context.Context, blockID, field string, value any) (website.Website, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.editableLocked()
	if err != nil {
		return website.Website{}, err
	}
	if !current.HasBlock(blockID) {
		return current.Clone(), nil
	}
	next, err := document.UpdateBlockContent(current, blockID, field, value)
	if err != nil {
		return current.Clone(), err
	}
	if err := s.commitLocked(ctx, next, "update-content"); err != nil {
		return current.Clone(), err
	}
	return next.Clone(), nil
}

// UpdateStyles merges patch into a block's styles.
func (s *Session) UpdateStyles(ctx context.Context, blockID string, patch website.Styles) (website.Website, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.editableLocked()
	if err != nil {
		return website.Website{}, err
	}
	if !current.HasBlock(blockID) {
		return current.Clone(), nil
	}
	next := document.UpdateBlockStyle(current, blockID, patch)
	if err := s.commitLocked(ctx, next, "update-styles"); err != nil {
		return current.Clone(), err
	}
	return next.Clone(), nil
}

// Move swaps a block with its neighbour and hides the floating menu.
func (s *Session) Move(ctx context.Context, blockID string, direction document.Direction) (website.Website, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.editableLocked()
	if err != nil {
		return website.Website{}, err
	}
	s.ui.menu = nil
	if !current.HasBlock(blockID) {
		return current.Clone(), nil
	}
	next := document.MoveBlock(current, blockID, direction)
	if err := s.commitLocked(ctx, next, "move"); err != nil {
		return current.Clone(), err
	}
	return next.Clone(), nil
}

// Delete removes a block and clears every UI reference to it.
func (s *Session) Delete(ctx context.Context, blockID string) (website.Website, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.editableLocked()
	if err != nil {
		return website.Website{}, err
	}
	s.ui.menu = nil
	if !current.HasBlock(blockID) {
		return current.Clone(), nil
	}
	next := document.RemoveBlock(current, blockID)
	if err := s.commitLocked(ctx, next, "delete"); err != nil {
		return current.Clone(), err
	}
	s.ui.forget(blockID)
	return next.Clone(), nil
}

// AddSection creates a catalog section for the business and inserts it after
// afterID, or at the end. The add-section panel is closed on success.
func (s *Session) AddSection(ctx context.Context, sectionID, afterID string) (website.Website, error) {
	r := s.registry
	blockType, err := catalog.MapSectionToBlockType(sectionID)
	if err != nil {
		return website.Website{}, err
	}
	styles, err := catalog.CreateDefaultStyles(sectionID)
	if err != nil {
		return website.Website{}, err
	}

	s.mu.Lock()
	current, err := s.editableLocked()
	s.mu.Unlock()
	if err != nil {
		return website.Website{}, err
	}

	sections := r.sections
	if sections == nil {
		sections = catalog.New(r.images)
	}
	content, err := sections.CreateDefaultContent(ctx, sectionID, s.profile(ctx, current))
	if err != nil {
		r.logger.Error("editor.section.failed", "user_id", s.userID, "section", sectionID, "error", err)
		return website.Website{}, &AlertError{Message: alertSection, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err = s.editableLocked()
	if err != nil {
		return website.Website{}, err
	}
	block := website.ContentBlock{
		ID:      r.newID(),
		Type:    blockType,
		Content: content,
		Styles:  styles,
	}
	next := document.InsertBlock(current, block, strings.TrimSpace(afterID))
	if err := s.commitLocked(ctx, next, "add-section"); err != nil {
		return current.Clone(), err
	}
	if s.ui.panel != nil && s.ui.panel.Kind == PanelAddSection {
		s.closePanelLocked()
	}
	s.ui.selectedBlockID = block.ID
	logging.WithEditorContext(r.logger, s.userID, block.ID, "add-section").Info("editor.section.added", "section", sectionID)
	return next.Clone(), nil
}
