// Package editor runs the per-user block editor: panel selection, preview
// mode and every mutation of the current website.
package editor

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PanelKind identifies one of the mutually exclusive side panels.
type PanelKind string

const (
	PanelAddSection     PanelKind = "add-section"
	PanelImageSettings  PanelKind = "image-settings"
	PanelButtonSettings PanelKind = "button-settings"
	PanelTextImage      PanelKind = "text-image"
	PanelBannerGrid     PanelKind = "banner-grid"
	PanelEdit           PanelKind = "edit"
)

// EventType names a user interaction.
type EventType string

const (
	EventClickBlock       EventType = "click-block"
	EventDoubleClickBlock EventType = "double-click-block"
	EventClickElement     EventType = "click-element"
	EventClickBackground  EventType = "click-background"
	EventTogglePreview    EventType = "toggle-preview"
	EventDoubleClickText  EventType = "double-click-text"
	EventBlurText         EventType = "blur-text"
	EventOpenAddSection   EventType = "open-add-section"
	EventClosePanel       EventType = "close-panel"
)

// Element names an editable part of a block.
type Element string

const (
	ElementImage      Element = "image"
	ElementButton     Element = "button"
	ElementBackground Element = "background"
	ElementText       Element = "text"
	ElementTextImage  Element = "text-image"
	ElementBannerGrid Element = "banner-grid"
	ElementEdit       Element = "edit"
)

var (
	ErrUnknownEvent   = errors.New("editor: unknown event")
	ErrUnknownElement = errors.New("editor: unknown element")
)

// Event is a user interaction delivered to a session.
type Event struct {
	Type           EventType `json:"type"`
	BlockID        string    `json:"blockId,omitempty"`
	Element        Element   `json:"element,omitempty"`
	Field          string    `json:"field,omitempty"`
	X              int       `json:"x,omitempty"`
	Y              int       `json:"y,omitempty"`
	ViewportWidth  int       `json:"viewportWidth,omitempty"`
	ViewportHeight int       `json:"viewportHeight,omitempty"`
}

// Panel is the open side panel and the block or field it edits.
type Panel struct {
	Kind    PanelKind `json:"kind"`
	BlockID string    `json:"blockId,omitempty"`
	Field   string    `json:"field,omitempty"`
	AfterID string    `json:"afterId,omitempty"`
}

// FloatingMenu is the quick action menu revealed by a double click.
type FloatingMenu struct {
	BlockID string `json:"blockId"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// State is a snapshot of the editor UI state.
type State struct {
	PreviewMode     bool          `json:"previewMode"`
	SelectedBlockID string        `json:"selectedBlockId,omitempty"`
	Panel           *Panel        `json:"panel,omitempty"`
	FloatingMenu    *FloatingMenu `json:"floatingMenu,omitempty"`
	InlineEdit      string        `json:"inlineEdit,omitempty"`
	IsTransitioning bool          `json:"isTransitioning"`
	Regenerating    []string      `json:"regenerating"`
	HasWebsite      bool          `json:"hasWebsite"`
}

// Idle reports whether nothing is selected and no panel or menu is open.
func (s State) Idle() bool {
	return s.SelectedBlockID == "" && s.Panel == nil && s.FloatingMenu == nil
}

const (
	menuWidth  = 220
	menuHeight = 200
	menuMargin = 8
)

// ClampMenu keeps a menu anchored at (x, y) inside the viewport. A zero
// viewport dimension leaves that axis unclamped.
func ClampMenu(x, y, viewportWidth, viewportHeight int) (int, int) {
	if viewportWidth > 0 {
		x = clamp(x, menuMargin, viewportWidth-menuWidth-menuMargin)
	}
	if viewportHeight > 0 {
		y = clamp(y, menuMargin, viewportHeight-menuHeight-menuMargin)
	}
	return x, y
}

func clamp(value, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// InlineEditKey identifies a text field being edited in place.
func InlineEditKey(blockID, field string) string {
	return blockID + "-" + field
}

func elementPanel(element Element, field string) (PanelKind, string, error) {
	switch element {
	case ElementImage:
		return PanelImageSettings, defaultField(field, "image"), nil
	case ElementBackground:
		return PanelImageSettings, defaultField(field, "backgroundImage"), nil
	case ElementButton:
		return PanelButtonSettings, defaultField(field, "buttonText"), nil
	case ElementTextImage:
		return PanelTextImage, field, nil
	case ElementBannerGrid:
		return PanelBannerGrid, field, nil
	case ElementText, ElementEdit:
		return PanelEdit, field, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownElement, element)
	}
}

func defaultField(field, fallback string) string {
	if strings.TrimSpace(field) == "" {
		return fallback
	}
	return field
}

// uiState is the mutable form of State owned by a session.
type uiState struct {
	previewMode     bool
	selectedBlockID string
	panel           *Panel
	menu            *FloatingMenu
	inlineEdit      string
	transitioning   bool
	regenerating    map[string]bool
}

func (u *uiState) snapshot(hasWebsite bool) State {
	out := State{
		PreviewMode:     u.previewMode,
		SelectedBlockID: u.selectedBlockID,
		InlineEdit:      u.inlineEdit,
		IsTransitioning: u.transitioning,
		Regenerating:    make([]string, 0, len(u.regenerating)),
		HasWebsite:      hasWebsite,
	}
	if u.panel != nil {
		panel := *u.panel
		out.Panel = &panel
	}
	if u.menu != nil {
		menu := *u.menu
		out.FloatingMenu = &menu
	}
	for key := range u.regenerating {
		out.Regenerating = append(out.Regenerating, key)
	}
	sort.Strings(out.Regenerating)
	return out
}

func (u *uiState) reset() {
	u.selectedBlockID = ""
	u.panel = nil
	u.menu = nil
	u.inlineEdit = ""
	u.transitioning = false
}

// forget drops every reference to a removed block.
func (u *uiState) forget(blockID string) {
	if u.selectedBlockID == blockID {
		u.selectedBlockID = ""
	}
	if u.menu != nil && u.menu.BlockID == blockID {
		u.menu = nil
	}
	if u.panel != nil && u.panel.BlockID == blockID {
		u.panel = nil
	}
	if strings.HasPrefix(u.inlineEdit, blockID+"-") {
		u.inlineEdit = ""
	}
}
