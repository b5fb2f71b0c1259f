package editor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/catalog"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/persistence"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
	"github.com/goliatone/go-sitebuilder/website"
)

// DefaultTransitionDelay is how long a panel entry animation is reported.
const DefaultTransitionDelay = 300 * time.Millisecond

// Generator builds a complete website from a business profile.
type Generator interface {
	Generate(ctx context.Context, profile website.BusinessProfile) (website.Website, error)
}

// ContentRegenerator rewrites block text.
type ContentRegenerator interface {
	RegenerateField(ctx context.Context, field string, profile website.BusinessProfile) (string, error)
	RegenerateBlockContent(ctx context.Context, block website.ContentBlock, profile website.BusinessProfile) (website.Content, error)
}

// SectionSource builds the default content of catalog sections.
type SectionSource interface {
	CreateDefaultContent(ctx context.Context, sectionID string, profile website.BusinessProfile) (website.Content, error)
}

// TimerFunc schedules fn after d and returns a function that cancels it. fn
// must run on its own goroutine, never synchronously.
type TimerFunc func(d time.Duration, fn func()) (stop func() bool)

func realTimer(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Option configures the registry.
type Option func(*Registry)

// WithGenerator sets the website generator used for new and corrupt websites.
func WithGenerator(generator Generator) Option {
	return func(r *Registry) { r.generator = generator }
}

// WithContent sets the text regenerator.
func WithContent(content ContentRegenerator) Option {
	return func(r *Registry) { r.content = content }
}

// WithImages sets the image source used by image regeneration.
func WithImages(images catalog.ImageSource) Option {
	return func(r *Registry) { r.images = images }
}

// WithSections sets the catalog used by add-section.
func WithSections(sections SectionSource) Option {
	return func(r *Registry) { r.sections = sections }
}

// WithTimer overrides the animation timer (primarily for tests).
func WithTimer(timer TimerFunc) Option {
	return func(r *Registry) {
		if timer != nil {
			r.timer = timer
		}
	}
}

// WithTransitionDelay overrides the panel animation length.
func WithTransitionDelay(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.transition = d
		}
	}
}

// WithIDGenerator overrides the block id source (primarily for tests).
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the editor logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry owns one editing session per user.
type Registry struct {
	store      persistence.Store
	generator  Generator
	content    ContentRegenerator
	images     catalog.ImageSource
	sections   SectionSource
	timer      TimerFunc
	transition time.Duration
	newID      func() string
	now        func() time.Time
	logger     interfaces.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry constructs a registry over the persistence store.
func NewRegistry(store persistence.Store, opts ...Option) *Registry {
	if store == nil {
		panic(ErrStoreRequired)
	}
	r := &Registry{
		store:      store,
		timer:      realTimer,
		transition: DefaultTransitionDelay,
		newID:      func() string { return uuid.NewString() },
		now:        time.Now,
		logger:     logging.NoOp(),
		sessions:   make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Session returns the user's session, loading the persisted website on first
// use.
func (r *Registry) Session(ctx context.Context, userID string) (*Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, persistence.ErrUserRequired
	}

	r.mu.Lock()
	session, ok := r.sessions[userID]
	if !ok {
		session = newSession(r, userID)
		r.sessions[userID] = session
	}
	r.mu.Unlock()

	if err := session.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// Close tears down a user's session, for example on logout.
func (r *Registry) Close(userID string) {
	r.mu.Lock()
	session, ok := r.sessions[strings.TrimSpace(userID)]
	delete(r.sessions, strings.TrimSpace(userID))
	r.mu.Unlock()
	if ok {
		session.stopTimer()
	}
}
