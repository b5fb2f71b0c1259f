package editor

import "errors"

var (
	ErrStoreRequired          = errors.New("editor: store required")
	ErrNoWebsite              = errors.New("editor: no website generated yet")
	ErrProfileRequired        = errors.New("editor: business profile required")
	ErrPreviewMode            = errors.New("editor: editing is disabled in preview mode")
	ErrBlockNotFound          = errors.New("editor: block not found")
	ErrRegenerationInProgress = errors.New("editor: regeneration already in progress")
	ErrUnknownTarget          = errors.New("editor: unknown regeneration target")
	ErrGeneratorRequired      = errors.New("editor: website generator not configured")
)

// AlertError carries the message shown to the user when an operation fails
// and needs their attention. Operations are never retried automatically.
type AlertError struct {
	Message string
	Err     error
}

func (e *AlertError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AlertError) Unwrap() error { return e.Err }

// IsAlert reports whether err should be surfaced as a blocking alert.
func IsAlert(err error) bool {
	var target *AlertError
	return errors.As(err, &target)
}

const (
	alertImages   = "Failed to fetch images. Please check that PEXELS_API_KEY is configured and try again."
	alertContent  = "Failed to regenerate content. Please try again."
	alertGenerate = "Failed to generate your website. Please check that PEXELS_API_KEY is configured and try again."
	alertSection  = "Failed to add section. Please check that PEXELS_API_KEY is configured and try again."
)
