package picker

import "errors"

// Terminal errors for a session. The text is what the extension receives.
var (
	ErrUserCancelled = errors.New("User canceled.")
	ErrSessionActive = errors.New("Another document selection is already in progress.")
	ErrPresentFailed = errors.New("Unable to present the document picker")
	ErrClosed        = errors.New("Document picker closed.")
)
