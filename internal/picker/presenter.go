package picker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/reclaim/docpicker/internal/platform"
)

// Handlers receive the outcome of one presentation. A Presenter must call
// exactly one of them on every dismissal path.
type Handlers struct {
	OnSelected  func(ref string)
	OnCancelled func()
	OnFailed    func(err error)
}

// Presenter shows the native selection surface filtered to the given type
// identifiers. Present must not block the caller; outcomes arrive through h.
type Presenter interface {
	Present(filters []string, h Handlers)
}

// NativePresenter drives a blocking platform picker from its own goroutine
type NativePresenter struct {
	ctx  context.Context
	plat platform.Platform
}

// NewNativePresenter returns a presenter backed by plat. Cancelling ctx
// tears down any picker still on screen.
func NewNativePresenter(ctx context.Context, plat platform.Platform) *NativePresenter {
	return &NativePresenter{ctx: ctx, plat: plat}
}

// Present shows the picker and reports the outcome through h
func (p *NativePresenter) Present(filters []string, h Handlers) {
	go func() {
		path, err := p.plat.PickDocument(p.ctx, filters)
		switch {
		case errors.Is(err, platform.ErrCancelled):
			h.OnCancelled()
		case err != nil:
			h.OnFailed(err)
		default:
			h.OnSelected(fileURL(path))
		}
	}()
}

// fileURL renders an absolute path as a file URL, e.g. file:///a/My%20Doc.pdf
func fileURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func presentError(err error) error {
	return fmt.Errorf("%w: %v", ErrPresentFailed, err)
}
