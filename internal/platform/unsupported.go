//go:build !darwin && !linux

package platform

import "context"

type unsupportedPlatform struct{}

func newPlatform(Options) Platform {
	return unsupportedPlatform{}
}

func (unsupportedPlatform) PickDocument(context.Context, []string) (string, error) {
	return "", ErrUnsupported
}
