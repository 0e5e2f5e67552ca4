//go:build !windows

package platform

import "context"

// RegistryEnumerator has nothing to enumerate off Windows; the packaged
// catalog degrades to empty.
type RegistryEnumerator struct{}

func (RegistryEnumerator) Packages(_ context.Context) ([]Package, error) {
	return nil, nil
}

// NewPackageSubscription reports that package-change notifications are
// unavailable; the catalog stays static.
func NewPackageSubscription() (Subscription, error) {
	return nil, ErrUnsupported
}
