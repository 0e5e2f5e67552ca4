//go:build windows

package platform

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// RegistrySubscription watches the package repository registry key and
// signals whenever packages are installed, removed or updated.
type RegistrySubscription struct {
	key     registry.Key
	changes chan struct{}
	done    chan struct{}
	stop    sync.Once
}

// NewPackageSubscription opens a watch on the package repository.
func NewPackageSubscription() (Subscription, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, packagesKeyPath, registry.READ)
	if err != nil {
		return nil, fmt.Errorf("opening package repository key: %w", err)
	}

	s := &RegistrySubscription{
		key:     key,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go s.loop()
	return s, nil
}

func (s *RegistrySubscription) Changes() <-chan struct{} {
	return s.changes
}

func (s *RegistrySubscription) Close() error {
	s.stop.Do(func() { close(s.done) })
	return s.key.Close()
}

func (s *RegistrySubscription) loop() {
	const filter = windows.REG_NOTIFY_CHANGE_NAME | windows.REG_NOTIFY_CHANGE_LAST_SET
	for {
		select {
		case <-s.done:
			return
		default:
		}

		// Blocks until the key or a subkey changes.
		err := windows.RegNotifyChangeKeyValue(windows.Handle(s.key), true, filter, 0, false)
		select {
		case <-s.done:
			return
		default:
		}
		if err != nil {
			return
		}

		select {
		case s.changes <- struct{}{}:
		default:
			// A notification is already pending.
		}
	}
}
