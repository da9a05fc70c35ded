package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Extension is a pluggable unit of bot functionality. Setup is the entry
// point; it typically registers commands and checks. Teardown, if set, runs
// when the extension is unloaded.
type Extension struct {
	Setup    func(b *Bot) error
	Teardown func(b *Bot) error
}

// extensionTable tracks registered and loaded extensions. Registration is
// the Go stand-in for the original's importable modules: the set of names
// that exist, independent of whether they are loaded.
type extensionTable struct {
	mu        sync.Mutex
	available map[string]Extension
	loaded    map[string]Extension
}

func newExtensionTable() *extensionTable {
	return &extensionTable{
		available: make(map[string]Extension),
		loaded:    make(map[string]Extension),
	}
}

// RegisterExtension makes an extension known under name so it can be loaded.
// Registering does not run Setup. Panics if name is empty.
func (b *Bot) RegisterExtension(name string, ext Extension) {
	if name == "" {
		panic("commands: extension name must not be empty")
	}
	t := b.extensions
	t.mu.Lock()
	defer t.mu.Unlock()
	t.available[name] = ext
}

// LoadExtension runs the named extension's setup. The error is one of the
// ExtensionError family: *ExtensionAlreadyLoaded, *ExtensionNotFound,
// *ExtensionMissingEntryPoint, or *ExtensionFailed wrapping the setup
// error or panic.
func (b *Bot) LoadExtension(name string) error {
	t := b.extensions
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.loaded[name]; ok {
		return NewExtensionAlreadyLoaded(name)
	}
	ext, ok := t.available[name]
	if !ok {
		return NewExtensionNotFound(name)
	}
	if ext.Setup == nil {
		return NewExtensionMissingEntryPoint(name)
	}
	if err := runSetup(b, ext); err != nil {
		return NewExtensionFailed(name, err)
	}
	t.loaded[name] = ext
	return nil
}

func runSetup(b *Bot, ext Extension) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return ext.Setup(b)
}

// UnloadExtension runs the named extension's teardown, if any, and forgets
// its loaded state. Returns *ExtensionNotLoaded if it was never loaded.
// Teardown errors do not prevent unloading.
func (b *Bot) UnloadExtension(name string) error {
	t := b.extensions
	t.mu.Lock()
	defer t.mu.Unlock()

	ext, ok := t.loaded[name]
	if !ok {
		return NewExtensionNotLoaded(name)
	}
	delete(t.loaded, name)
	if ext.Teardown != nil {
		// best effort; the extension is gone either way
		_ = ext.Teardown(b)
	}
	return nil
}

// ReloadExtension unloads and then loads an extension. A failed load leaves
// the extension unloaded.
func (b *Bot) ReloadExtension(name string) error {
	if err := b.UnloadExtension(name); err != nil {
		return err
	}
	return b.LoadExtension(name)
}

// Extensions returns the names of loaded extensions, sorted.
func (b *Bot) Extensions() []string {
	t := b.extensions
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.loaded))
	for name := range t.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
