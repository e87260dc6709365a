package client

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// PreferenceStore persists the dark-mode choice between sessions.
type PreferenceStore interface {
	// Load returns the saved preference and whether one was saved.
	Load() (dark bool, ok bool)
	Save(dark bool) error
}

// FilePreferenceStore keeps the preference in a small file, the
// client-side analogue of browser local storage.
type FilePreferenceStore struct {
	Path string
}

func (f *FilePreferenceStore) Load() (bool, bool) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return false, false
	}
	dark, err := strconv.ParseBool(strings.TrimSpace(string(data)))
	if err != nil {
		return false, false
	}
	return dark, true
}

func (f *FilePreferenceStore) Save(dark bool) error {
	return os.WriteFile(f.Path, []byte(strconv.FormatBool(dark)), 0o600)
}

// Theme is the dark/light preference as an explicit, injectable state
// object: initialized once from the persisted value (else the system
// default), with every toggle written through to the store.
type Theme struct {
	store       PreferenceStore
	systemDark  func() bool
	onChange    func(dark bool)
	dark        bool
	initialized bool
}

// NewTheme builds an uninitialized theme. systemDark probes the system
// preference and may be nil (treated as light).
func NewTheme(store PreferenceStore, systemDark func() bool) *Theme {
	if systemDark == nil {
		systemDark = func() bool { return false }
	}
	return &Theme{store: store, systemDark: systemDark, onChange: func(bool) {}}
}

// OnChange registers the visual hook run on init and on every toggle.
func (t *Theme) OnChange(fn func(dark bool)) {
	if fn != nil {
		t.onChange = fn
	}
}

// Init reads the persisted preference, falling back to the system
// default, and marks the theme initialized. Calling it again is a no-op.
func (t *Theme) Init() {
	if t.initialized {
		return
	}
	if dark, ok := t.store.Load(); ok {
		t.dark = dark
	} else {
		t.dark = t.systemDark()
	}
	t.initialized = true
	t.onChange(t.dark)
}

func (t *Theme) Initialized() bool { return t.initialized }

func (t *Theme) Dark() bool { return t.dark }

// Toggle flips the preference, writes it through and fires the visual
// hook. Returns the new value.
func (t *Theme) Toggle() bool {
	t.dark = !t.dark
	if err := t.store.Save(t.dark); err != nil {
		log.Println("Error saving theme preference:", err)
	}
	t.onChange(t.dark)
	return t.dark
}
