// Package localization looks up strings in the current language and notifies
// attached targets when the language changes.
package localization

import (
	"fmt"
	"sync"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/internal"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Localizable is implemented by anything that renders localized text.
type Localizable interface {
	// DidChangeLanguage is called only when the language actually changes,
	// before UpdateLocalizedStrings.
	DidChangeLanguage()
	// UpdateLocalizedStrings re-reads every localized string the target shows.
	UpdateLocalizedStrings()
}

// Option configures a Provider.
type Option func(*Provider)

// WithDispatcher routes target notifications through dispatch, typically
// loop.Post, so targets are only touched on the UI loop.
func WithDispatcher(dispatch func(func())) Option {
	return func(p *Provider) {
		if dispatch != nil {
			p.dispatch = dispatch
		}
	}
}

// Provider owns the message bundle and the current language.
type Provider struct {
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	language  language.Tag
	localizer *i18n.Localizer
	targets   map[int]Localizable
	nextToken int
	dispatch  func(func())
}

// New creates a provider whose fallback and initial language is base.
func New(base language.Tag, opts ...Option) *Provider {
	bundle := i18n.NewBundle(base)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	p := &Provider{
		bundle:    bundle,
		language:  base,
		localizer: i18n.NewLocalizer(bundle, base.String()),
		targets:   make(map[int]Localizable),
		dispatch:  func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadMessageFile loads a message file such as "active.cs.toml".
func (p *Provider) LoadMessageFile(path string) error {
	if _, err := p.bundle.LoadMessageFile(path); err != nil {
		return fmt.Errorf("localization: load %s: %w", path, err)
	}
	return nil
}

// ParseMessages parses message file contents; filename selects the language
// and format, e.g. "active.en.toml".
func (p *Provider) ParseMessages(data []byte, filename string) error {
	if _, err := p.bundle.ParseMessageFileBytes(data, filename); err != nil {
		return fmt.Errorf("localization: parse %s: %w", filename, err)
	}
	return nil
}

// AddMessages registers plain key/value messages for tag.
func (p *Provider) AddMessages(tag language.Tag, messages map[string]string) error {
	list := make([]*i18n.Message, 0, len(messages))
	for id, other := range messages {
		list = append(list, &i18n.Message{ID: id, Other: other})
	}
	return p.bundle.AddMessages(tag, list...)
}

// Language returns the current language.
func (p *Provider) Language() language.Tag {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.language
}

// SetLanguage switches the current language and notifies every attached
// target. Setting the current language again is a no-op.
func (p *Provider) SetLanguage(tag language.Tag) {
	p.mu.Lock()
	if tag == p.language {
		p.mu.Unlock()
		return
	}
	p.language = tag
	p.localizer = i18n.NewLocalizer(p.bundle, tag.String())
	targets := p.snapshot()
	p.mu.Unlock()

	internal.GetInternalLogger().Debug("Language changed", "language", tag.String(), "targets", len(targets))

	for _, target := range targets {
		t := target
		p.dispatch(func() {
			t.DidChangeLanguage()
			t.UpdateLocalizedStrings()
		})
	}
}

// Attach subscribes target to language changes and refreshes it once.
// The returned function detaches it again.
func (p *Provider) Attach(target Localizable) (detach func()) {
	p.mu.Lock()
	token := p.nextToken
	p.nextToken++
	p.targets[token] = target
	p.mu.Unlock()

	p.dispatch(target.UpdateLocalizedStrings)

	return func() {
		p.mu.Lock()
		delete(p.targets, token)
		p.mu.Unlock()
	}
}

func (p *Provider) snapshot() []Localizable {
	out := make([]Localizable, 0, len(p.targets))
	for token := 0; token < p.nextToken; token++ {
		if t, ok := p.targets[token]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Localize returns the message for key in the current language. Missing
// messages fall back to the base language, then to the key itself.
func (p *Provider) Localize(key string) string {
	p.mu.RLock()
	localizer := p.localizer
	p.mu.RUnlock()

	s, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || s == "" {
		internal.GetInternalLogger().Debug("Missing localized string", "key", key, "error", err)
		return key
	}
	return s
}
