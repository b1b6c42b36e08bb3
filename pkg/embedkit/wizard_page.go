package embedkit

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/config"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/internal"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/loop"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/scene"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/view"
)

// Scene identifiers the wizard instantiates pages from.
const (
	PlainPageScene     scene.Identifier = "BasicWizardPage"
	CTAPageScene       scene.Identifier = "CTAWizardPage"
	TwoButtonPageScene scene.Identifier = "CTAAlternativeWizardPage"
)

// Outlet names of the views a wizard page binds its configuration to. A
// scene may lay these out itself; missing ones are created on first reload.
const (
	OutletIllustration     = "illustration"
	OutletTopBackground    = "top_background"
	OutletBottomBackground = "bottom_background"
	OutletHeading          = "heading"
	OutletMessage          = "message"
	OutletAdditionalButton = "additional_button"
	OutletPrimaryButton    = "primary_button"
	OutletSecondaryButton  = "secondary_button"
)

const defaultIllustrationSize = 256

// PageKind selects which parts of a PageConfig a page shows.
type PageKind int

const (
	PagePlain        PageKind = iota // Illustration, heading, message and an optional top-left action
	PageCallToAction                 // Plain plus a primary action button
	PageTwoButtons                   // Call to action plus a secondary action button
)

func (k PageKind) String() string {
	switch k {
	case PagePlain:
		return "plain"
	case PageCallToAction:
		return "call_to_action"
	case PageTwoButtons:
		return "two_buttons"
	default:
		return "unknown"
	}
}

func (k PageKind) scene() scene.Identifier {
	switch k {
	case PageCallToAction:
		return CTAPageScene
	case PageTwoButtons:
		return TwoButtonPageScene
	default:
		return PlainPageScene
	}
}

// PageAction is a titled button and the callback it triggers.
type PageAction struct {
	Title string
	OnTap func()
}

// PageConfig is the content of one wizard page. Fields a page kind does not
// show are ignored.
type PageConfig struct {
	Illustration     image.Image // Used as is when set
	IllustrationPath string      // SVG file rasterized, or PNG file drawn, when Illustration is nil
	Heading          string
	Message          string
	Additional       PageAction // Top-left action, every kind
	Primary          PageAction // PageCallToAction and PageTwoButtons
	Secondary        PageAction // PageTwoButtons only
}

// WizardPage is one screen of a Wizard. Its configuration builder is first
// called when the wizard binds the page, and again on every reload, so
// builders should look localized strings up when called rather than capture
// them.
type WizardPage struct {
	kind          PageKind
	controller    *view.Controller
	build         func() PageConfig
	ui            config.WizardUI
	loop          *loop.Loop
	illustrations *internal.IllustrationCache
}

func newWizardPage(kind PageKind, controller *view.Controller, build func() PageConfig, w *Wizard) *WizardPage {
	p := &WizardPage{
		kind:          kind,
		controller:    controller,
		build:         build,
		ui:            w.ui,
		loop:          w.loop,
		illustrations: w.illustrations,
	}
	return p
}

func (p *WizardPage) Kind() PageKind {
	return p.kind
}

// Controller returns the page's screen.
func (p *WizardPage) Controller() *view.Controller {
	return p.controller
}

// Outlet returns the page subview bound to name, creating it if the scene
// did not provide one.
func (p *WizardPage) Outlet(name string) *view.View {
	root := p.controller.View()
	for _, sub := range root.Subviews() {
		if sub.Name == name {
			return sub
		}
	}
	v := view.New(name)
	root.AddSubview(v)
	return v
}

// Reload binds the current configuration and the wizard styling to the page.
func (p *WizardPage) Reload() {
	ui := p.ui
	root := p.controller.View()
	root.Background = ui.BackgroundColor
	p.Outlet(OutletTopBackground).Background = ui.BackgroundColor
	p.Outlet(OutletBottomBackground).Background = ui.BackgroundColor

	heading := p.Outlet(OutletHeading)
	message := p.Outlet(OutletMessage)
	heading.TextColor = ui.TitleColor
	heading.LineSpacing = ui.TitleLineSpacing
	message.TextColor = ui.MessageColor
	message.LineSpacing = ui.MessageLineSpacing

	if p.build == nil {
		return
	}
	cfg := p.build()

	heading.Text = cfg.Heading
	message.Text = cfg.Message
	p.bindIllustration(cfg)
	p.bindAction(OutletAdditionalButton, cfg.Additional, true)
	p.bindAction(OutletPrimaryButton, cfg.Primary, p.kind != PagePlain)
	p.bindAction(OutletSecondaryButton, cfg.Secondary, p.kind == PageTwoButtons)
}

func (p *WizardPage) bindIllustration(cfg PageConfig) {
	v := p.Outlet(OutletIllustration)
	v.ImagePath = ""
	switch {
	case cfg.Illustration != nil:
		v.Image = cfg.Illustration
	case cfg.IllustrationPath != "" && !strings.EqualFold(filepath.Ext(cfg.IllustrationPath), ".svg"):
		v.Image = nil
		v.ImagePath = cfg.IllustrationPath
	case cfg.IllustrationPath != "":
		w, h := int(v.Frame().W), int(v.Frame().H)
		if w <= 0 || h <= 0 {
			w, h = defaultIllustrationSize, defaultIllustrationSize
		}
		img, err := p.illustrations.Load(cfg.IllustrationPath, w, h)
		if err != nil {
			internal.GetInternalLogger().Error("Failed to load page illustration", "path", cfg.IllustrationPath, "error", err)
			v.Image = nil
			return
		}
		v.Image = img
	default:
		v.Image = nil
	}
}

func (p *WizardPage) bindAction(outlet string, action PageAction, shown bool) {
	v := p.Outlet(outlet)
	v.Text = action.Title
	v.TextColor = p.ui.NextButtonTitleColor
	v.SetHidden(!shown || action.Title == "")
}

// TapAdditional triggers the top-left action on the next loop frame.
func (p *WizardPage) TapAdditional() {
	p.tap(func(cfg PageConfig) PageAction { return cfg.Additional }, true)
}

// TapPrimary triggers the call to action on the next loop frame.
func (p *WizardPage) TapPrimary() {
	p.tap(func(cfg PageConfig) PageAction { return cfg.Primary }, p.kind != PagePlain)
}

// TapSecondary triggers the alternative action on the next loop frame.
func (p *WizardPage) TapSecondary() {
	p.tap(func(cfg PageConfig) PageAction { return cfg.Secondary }, p.kind == PageTwoButtons)
}

func (p *WizardPage) tap(pick func(PageConfig) PageAction, shown bool) {
	if !shown || p.build == nil {
		return
	}
	if cb := pick(p.build()).OnTap; cb != nil {
		p.loop.Post(cb)
	}
}

// DidChangeLanguage is a no-op; UpdateLocalizedStrings follows it.
func (p *WizardPage) DidChangeLanguage() {}

// UpdateLocalizedStrings re-runs the configuration builder.
func (p *WizardPage) UpdateLocalizedStrings() {
	p.Reload()
}
