package embedkit

import (
	"log/slog"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/config"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/internal"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/localization"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/loop"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/scene"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/view"
	"github.com/veandco/go-sdl2/sdl"
)

// NextButtonKey is the localization key of the wizard's next button title.
const NextButtonKey = "common.next"

const defaultNextButtonTitle = "Next"

// PageSource builds the ordered pages of a wizard. It is called once, on the
// UI loop, the first time the pages are needed.
type PageSource func(w *Wizard) []*WizardPage

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithWizardConfig overrides the process-wide wizard configuration.
func WithWizardConfig(ui config.WizardUI) WizardOption {
	return func(w *Wizard) {
		w.ui = ui
	}
}

// WithLocalization localizes the wizard title, the next button and every
// page through p.
func WithLocalization(p *localization.Provider) WizardOption {
	return func(w *Wizard) {
		w.localizer = p
	}
}

// WithWizardName sets the localization key of the wizard title.
func WithWizardName(key string) WizardOption {
	return func(w *Wizard) {
		w.nameKey = key
	}
}

// WithPages sets the source of the wizard's pages.
func WithPages(source PageSource) WizardOption {
	return func(w *Wizard) {
		w.pageSource = source
	}
}

// Wizard is a linear, paginated sequence of pages shown one at a time in an
// embedding region, with a next button that hides on the last page.
// All methods except GoToPage and Next must be called on the UI loop.
type Wizard struct {
	controller *view.Controller
	pageRegion *view.View
	nextButton *view.View
	embedding  *EmbeddingController

	loop          *loop.Loop
	ui            config.WizardUI
	catalog       *scene.Catalog
	localizer     *localization.Provider
	illustrations *internal.IllustrationCache
	logger        *slog.Logger

	nameKey       string
	title         string
	pageSource    PageSource
	pages         []*WizardPage
	pagesBuilt    bool
	pagesBuilding bool

	nextTarget float64
	fadeGen    int
	detachers  []func()
	closed     bool
}

// NewWizard creates a wizard whose pages are instantiated from the scene
// catalog named by the wizard configuration.
func NewWizard(l *loop.Loop, scenes *scene.Registry, opts ...WizardOption) (*Wizard, error) {
	w := &Wizard{
		loop:          l,
		ui:            Config().Wizard(),
		illustrations: internal.NewIllustrationCache(),
		nextTarget:    1,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = internal.GetInternalLogger().With("wizard", w.ui.Catalog)

	if l == nil {
		return nil, NewConfigurationError("new_wizard", ErrNoLoop)
	}
	if scenes == nil {
		return nil, NewConfigurationError("new_wizard", scene.ErrCatalogNotFound)
	}
	catalog, err := scenes.Resolve(w.ui.Catalog)
	if err != nil {
		w.logger.Error("Failed to resolve wizard catalog", "error", err)
		return nil, NewConfigurationError("new_wizard", err)
	}
	w.catalog = catalog

	w.controller = view.NewController("wizard", nil)
	root := w.controller.View()
	root.Background = w.ui.BackgroundColor

	w.pageRegion = view.New("pages")
	root.AddSubview(w.pageRegion)
	w.pageRegion.Pin(view.FullBleed)

	w.nextButton = view.New("next_button")
	w.nextButton.TextColor = w.ui.NextButtonTitleColor
	root.AddSubview(w.nextButton)

	w.embedding = NewEmbeddingController(w.controller, WithRegion(w.pageRegion))
	return w, nil
}

// Controller returns the wizard's own screen.
func (w *Wizard) Controller() *view.Controller {
	return w.controller
}

// Embedding returns the controller hosting the current page.
func (w *Wizard) Embedding() *EmbeddingController {
	return w.embedding
}

// NextButton returns the next page affordance.
func (w *Wizard) NextButton() *view.View {
	return w.nextButton
}

// Title returns the localized wizard title.
func (w *Wizard) Title() string {
	return w.title
}

// Load subscribes the wizard to language changes and shows the first page.
func (w *Wizard) Load() {
	if w.localizer != nil {
		w.detachers = append(w.detachers, w.localizer.Attach(w))
	} else {
		w.UpdateLocalizedStrings()
	}
	w.ResetToFirstPage()
}

// Layout sizes the wizard to bounds and places the next button in the
// bottom-right corner.
func (w *Wizard) Layout(bounds sdl.Rect) {
	w.controller.View().SetFrame(bounds)
	w.nextButton.SetFrame(sdl.Rect{X: bounds.W - 100, Y: bounds.H - 40, W: 80, H: 40})
}

// BuildPlainPage creates a page without action buttons.
func (w *Wizard) BuildPlainPage(build func() PageConfig) (*WizardPage, error) {
	return w.buildPage(PagePlain, build)
}

// BuildCTAPage creates a page with a call to action button.
func (w *Wizard) BuildCTAPage(build func() PageConfig) (*WizardPage, error) {
	return w.buildPage(PageCallToAction, build)
}

// BuildTwoButtonPage creates a page with a call to action and an alternative.
func (w *Wizard) BuildTwoButtonPage(build func() PageConfig) (*WizardPage, error) {
	return w.buildPage(PageTwoButtons, build)
}

func (w *Wizard) buildPage(kind PageKind, build func() PageConfig) (*WizardPage, error) {
	controller, err := w.catalog.Instantiate(kind.scene())
	if err != nil {
		w.logger.Error("Failed to instantiate wizard page", "kind", kind.String(), "error", err)
		return nil, err
	}
	page := newWizardPage(kind, controller, build, w)
	if !w.pagesBuilding {
		w.bindPage(page)
	}
	return page, nil
}

// bindPage runs the page's configuration builder for the first time and
// subscribes it to language changes.
func (w *Wizard) bindPage(p *WizardPage) {
	if w.localizer != nil {
		w.detachers = append(w.detachers, w.localizer.Attach(p))
		return
	}
	p.Reload()
}

// Pages returns the ordered pages, building them on first use. Pages are
// bound once the whole list exists, so configuration builders may query the
// wizard; while the page source itself runs, the list is empty.
func (w *Wizard) Pages() []*WizardPage {
	if w.pagesBuilt || w.pagesBuilding {
		return w.pages
	}
	w.pagesBuilding = true
	var pages []*WizardPage
	if w.pageSource != nil {
		for _, p := range w.pageSource(w) {
			if p != nil {
				pages = append(pages, p)
			}
		}
	}
	w.pages = pages
	w.pagesBuilding = false
	w.pagesBuilt = true

	for _, p := range pages {
		w.bindPage(p)
	}
	return w.pages
}

// PageCount returns the number of pages.
func (w *Wizard) PageCount() int {
	return len(w.Pages())
}

func (w *Wizard) indexOf(c *view.Controller) int {
	if c == nil {
		return -1
	}
	for i, p := range w.Pages() {
		if p.controller == c {
			return i
		}
	}
	return -1
}

// CurrentIndex returns the index of the settled page, or 0 when no page is shown.
func (w *Wizard) CurrentIndex() int {
	if i := w.indexOf(w.embedding.Current()); i >= 0 {
		return i
	}
	return 0
}

// CurrentPage returns the settled page, or nil.
func (w *Wizard) CurrentPage() *WizardPage {
	if i := w.indexOf(w.embedding.Current()); i >= 0 {
		return w.pages[i]
	}
	return nil
}

// PageBefore returns the page preceding p, or nil at the start.
func (w *Wizard) PageBefore(p *WizardPage) *WizardPage {
	if p == nil {
		return nil
	}
	i := w.indexOf(p.controller)
	if i <= 0 {
		return nil
	}
	return w.pages[i-1]
}

// PageAfter returns the page following p, or nil at the end.
func (w *Wizard) PageAfter(p *WizardPage) *WizardPage {
	if p == nil {
		return nil
	}
	i := w.indexOf(p.controller)
	if i < 0 || i+1 >= len(w.pages) {
		return nil
	}
	return w.pages[i+1]
}

// GoToPage schedules a forward transition to the page at index on the UI
// loop. Indices out of range when the move runs are ignored. It is safe to
// call from any goroutine.
func (w *Wizard) GoToPage(index int, animated bool) {
	w.loop.Post(func() {
		w.goTo(index, animated)
	})
}

// Next schedules an animated move to the page after the current one. It is
// safe to call from any goroutine.
func (w *Wizard) Next() {
	w.loop.Post(func() {
		w.goTo(w.CurrentIndex()+1, true)
	})
}

func (w *Wizard) goTo(index int, animated bool) {
	if count := w.PageCount(); index < 0 || index >= count {
		w.logger.Debug("Ignoring out of range page", "index", index, "count", count)
		return
	}
	w.show(index, animated)
}

// ResetToFirstPage shows the first page immediately, without animation.
func (w *Wizard) ResetToFirstPage() {
	if w.PageCount() == 0 {
		return
	}
	w.show(0, false)
}

func (w *Wizard) show(index int, animated bool) {
	if w.closed {
		return
	}
	pages := w.Pages()
	last := len(pages) - 1

	var t Transition = NewInstantTransition()
	if animated {
		t = NewSlideTransition(w.loop, w.ui.PageTransitionDuration, SlideForward)
	}

	if index == last {
		w.fadeNextButton(0)
	}
	err := w.embedding.Embed(pages[index].controller, t, func(completed bool) {
		if !completed {
			return
		}
		if index == last {
			w.fadeNextButton(0)
		} else {
			w.fadeNextButton(1)
		}
	})
	if err != nil {
		w.logger.Error("Failed to show wizard page", "index", index, "error", err)
	}
}

// fadeNextButton animates the next button towards alpha. A newer fade
// takes over from an older one mid-flight.
func (w *Wizard) fadeNextButton(alpha float64) {
	if w.nextTarget == alpha {
		return
	}
	w.nextTarget = alpha
	w.fadeGen++
	gen := w.fadeGen
	from := w.nextButton.Alpha()

	w.loop.Animate(loop.Animation{
		Duration: w.ui.NextButtonFadeDuration,
		Step: func(p float64) {
			if gen != w.fadeGen {
				return
			}
			w.nextButton.SetAlpha(from + (alpha-from)*p)
		},
	})
}

// DidChangeLanguage refreshes the wizard chrome.
func (w *Wizard) DidChangeLanguage() {
	w.refreshChrome()
}

// UpdateLocalizedStrings refreshes the wizard chrome.
func (w *Wizard) UpdateLocalizedStrings() {
	w.refreshChrome()
}

func (w *Wizard) refreshChrome() {
	if w.localizer == nil {
		w.nextButton.Text = defaultNextButtonTitle
		return
	}
	if w.nameKey != "" {
		w.title = w.localizer.Localize(w.nameKey)
	}
	w.nextButton.Text = w.localizer.Localize(NextButtonKey)
}

// Close unsubscribes the wizard and its pages from language changes and
// removes the current page.
func (w *Wizard) Close() {
	if w.closed {
		return
	}
	w.closed = true
	for _, detach := range w.detachers {
		detach()
	}
	w.detachers = nil
	w.embedding.Close()
}
