package embedkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/config"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/localization"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/loop"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/scene"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/text/language"
)

func wizardScenes() *scene.Registry {
	catalog := scene.NewCatalog("Wizard").
		Register(PlainPageScene, func() *view.Controller { return view.NewController("plain", nil) }).
		Register(CTAPageScene, func() *view.Controller { return view.NewController("cta", nil) }).
		Register(TwoButtonPageScene, func() *view.Controller { return view.NewController("two_buttons", nil) })
	return scene.NewRegistry().Add(catalog)
}

func headings(titles ...string) PageSource {
	return func(w *Wizard) []*WizardPage {
		var pages []*WizardPage
		for _, title := range titles {
			p, err := w.BuildPlainPage(func() PageConfig { return PageConfig{Heading: title} })
			if err != nil {
				return nil
			}
			pages = append(pages, p)
		}
		return pages
	}
}

func newTestWizard(t *testing.T, l *loop.Loop, opts ...WizardOption) *Wizard {
	t.Helper()
	opts = append([]WizardOption{WithWizardConfig(config.Default())}, opts...)
	w, err := NewWizard(l, wizardScenes(), opts...)
	require.NoError(t, err)
	w.Layout(sdl.Rect{W: 320, H: 240})
	t.Cleanup(w.Close)
	return w
}

func headingOf(p *WizardPage) string {
	return p.Outlet(OutletHeading).Text
}

func TestWizardWalkthrough(t *testing.T) {
	t.Parallel()

	l := loop.New()
	w := newTestWizard(t, l, WithPages(headings("P0", "P1", "P2")))
	w.Load()

	require.Equal(t, 3, w.PageCount())
	assert.Equal(t, 0, w.CurrentIndex())
	assert.Equal(t, "P0", headingOf(w.CurrentPage()))
	assert.Equal(t, 1.0, w.NextButton().Alpha())
	assert.Equal(t, "Next", w.NextButton().Text)
	assert.Equal(t, sdl.Rect{X: 220, Y: 200, W: 80, H: 40}, w.NextButton().Frame())

	w.Next()
	l.Tick(at(0))
	assert.Equal(t, StateTransitioning, w.Embedding().State())
	l.Tick(at(300))
	assert.Equal(t, 1, w.CurrentIndex())
	assert.Equal(t, 1.0, w.NextButton().Alpha())
	assert.Equal(t, sdl.Point{}, w.CurrentPage().Controller().View().Offset())

	w.Next()
	l.Tick(at(400))
	l.Tick(at(525))
	assert.Less(t, w.NextButton().Alpha(), 1.0, "fade starts with the move onto the last page")
	l.Tick(at(700))

	assert.Equal(t, 2, w.CurrentIndex())
	assert.Equal(t, "P2", headingOf(w.CurrentPage()))
	assert.Equal(t, 0.0, w.NextButton().Alpha())
	assertSettledOn(t, w.Embedding(), w.Pages()[2].Controller())
	assert.True(t, l.Idle())
}

func TestWizardGoingBackRestoresNextButton(t *testing.T) {
	t.Parallel()

	l := loop.New()
	w := newTestWizard(t, l, WithPages(headings("P0", "P1")))
	w.Load()

	w.GoToPage(1, false)
	l.Tick(at(0))
	l.Tick(at(250))
	assert.Equal(t, 0.0, w.NextButton().Alpha())

	w.GoToPage(0, true)
	l.Tick(at(300))
	l.Tick(at(600))
	assert.Equal(t, 0, w.CurrentIndex())
	l.Tick(at(850))
	assert.Equal(t, 1.0, w.NextButton().Alpha())
}

func TestWizardSinglePageHidesNextButton(t *testing.T) {
	t.Parallel()

	l := loop.New()
	w := newTestWizard(t, l, WithPages(headings("Only")))
	w.Load()

	l.Tick(at(0))
	l.Tick(at(250))
	assert.Equal(t, 0.0, w.NextButton().Alpha())
}

func TestWizardOutOfRangeIsIgnored(t *testing.T) {
	t.Parallel()

	l := loop.New()
	w := newTestWizard(t, l, WithPages(headings("P0", "P1")))
	w.Load()
	before := w.CurrentPage()

	w.GoToPage(-1, true)
	w.GoToPage(2, true)
	l.Tick(at(0))

	assert.Same(t, before, w.CurrentPage())
	assert.Equal(t, StateSettled, w.Embedding().State())
	assert.True(t, l.Idle(), "no transition was started")
}

func TestWizardWithoutPages(t *testing.T) {
	t.Parallel()

	l := loop.New()
	w := newTestWizard(t, l)
	w.Load()
	w.GoToPage(0, true)
	w.Next()
	l.Tick(at(0))

	assert.Zero(t, w.PageCount())
	assert.Nil(t, w.CurrentPage())
	assert.Equal(t, 0, w.CurrentIndex())
	assert.Equal(t, StateEmpty, w.Embedding().State())
	assert.True(t, l.Idle())
}

func TestWizardAdjacentPages(t *testing.T) {
	t.Parallel()

	w := newTestWizard(t, loop.New(), WithPages(headings("P0", "P1", "P2")))
	pages := w.Pages()

	assert.Nil(t, w.PageBefore(pages[0]))
	assert.Same(t, pages[1], w.PageAfter(pages[0]))
	assert.Same(t, pages[1], w.PageBefore(pages[2]))
	assert.Nil(t, w.PageAfter(pages[2]))
	assert.Nil(t, w.PageAfter(nil))
}

func TestWizardResetToFirstPage(t *testing.T) {
	t.Parallel()

	l := loop.New()
	w := newTestWizard(t, l, WithPages(headings("P0", "P1", "P2")))
	w.Load()
	w.GoToPage(1, false)
	l.Tick(at(0))
	require.Equal(t, 1, w.CurrentIndex())

	w.ResetToFirstPage()
	assert.Equal(t, 0, w.CurrentIndex())
	assertSettledOn(t, w.Embedding(), w.Pages()[0].Controller())
}

func TestWizardPageKinds(t *testing.T) {
	t.Parallel()

	l := loop.New()
	taps := 0
	actions := PageConfig{
		Heading:   "Choose",
		Primary:   PageAction{Title: "Go", OnTap: func() { taps++ }},
		Secondary: PageAction{Title: "Skip", OnTap: func() { taps += 10 }},
	}
	var plain, cta, two *WizardPage
	w := newTestWizard(t, l, WithPages(func(w *Wizard) []*WizardPage {
		plain, _ = w.BuildPlainPage(func() PageConfig { return actions })
		cta, _ = w.BuildCTAPage(func() PageConfig { return actions })
		two, _ = w.BuildTwoButtonPage(func() PageConfig { return actions })
		return []*WizardPage{plain, cta, two}
	}))
	require.Equal(t, 3, w.PageCount())

	assert.Equal(t, PagePlain, plain.Kind())
	assert.Equal(t, "cta", cta.Controller().Name())
	assert.True(t, plain.Outlet(OutletPrimaryButton).Hidden())
	assert.False(t, cta.Outlet(OutletPrimaryButton).Hidden())
	assert.True(t, cta.Outlet(OutletSecondaryButton).Hidden())
	assert.False(t, two.Outlet(OutletSecondaryButton).Hidden())
	assert.True(t, two.Outlet(OutletAdditionalButton).Hidden(), "no title")

	plain.TapPrimary()
	cta.TapSecondary()
	assert.True(t, l.Idle())

	cta.TapPrimary()
	two.TapSecondary()
	assert.Zero(t, taps, "taps run on the loop")
	l.Tick(at(0))
	assert.Equal(t, 11, taps)
}

func TestWizardPageStyling(t *testing.T) {
	t.Parallel()

	ui := config.Default()
	ui.TitleColor = config.HexToColor(0x112233)
	ui.TitleLineSpacing = 1.5
	w, err := NewWizard(loop.New(), wizardScenes(), WithWizardConfig(ui), WithPages(headings("P0")))
	require.NoError(t, err)
	defer w.Close()

	heading := w.Pages()[0].Outlet(OutletHeading)
	assert.Equal(t, ui.TitleColor, heading.TextColor)
	assert.Equal(t, 1.5, heading.LineSpacing)
	assert.Equal(t, ui.BackgroundColor, w.Controller().View().Background)
}

func TestWizardPageIllustrationFromSVG(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "welcome.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10" fill="#008080"/></svg>`
	require.NoError(t, os.WriteFile(path, []byte(svg), 0o644))

	w := newTestWizard(t, loop.New(), WithPages(func(w *Wizard) []*WizardPage {
		p, _ := w.BuildPlainPage(func() PageConfig { return PageConfig{IllustrationPath: path} })
		missing, _ := w.BuildPlainPage(func() PageConfig { return PageConfig{IllustrationPath: filepath.Join(dir, "gone.svg")} })
		photo, _ := w.BuildPlainPage(func() PageConfig { return PageConfig{IllustrationPath: filepath.Join(dir, "photo.PNG")} })
		return []*WizardPage{p, missing, photo}
	}))

	img := w.Pages()[0].Outlet(OutletIllustration).Image
	require.NotNil(t, img)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Nil(t, w.Pages()[1].Outlet(OutletIllustration).Image)

	photo := w.Pages()[2].Outlet(OutletIllustration)
	assert.Nil(t, photo.Image)
	assert.Equal(t, filepath.Join(dir, "photo.PNG"), photo.ImagePath)
}

func TestWizardFollowsLanguage(t *testing.T) {
	t.Parallel()

	p := localization.New(language.English)
	require.NoError(t, p.AddMessages(language.English, map[string]string{
		"wizard.title": "Welcome",
		"common.next":  "Next",
		"page.intro":   "Hello",
	}))
	require.NoError(t, p.AddMessages(language.Czech, map[string]string{
		"wizard.title": "Vítejte",
		"common.next":  "Další",
		"page.intro":   "Ahoj",
	}))

	l := loop.New()
	w := newTestWizard(t, l,
		WithLocalization(p),
		WithWizardName("wizard.title"),
		WithPages(func(w *Wizard) []*WizardPage {
			page, _ := w.BuildPlainPage(func() PageConfig { return PageConfig{Heading: p.Localize("page.intro")} })
			return []*WizardPage{page}
		}),
	)
	w.Load()
	assert.Equal(t, "Welcome", w.Title())
	assert.Equal(t, "Next", w.NextButton().Text)
	assert.Equal(t, "Hello", headingOf(w.CurrentPage()))

	p.SetLanguage(language.Czech)
	assert.Equal(t, "Vítejte", w.Title())
	assert.Equal(t, "Další", w.NextButton().Text)
	assert.Equal(t, "Ahoj", headingOf(w.CurrentPage()))

	w.Close()
	p.SetLanguage(language.English)
	assert.Equal(t, "Vítejte", w.Title(), "closed wizards stop following the language")
}

func TestNewWizardErrors(t *testing.T) {
	t.Parallel()

	_, err := NewWizard(nil, wizardScenes())
	assert.True(t, errors.Is(err, ErrNoLoop))

	_, err = NewWizard(loop.New(), scene.NewRegistry())
	assert.True(t, IsConfigurationError(err))
	assert.True(t, errors.Is(err, scene.ErrCatalogNotFound))
}

func TestWizardPageBuilderQueriesWizard(t *testing.T) {
	t.Parallel()

	l := loop.New()
	var w *Wizard
	counter := func(n int) func() PageConfig {
		return func() PageConfig {
			return PageConfig{Heading: fmt.Sprintf("%d of %d", n, w.PageCount())}
		}
	}
	w = newTestWizard(t, l, WithPages(func(w *Wizard) []*WizardPage {
		first, _ := w.BuildPlainPage(counter(1))
		second, _ := w.BuildPlainPage(counter(2))
		return []*WizardPage{first, second}
	}))
	w.Load()

	require.Equal(t, 2, w.PageCount())
	assert.Equal(t, "1 of 2", headingOf(w.Pages()[0]))
	assert.Equal(t, "2 of 2", headingOf(w.Pages()[1]))
	assert.Equal(t, 0, w.CurrentIndex())
}

func TestWizardPageSourceSeesNoPagesWhileBuilding(t *testing.T) {
	t.Parallel()

	seen := -1
	w := newTestWizard(t, loop.New(), WithPages(func(w *Wizard) []*WizardPage {
		seen = w.PageCount()
		p, _ := w.BuildPlainPage(func() PageConfig { return PageConfig{Heading: "P0"} })
		return []*WizardPage{p}
	}))

	assert.Equal(t, 1, w.PageCount())
	assert.Zero(t, seen)
	assert.Equal(t, "P0", headingOf(w.Pages()[0]))
}

func TestWizardNavigationBuildsPagesOnLoop(t *testing.T) {
	t.Parallel()

	l := loop.New()
	built := 0
	w := newTestWizard(t, l, WithPages(func(w *Wizard) []*WizardPage {
		built++
		return headings("P0", "P1")(w)
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.GoToPage(1, false)
		w.Next()
	}()
	<-done
	assert.Zero(t, built, "callers off the loop never build pages")

	l.Tick(at(0))
	assert.Equal(t, 1, built)
	assert.Equal(t, 1, w.CurrentIndex())
}
