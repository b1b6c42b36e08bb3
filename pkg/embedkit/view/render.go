package view

import (
	"fmt"
	"image"
	"image/draw"
	"unsafe"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/internal"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

// Renderer draws a view tree with SDL, honoring each view's effective opacity
// and offset.
type Renderer struct {
	renderer *sdl.Renderer
	textures *internal.TextureCache
}

func NewRenderer(renderer *sdl.Renderer) *Renderer {
	img.Init(img.INIT_PNG)
	return &Renderer{
		renderer: renderer,
		textures: internal.NewTextureCache(0),
	}
}

// Draw renders root and its descendants, back to front.
func (r *Renderer) Draw(root *View) {
	r.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	r.draw(root, sdl.Point{}, 1)
}

func (r *Renderer) draw(v *View, origin sdl.Point, inherited float64) {
	alpha := inherited * v.alpha
	if v.hidden || alpha <= 0 {
		return
	}

	rect := v.frame
	rect.X += origin.X + v.offset.X
	rect.Y += origin.Y + v.offset.Y

	if v.Background.A > 0 {
		r.renderer.SetDrawColor(v.Background.R, v.Background.G, v.Background.B, scaleAlpha(v.Background.A, alpha))
		r.renderer.FillRect(&rect)
	}

	if v.Image != nil || v.ImagePath != "" {
		if texture, err := r.texture(v); err == nil {
			texture.SetAlphaMod(scaleAlpha(255, alpha))
			r.renderer.Copy(texture, nil, &rect)
		} else {
			internal.GetInternalLogger().Error("Failed to load view image", "view", v.Name, "error", err)
		}
	}

	for _, sub := range v.subviews {
		r.draw(sub, sdl.Point{X: rect.X, Y: rect.Y}, alpha)
	}
}

func (r *Renderer) texture(v *View) (*sdl.Texture, error) {
	if v.Image == nil {
		return r.fileTexture(v.ImagePath)
	}

	key := fmt.Sprintf("%d:%p", v.id, v.Image)
	if t := r.textures.Get(key); t != nil {
		return t, nil
	}

	rgba := toRGBA(v.Image)
	b := rgba.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image")
	}
	t, err := r.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STATIC, int32(b.Dx()), int32(b.Dy()))
	if err != nil {
		return nil, err
	}
	if err := t.Update(nil, unsafe.Pointer(&rgba.Pix[0]), rgba.Stride); err != nil {
		t.Destroy()
		return nil, err
	}
	t.SetBlendMode(sdl.BLENDMODE_BLEND)
	r.textures.Set(key, t)
	return t, nil
}

func (r *Renderer) fileTexture(path string) (*sdl.Texture, error) {
	key := "file:" + path
	if t := r.textures.Get(key); t != nil {
		return t, nil
	}
	t, err := img.LoadTexture(r.renderer, path)
	if err != nil {
		return nil, err
	}
	t.SetBlendMode(sdl.BLENDMODE_BLEND)
	r.textures.Set(key, t)
	return t, nil
}

// Destroy releases every cached texture.
func (r *Renderer) Destroy() {
	r.textures.Destroy()
	img.Quit()
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func scaleAlpha(a uint8, alpha float64) uint8 {
	return uint8(float64(a)*alpha + 0.5)
}
