package render

import (
	"embed"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"

	"github.com/vovakirdan/stacker/internal/core"
)

//go:embed textures/*.png
var defaultTextures embed.FS

// DefaultPack returns the built-in texture pack: one PNG per name produced by
// core.TextureName.
func DefaultPack() fs.FS {
	sub, err := fs.Sub(defaultTextures, "textures")
	if err != nil {
		// The embed pattern above guarantees the directory exists.
		panic(err)
	}
	return sub
}

// LoadError reports a texture that could not be loaded.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("render: cannot load texture %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// TextureProvider loads textures by name.
type TextureProvider interface {
	Load(name string) (*core.Texture, error)
}

// FSProvider loads <name>.png files from a file system.
type FSProvider struct {
	FS fs.FS
}

// NewDirProvider loads textures from a directory on disk.
func NewDirProvider(dir string) *FSProvider {
	return &FSProvider{FS: os.DirFS(dir)}
}

// Load implements TextureProvider. Failures are returned as *LoadError.
func (p *FSProvider) Load(name string) (*core.Texture, error) {
	f, err := p.FS.Open(name + ".png")
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	return textureFromImage(img), nil
}

func textureFromImage(img image.Image) *core.Texture {
	b := img.Bounds()
	t := &core.Texture{W: b.Dx(), H: b.Dy(), Pix: make([]core.RGB, b.Dx()*b.Dy())}
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			t.Pix[y*t.W+x] = core.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
		}
	}
	return t
}

// TextureCache maps texture names to loaded textures, loading each one the
// first time it is asked for. It is not safe for concurrent use; the game
// loop is its only user once preloading is done.
type TextureCache struct {
	provider TextureProvider
	textures map[string]*core.Texture
}

// NewTextureCache creates an empty cache backed by p.
func NewTextureCache(p TextureProvider) *TextureCache {
	return &TextureCache{
		provider: p,
		textures: make(map[string]*core.Texture),
	}
}

// Get returns the named texture, loading it if absent.
// Failed loads are not cached, so a later call retries.
func (c *TextureCache) Get(name string) (*core.Texture, error) {
	if t, ok := c.textures[name]; ok {
		return t, nil
	}

	t, err := c.provider.Load(name)
	if err != nil {
		return nil, err
	}
	c.textures[name] = t
	return t, nil
}

// Preload loads every named texture, stopping at the first failure.
func (c *TextureCache) Preload(names ...string) error {
	for _, name := range names {
		if _, err := c.Get(name); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	return len(c.textures)
}
