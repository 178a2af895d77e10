package window

import (
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/jumprope/internal/core"
)

// imageFunc loads one image file; ebitenutil.NewImageFromFile in production.
type imageFunc func(path string) (*ebiten.Image, error)

// imageCache loads named images in the background and publishes their
// status through core.Assets as each one settles.
type imageCache struct {
	mu     sync.RWMutex
	images map[string]*ebiten.Image
	assets *core.Assets
	logger core.Logger
	load   imageFunc
	wg     sync.WaitGroup
}

func newImageCache(assets *core.Assets, logger core.Logger, load imageFunc) *imageCache {
	if load == nil {
		load = func(path string) (*ebiten.Image, error) {
			img, _, err := ebitenutil.NewImageFromFile(path)
			return img, err
		}
	}
	return &imageCache{
		images: make(map[string]*ebiten.Image),
		assets: assets,
		logger: logger,
		load:   load,
	}
}

// LoadAll marks every name Loading and starts one loader per image.
// Files are looked up as dir/name.
func (c *imageCache) LoadAll(dir string, names []string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, known := c.assets.Status(name); known {
			continue
		}
		c.assets.Set(name, core.AssetLoading)

		c.wg.Add(1)
		go func(name string) {
			defer c.wg.Done()
			path := filepath.Join(dir, name)
			img, err := c.load(path)
			if err != nil {
				c.logger.Warn("backdrop image failed to load", "image", name, "path", path, "error", err)
				c.assets.Set(name, core.AssetFailed)
				return
			}
			c.mu.Lock()
			c.images[name] = img
			c.mu.Unlock()
			c.assets.Set(name, core.AssetReady)
			c.logger.Debug("backdrop image ready", "image", name)
		}(name)
	}
}

// Wait blocks until every started load has settled.
func (c *imageCache) Wait() {
	c.wg.Wait()
}

// Get returns a loaded image.
func (c *imageCache) Get(name string) (*ebiten.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[name]
	return img, ok
}
