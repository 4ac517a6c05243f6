package renderer

import (
	"image"
	"sync"
)

// canvasPool reuses preview canvases between frames. The overlay redraws
// the preview every frame while the session is in setup.
type canvasPool struct {
	mu    sync.RWMutex
	pools map[int]*sync.Pool
}

var canvases = &canvasPool{pools: make(map[int]*sync.Pool)}

// GetCanvas returns a size x size canvas, reused when one is available. Its
// contents are undefined.
func GetCanvas(size int) *image.RGBA {
	return canvases.get(size)
}

// ReleaseCanvas hands a canvas obtained from GetCanvas or Preview back for
// reuse. img must not be used afterwards.
func ReleaseCanvas(img *image.RGBA) {
	canvases.put(img)
}

func (p *canvasPool) get(size int) *image.RGBA {
	p.mu.RLock()
	pool, ok := p.pools[size]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		pool, ok = p.pools[size]
		if !ok {
			pool = &sync.Pool{
				New: func() any {
					return image.NewRGBA(image.Rect(0, 0, size, size))
				},
			}
			p.pools[size] = pool
		}
		p.mu.Unlock()
	}
	return pool.Get().(*image.RGBA)
}

func (p *canvasPool) put(img *image.RGBA) {
	if img == nil || img.Rect.Dx() != img.Rect.Dy() || img.Rect.Min != (image.Point{}) {
		return
	}
	p.mu.RLock()
	pool, ok := p.pools[img.Rect.Dx()]
	p.mu.RUnlock()
	if ok {
		pool.Put(img)
	}
}
