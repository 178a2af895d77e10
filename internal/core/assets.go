package core

import "sync"

// AssetStatus is the load state of a named asset.
type AssetStatus int

const (
	AssetLoading AssetStatus = iota
	AssetReady
	AssetFailed
)

func (s AssetStatus) String() string {
	switch s {
	case AssetLoading:
		return "loading"
	case AssetReady:
		return "ready"
	case AssetFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Well-known asset names.
const (
	AssetSurface = "surface" // The host drawing surface
)

// Assets tracks readiness of named assets. Loaders may update it from any
// goroutine; the render step polls it.
type Assets struct {
	mu     sync.RWMutex
	status map[string]AssetStatus
}

// NewAssets creates an empty asset table.
func NewAssets() *Assets {
	return &Assets{status: make(map[string]AssetStatus)}
}

// Set records the status of an asset.
func (a *Assets) Set(name string, s AssetStatus) {
	a.mu.Lock()
	a.status[name] = s
	a.mu.Unlock()
}

// Status returns the status of an asset and whether it is known at all.
func (a *Assets) Status(name string) (AssetStatus, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.status[name]
	return s, ok
}

// Ready reports whether the asset finished loading successfully.
func (a *Assets) Ready(name string) bool {
	s, ok := a.Status(name)
	return ok && s == AssetReady
}
