package texture

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"nucleus-renderer/internal/logging"
	"nucleus-renderer/internal/vram"
)

// Manager owns loaded textures by name. It is safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	items map[string]*Texture
	loads singleflight.Group
	index *Index
	alloc vram.Allocator
}

// NewManager creates a manager that resolves names through index (which
// may be nil, meaning names are paths) and places pixels with alloc.
func NewManager(index *Index, alloc vram.Allocator) *Manager {
	return &Manager{
		items: make(map[string]*Texture),
		index: index,
		alloc: alloc,
	}
}

// Add loads name and stores it. Textures that fail to load are not kept.
// Adding a name that is already present returns the stored texture.
// Concurrent adds of one name share a single load, so only one region is
// claimed.
func (m *Manager) Add(name string) (*Texture, error) {
	if t, ok := m.Get(name); ok {
		return t, nil
	}
	v, err, _ := m.loads.Do(name, func() (any, error) {
		if t, ok := m.Get(name); ok {
			return t, nil
		}
		return m.load(name)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Texture), nil
}

func (m *Manager) load(name string) (*Texture, error) {
	path := name
	if m.index != nil {
		p, ok := m.index.ResolvePath(name)
		if !ok {
			return nil, fmt.Errorf("texture: resolve %s: not indexed", name)
		}
		path = p
	}

	t := Load(path, m.alloc)
	if !t.Valid() {
		return nil, fmt.Errorf("texture: load %s: no pixel data", path)
	}

	m.mu.Lock()
	m.items[name] = t
	m.mu.Unlock()
	logging.Logger().Info("texture added", "name", name, "vram", t.InVRAM())
	return t, nil
}

// Get returns the texture stored under name.
func (m *Manager) Get(name string) (*Texture, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.items[name]
	return t, ok
}

// Remove forgets name. VRAM claimed by the texture is not returned to the
// pool; only heap memory becomes collectable.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[name]; !ok {
		return false
	}
	delete(m.items, name)
	return true
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Names returns the stored names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	out := make([]string, 0, len(m.items))
	for n := range m.items {
		out = append(out, n)
	}
	m.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Textures returns the stored textures ordered by name.
func (m *Manager) Textures() []*Texture {
	names := m.Names()
	out := make([]*Texture, 0, len(names))
	m.mu.RLock()
	for _, n := range names {
		if t, ok := m.items[n]; ok {
			out = append(out, t)
		}
	}
	m.mu.RUnlock()
	return out
}
