package texture

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry describes one dumped texture.
type ManifestEntry struct {
	Name         string `json:"name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	PaddedWidth  int    `json:"padded_width"`
	PaddedHeight int    `json:"padded_height"`
	Channels     int    `json:"channels"`
	VRAM         bool   `json:"vram"`
	Address      string `json:"address,omitempty"`
	Bytes        int    `json:"bytes"`
	File         string `json:"file,omitempty"`
}

// NewManifestEntry summarises t. file is the dump written for it, if any.
func NewManifestEntry(t *Texture, file string) ManifestEntry {
	e := ManifestEntry{
		Name:         t.Name(),
		Width:        t.Width(),
		Height:       t.Height(),
		PaddedWidth:  t.PaddedWidth(),
		PaddedHeight: t.PaddedHeight(),
		Channels:     t.Channels(),
		VRAM:         t.InVRAM(),
		Bytes:        len(t.Data()),
		File:         file,
	}
	if e.VRAM {
		e.Address = fmt.Sprintf("%#08x", t.Address())
	}
	return e
}

// WriteManifest writes entries as indented JSON to path.
func WriteManifest(path string, entries []ManifestEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("texture: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("texture: write manifest %s: %w", path, err)
	}
	return nil
}
