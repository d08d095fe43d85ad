package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"nucleus-renderer/internal/capture"
	"nucleus-renderer/internal/config"
	"nucleus-renderer/internal/texture"
	"nucleus-renderer/internal/vram"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .yaml)")
	assetDir := flag.String("assets", "", "Directory scanned for textures")
	outputDir := flag.String("output", "", "Output directory, relative to the working directory (default: <assets>/out)")
	workers := flag.Int("workers", 0, "Number of loader goroutines (default: NumCPU)")
	useVRAM := flag.Bool("vram", true, "Place textures in a simulated VRAM pool, spilling to heap")
	preview := flag.Bool("preview", false, "Also write an unswizzled PNG per texture")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		AssetDir:  *assetDir,
		OutputDir: *outputDir,
		Workers:   *workers,
	})

	index := texture.BuildIndex(cfg.AssetDir)
	names := index.Stems()
	if len(names) == 0 {
		fmt.Println("No textures found.")
		os.Exit(0)
	}

	var alloc vram.Allocator = vram.Heap{}
	pool := vram.NewPool(vram.PoolSize)
	if *useVRAM {
		alloc = vram.Fallback{Primary: pool, Secondary: vram.Heap{}}
	}
	mgr := texture.NewManager(index, alloc)

	fmt.Printf("Textures: %d indexed in %s\n", len(names), cfg.AssetDir)
	fmt.Printf("Workers: %d, Output: %s\n", cfg.Workers, cfg.OutputDir)

	bar := progressbar.Default(int64(len(names)), "loading")
	results := mgr.Preload(names, cfg.Workers, func(done, total int) { bar.Add(1) })
	bar.Finish()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			fmt.Fprintf(os.Stderr, "ERR %s: %s\n", r.Name, r.Error)
			failed++
		}
	}

	var entries []texture.ManifestEntry
	for _, tex := range mgr.Textures() {
		name := filepath.Base(tex.Name())
		stem := name[:len(name)-len(filepath.Ext(name))]

		dump := stem + ".swz"
		if err := os.WriteFile(filepath.Join(cfg.OutputDir, dump), tex.Data(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "ERR write %s: %v\n", dump, err)
			failed++
			continue
		}
		if *preview {
			if err := capture.Save(filepath.Join(cfg.OutputDir, stem+".png"), tex.Image(), 1); err != nil {
				fmt.Fprintf(os.Stderr, "ERR %v\n", err)
				failed++
			}
		}
		entries = append(entries, texture.NewManifestEntry(tex, dump))
		fmt.Printf("OK  %s  %dx%d -> %dx%d  vram=%v\n",
			name, tex.Width(), tex.Height(), tex.PaddedWidth(), tex.PaddedHeight(), tex.InVRAM())
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := texture.WriteManifest(manifestPath, entries); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}
	fmt.Printf("VRAM: %d/%d bytes used\n", pool.Offset(), pool.Size())

	if failed > 0 {
		fmt.Printf("\nDone with %d error(s).\n", failed)
		os.Exit(1)
	}
}
