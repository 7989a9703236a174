package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"chessPro/rules"
	"chessPro/storage"
)

func main() {
	rating := flag.Int("rating", storage.DefaultRating, "computer rating, 0-3000")
	side := flag.String("color", "white", "side the player takes: white or black")
	backend := flag.String("backend", string(rules.BackendNotnil), "search backend: notnil or dragon")
	dataDir := flag.String("data", "", "data directory (default: platform data dir)")
	noSave := flag.Bool("nosave", false, "do not read or write preferences and statistics")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	prefs := storage.DefaultPreferences()
	var store *storage.Storage
	if !*noSave {
		var err error
		if store, err = storage.Open(*dataDir); err != nil {
			log.Printf("storage disabled: %v", err)
		} else {
			defer store.Close()
			if prefs, err = store.LoadPreferences(); err != nil {
				log.Printf("load preferences: %v", err)
			}
		}
	}

	// Flags given on the command line win over saved preferences.
	if set["rating"] || store == nil {
		prefs.Rating = *rating
	}
	if set["color"] || store == nil {
		c, err := rules.ParseColor(*side)
		if err != nil {
			log.Fatal(err)
		}
		prefs.PlayerColor = strings.ToLower(c.String())
	}
	if set["backend"] || store == nil {
		prefs.Backend = *backend
	}
	prefs.Rating = min(max(prefs.Rating, 0), maxRating)

	loadFonts()
	g := NewGame(prefs, store)
	g.savePreferences()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("chessPro")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
