package main

import (
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	regularFace font.Face
	boldFace    font.Face
)

const (
	defaultFontSize = 14
	titleFontSize   = 18
)

func loadFonts() {
	regularFace = loadFace(goregular.TTF, defaultFontSize)
	boldFace = loadFace(gobold.TTF, titleFontSize)
}

func loadFace(ttf []byte, size float64) font.Face {
	tt, err := opentype.Parse(ttf)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	return face
}
