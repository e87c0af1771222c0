package image

import (
	"maps"
	"slices"
)

// Runtime images accepted when no allow-list is configured, by language.
var RuntimeImages = map[string]string{
	"c":          "gcc:latest",
	"c++":        "gcc:latest",
	"go":         "golang:1.19",
	"haskell":    "haskell:8.10",
	"java":       "openjdk:17",
	"javascript": "node:18",
	"perl":       "perl:latest",
	"php":        "php:8.0",
	"python":     "python:3.9",
	"r":          "rocker/r-ver:4.1.0",
	"ruby":       "ruby:3.0",
	"rust":       "rust:1.68",
	"swift":      "swift:5.7",
}

// Returns the images of [RuntimeImages], sorted and without duplicates.
func DefaultKnownImages() []string {
	return slices.Compact(slices.Sorted(maps.Values(RuntimeImages)))
}

// Creates a [StaticResolver] for images, or for [DefaultKnownImages] when
// images is empty.
func NewKnownResolver(images []string) (*StaticResolver, error) {
	if len(images) == 0 {
		images = DefaultKnownImages()
	}
	return NewStaticResolver(images...)
}
