// Package scales tracks which key/mode combinations an exercise has covered.
package scales

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/uebung/pkg/model"
)

// Keys lists the twelve keys, enharmonics combined.
var Keys = []string{"C", "C#/Db", "D", "D#/Eb", "E", "F", "F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B"}

// Modes lists the tracked scale types.
var Modes = []string{
	"Dur (Ionisch)",
	"Dorisch",
	"Phrygisch",
	"Lydisch",
	"Mixolydisch",
	"Moll (Äolisch)",
	"Lokrisch",
	"Harmonisch Moll",
	"Melodisch Moll",
	"Blues",
	"Pentatonisch Dur",
	"Pentatonisch Moll",
	"Chromatisch",
}

// Total is the size of the catalog.
var Total = len(Keys) * len(Modes)

var (
	ErrUnknownKey  = errors.New("scales: unknown key")
	ErrUnknownMode = errors.New("scales: unknown mode")
)

// Catalog returns every pair, key first then mode.
func Catalog() []model.ScalePair {
	out := make([]model.ScalePair, 0, Total)
	for _, k := range Keys {
		for _, m := range Modes {
			out = append(out, model.ScalePair{Key: k, Mode: m})
		}
	}
	return out
}

// InCatalog reports whether p is one of the catalog pairs.
func InCatalog(p model.ScalePair) bool {
	return contains(Keys, p.Key) && contains(Modes, p.Mode)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ParsePair reads "KEY:MODE". Both parts match case-insensitively, either
// exactly or by a unique prefix, so "g:dur" is G with "Dur (Ionisch)".
func ParsePair(text string) (model.ScalePair, error) {
	key, mode, ok := strings.Cut(text, ":")
	if !ok {
		return model.ScalePair{}, fmt.Errorf("scales: %q is not KEY:MODE", text)
	}
	k, err := match(Keys, key, ErrUnknownKey)
	if err != nil {
		return model.ScalePair{}, err
	}
	m, err := match(Modes, mode, ErrUnknownMode)
	if err != nil {
		return model.ScalePair{}, err
	}
	return model.ScalePair{Key: k, Mode: m}, nil
}

func match(list []string, v string, notFound error) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "", fmt.Errorf("%w %q", notFound, v)
	}
	var hits []string
	for _, s := range list {
		l := strings.ToLower(s)
		if l == v {
			return s, nil
		}
		if strings.HasPrefix(l, v) {
			hits = append(hits, s)
		}
	}
	if len(hits) != 1 {
		return "", fmt.Errorf("%w %q", notFound, v)
	}
	return hits[0], nil
}

// TracksScales reports whether an exercise shows the scale selector: the
// flag is set, or its name or category mentions scales.
func TracksScales(e model.Exercise) bool {
	if e.HasScaleSelector {
		return true
	}
	for _, s := range []string{e.Name, e.Category} {
		l := strings.ToLower(s)
		if strings.Contains(l, "tonleiter") || strings.Contains(l, "scale") {
			return true
		}
	}
	return false
}
