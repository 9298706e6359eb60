// Package fonts holds the allowlist of font families the stylization backend
// can reproduce. The table is built once at init and only exposed through
// read-only accessors; returned entries are copies.
package fonts

import (
	"sort"

	"golang.org/x/text/cases"
)

// Category groups families by visual role.
type Category string

// Font categories.
const (
	CategorySans    Category = "sans-serif"
	CategorySerif   Category = "serif"
	CategoryDisplay Category = "display"
	CategoryMono    Category = "monospace"
	CategoryPixel   Category = "pixel"
)

// Generic returns the CSS generic family used as a fallback for c.
func (c Category) Generic() string {
	switch c {
	case CategorySerif:
		return "serif"
	case CategoryMono, CategoryPixel:
		return "monospace"
	default:
		return "sans-serif"
	}
}

// Font styles.
const (
	StyleNormal = "normal"
	StyleItalic = "italic"
)

// Entry describes one allowlisted family.
type Entry struct {
	Family      string   `json:"family"`
	Weights     []int    `json:"weights"`
	Styles      []string `json:"styles"`
	Category    Category `json:"category"`
	DisplayName string   `json:"displayName"`
}

// Spec selects a concrete face from the registry.
type Spec struct {
	Family string `json:"family" yaml:"family"`
	Weight int    `json:"weight" yaml:"weight"`
	Style  string `json:"style" yaml:"style"`
	Size   int    `json:"size" yaml:"size"`
}

// DefaultSize is the font size used by Default.
const DefaultSize = 48

var (
	upright    = []string{StyleNormal}
	bothStyles = []string{StyleNormal, StyleItalic}
)

var allowlist = []Entry{
	{Family: "Inter", Weights: []int{400, 500, 600, 700, 800, 900}, Styles: upright, Category: CategorySans, DisplayName: "Inter"},
	{Family: "Roboto", Weights: []int{300, 400, 500, 700, 900}, Styles: bothStyles, Category: CategorySans, DisplayName: "Roboto"},
	{Family: "Montserrat", Weights: []int{400, 500, 600, 700, 800, 900}, Styles: bothStyles, Category: CategorySans, DisplayName: "Montserrat"},
	{Family: "Poppins", Weights: []int{400, 500, 600, 700, 800}, Styles: bothStyles, Category: CategorySans, DisplayName: "Poppins"},
	{Family: "Bebas Neue", Weights: []int{400}, Styles: upright, Category: CategoryDisplay, DisplayName: "Bebas Neue"},
	{Family: "Bangers", Weights: []int{400}, Styles: upright, Category: CategoryDisplay, DisplayName: "Bangers"},
	{Family: "Luckiest Guy", Weights: []int{400}, Styles: upright, Category: CategoryDisplay, DisplayName: "Luckiest Guy"},
	{Family: "Lilita One", Weights: []int{400}, Styles: upright, Category: CategoryDisplay, DisplayName: "Lilita One"},
	{Family: "Fredoka", Weights: []int{400, 500, 600, 700}, Styles: upright, Category: CategoryDisplay, DisplayName: "Fredoka"},
	{Family: "Orbitron", Weights: []int{400, 500, 700, 900}, Styles: upright, Category: CategoryDisplay, DisplayName: "Orbitron"},
	{Family: "Cinzel", Weights: []int{400, 700, 900}, Styles: upright, Category: CategorySerif, DisplayName: "Cinzel"},
	{Family: "Merriweather", Weights: []int{400, 700, 900}, Styles: bothStyles, Category: CategorySerif, DisplayName: "Merriweather"},
	{Family: "JetBrains Mono", Weights: []int{400, 700}, Styles: bothStyles, Category: CategoryMono, DisplayName: "JetBrains Mono"},
	{Family: "Press Start 2P", Weights: []int{400}, Styles: upright, Category: CategoryPixel, DisplayName: "Press Start 2P"},
	{Family: "Pixelify Sans", Weights: []int{400, 500, 600, 700}, Styles: upright, Category: CategoryPixel, DisplayName: "Pixelify Sans"},
}

// defaultFamily must be present in allowlist.
const defaultFamily = "Inter"

// byKey indexes allowlist by case-folded family name.
var byKey = func() map[string]int {
	m := make(map[string]int, len(allowlist))
	for i, e := range allowlist {
		m[foldKey(e.Family)] = i
	}
	return m
}()

// foldKey case-folds a family name. Casers are stateful, so one is built per call.
func foldKey(family string) string {
	return cases.Fold().String(family)
}

// IsAllowlisted reports whether family is a registered font family.
// Matching is case-insensitive.
func IsAllowlisted(family string) bool {
	_, ok := byKey[foldKey(family)]
	return ok
}

// Lookup returns the registry entry for family.
func Lookup(family string) (Entry, bool) {
	i, ok := byKey[foldKey(family)]
	if !ok {
		return Entry{}, false
	}
	return allowlist[i].clone(), true
}

// IsWeightAvailable reports whether family ships the given weight.
func IsWeightAvailable(family string, weight int) bool {
	i, ok := byKey[foldKey(family)]
	if !ok {
		return false
	}
	for _, w := range allowlist[i].Weights {
		if w == weight {
			return true
		}
	}
	return false
}

// IsStyleAvailable reports whether family ships the given style.
func IsStyleAvailable(family, style string) bool {
	i, ok := byKey[foldKey(family)]
	if !ok {
		return false
	}
	for _, s := range allowlist[i].Styles {
		if s == style {
			return true
		}
	}
	return false
}

// Families returns the canonical family names, sorted.
func Families() []string {
	out := make([]string, 0, len(allowlist))
	for _, e := range allowlist {
		out = append(out, e.Family)
	}
	sort.Strings(out)
	return out
}

// Entries returns copies of every registry entry, sorted by family.
func Entries() []Entry {
	out := make([]Entry, 0, len(allowlist))
	for _, e := range allowlist {
		out = append(out, e.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Family < out[j].Family })
	return out
}

// Default returns the font used when a request omits one.
func Default() Spec {
	e := allowlist[byKey[foldKey(defaultFamily)]]
	return Spec{
		Family: e.Family,
		Weight: 700,
		Style:  StyleNormal,
		Size:   DefaultSize,
	}
}

// Canonical returns the registry spelling of family, or family unchanged
// when it is not registered.
func Canonical(family string) string {
	if i, ok := byKey[foldKey(family)]; ok {
		return allowlist[i].Family
	}
	return family
}

func (e Entry) clone() Entry {
	e.Weights = append([]int(nil), e.Weights...)
	e.Styles = append([]string(nil), e.Styles...)
	return e
}
