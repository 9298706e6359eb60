// Package segment splits text into user-perceived characters and word-wrap
// tokens following Unicode UAX #29, backed by go-text's segmenter.
package segment

import "unicode"

// Kind classifies a word-wrap token.
type Kind int

// Token kinds.
const (
	KindWord Kind = iota
	KindWhitespace
	KindOther
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindWhitespace:
		return "whitespace"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Token is a run of graphemes that word wrap treats as a unit.
type Token struct {
	Text      string
	Kind      Kind
	Graphemes []string
}

// Tokenizer produces word-wrap tokens for a paragraph.
type Tokenizer func(text string) []Token

// span is a half-open rune range.
type span struct {
	start, end int
}

// Graphemes returns the extended grapheme clusters of text in order.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func Graphemes(text string) []string {
	if text == "" {
		return nil
	}

	seg := acquireSegmenter()
	defer releaseSegmenter(seg)

	seg.InitWithString(text)
	var out []string
	iter := seg.GraphemeIterator()
	for iter.Next() {
		out = append(out, string(iter.Grapheme().Text))
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}

	seg := acquireSegmenter()
	defer releaseSegmenter(seg)

	seg.InitWithString(text)
	n := 0
	iter := seg.GraphemeIterator()
	for iter.Next() {
		n++
	}
	return n
}

// Tokenize splits text on UAX #29 word boundaries. Word-like segments
// (letters, numbers) become KindWord tokens, consecutive whitespace graphemes
// merge into one KindWhitespace token, and every other grapheme becomes its
// own KindOther token.
//
// If the word boundaries do not line up with grapheme boundaries the whole
// input degrades to a single KindOther token (see Degraded), which makes the
// layout engine fall back to character-level splitting.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	seg := acquireSegmenter()
	defer releaseSegmenter(seg)

	runes := []rune(text)
	seg.Init(runes)

	var clusters []span
	giter := seg.GraphemeIterator()
	for giter.Next() {
		g := giter.Grapheme()
		clusters = append(clusters, span{g.Offset, g.Offset + len(g.Text)})
	}

	var words []span
	witer := seg.WordIterator()
	for witer.Next() {
		w := witer.Word()
		words = append(words, span{w.Offset, w.Offset + len(w.Text)})
	}

	tokens, ok := buildTokens(runes, clusters, words)
	if !ok {
		return Degraded(text)
	}
	return tokens
}

// Degraded returns text as one KindOther token. It is the fallback used when
// word segmentation cannot be trusted.
func Degraded(text string) []Token {
	if text == "" {
		return nil
	}
	return []Token{{Text: text, Kind: KindOther, Graphemes: Graphemes(text)}}
}

func buildTokens(runes []rune, clusters, words []span) ([]Token, bool) {
	var tokens []Token
	w := 0
	for i := 0; i < len(clusters); {
		c := clusters[i]
		if w < len(words) && c.start > words[w].start {
			// A word started inside a grapheme cluster.
			return nil, false
		}

		if w < len(words) && c.start == words[w].start {
			j := i
			for j < len(clusters) && clusters[j].end <= words[w].end {
				j++
			}
			if j == i || clusters[j-1].end != words[w].end {
				return nil, false
			}
			tokens = append(tokens, newToken(runes, clusters[i:j], KindWord))
			w++
			i = j
			continue
		}

		g := string(runes[c.start:c.end])
		if IsWhitespace(g) {
			if n := len(tokens); n > 0 && tokens[n-1].Kind == KindWhitespace {
				tokens[n-1].Text += g
				tokens[n-1].Graphemes = append(tokens[n-1].Graphemes, g)
				i++
				continue
			}
			tokens = append(tokens, Token{Text: g, Kind: KindWhitespace, Graphemes: []string{g}})
			i++
			continue
		}

		tokens = append(tokens, Token{Text: g, Kind: KindOther, Graphemes: []string{g}})
		i++
	}
	if w != len(words) {
		return nil, false
	}
	return tokens, true
}

func newToken(runes []rune, clusters []span, kind Kind) Token {
	graphemes := make([]string, len(clusters))
	for k, c := range clusters {
		graphemes[k] = string(runes[c.start:c.end])
	}
	start, end := clusters[0].start, clusters[len(clusters)-1].end
	return Token{Text: string(runes[start:end]), Kind: kind, Graphemes: graphemes}
}

// IsWhitespace reports whether g is non-empty and consists only of
// whitespace code points.
func IsWhitespace(g string) bool {
	if g == "" {
		return false
	}
	for _, r := range g {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
