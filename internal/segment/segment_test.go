package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "ascii", in: "abc", want: []string{"a", "b", "c"}},
		{name: "combining mark", in: "éx", want: []string{"é", "x"}},
		{name: "flag", in: "\U0001F1EB\U0001F1F7!", want: []string{"\U0001F1EB\U0001F1F7", "!"}},
		{name: "zwj family", in: "\U0001F468\u200d\U0001F469\u200d\U0001F467", want: []string{"\U0001F468\u200d\U0001F469\u200d\U0001F467"}},
		{name: "crlf is one cluster", in: "a\r\nb", want: []string{"a", "\r\n", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Graphemes(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), Count(tt.in))
		})
	}
}

func TestGraphemesConcatenation(t *testing.T) {
	in := "Héllo, wörld 👋🏽 ok"
	assert.Equal(t, in, strings.Join(Graphemes(in), ""))
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("HELLO  WORLD!")
	require.Len(t, tokens, 4)

	assert.Equal(t, Token{Text: "HELLO", Kind: KindWord, Graphemes: []string{"H", "E", "L", "L", "O"}}, tokens[0])
	assert.Equal(t, Token{Text: "  ", Kind: KindWhitespace, Graphemes: []string{" ", " "}}, tokens[1])
	assert.Equal(t, "WORLD", tokens[2].Text)
	assert.Equal(t, KindWord, tokens[2].Kind)
	assert.Equal(t, Token{Text: "!", Kind: KindOther, Graphemes: []string{"!"}}, tokens[3])
}

func TestTokenizePreservesText(t *testing.T) {
	inputs := []string{
		"one two  three",
		"  leading and trailing  ",
		"café, naïve; 42",
		"a-b c_d",
		"👋🏽 hi",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			var b strings.Builder
			for _, tok := range Tokenize(in) {
				assert.Equal(t, tok.Text, strings.Join(tok.Graphemes, ""))
				assert.NotEmpty(t, tok.Graphemes)
				b.WriteString(tok.Text)
			}
			assert.Equal(t, in, b.String())
		})
	}
}

func TestTokenizeWhitespaceMerges(t *testing.T) {
	tokens := Tokenize("a \t b")
	require.Len(t, tokens, 3)
	assert.Equal(t, KindWhitespace, tokens[1].Kind)
	assert.Equal(t, " \t ", tokens[1].Text)
	assert.Len(t, tokens[1].Graphemes, 3)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Nil(t, Tokenize(""))
	assert.Nil(t, Degraded(""))
}

func TestDegraded(t *testing.T) {
	tokens := Degraded("ab c")
	require.Len(t, tokens, 1)
	assert.Equal(t, KindOther, tokens[0].Kind)
	assert.Equal(t, []string{"a", "b", " ", "c"}, tokens[0].Graphemes)
}

func TestBuildTokensMisaligned(t *testing.T) {
	runes := []rune("ab")
	clusters := []span{{0, 2}}
	words := []span{{1, 2}}
	_, ok := buildTokens(runes, clusters, words)
	assert.False(t, ok)

	words = []span{{0, 1}}
	_, ok = buildTokens(runes, clusters, words)
	assert.False(t, ok)
}

func TestIsWhitespace(t *testing.T) {
	assert.True(t, IsWhitespace(" "))
	assert.True(t, IsWhitespace("\t"))
	assert.True(t, IsWhitespace(" "))
	assert.False(t, IsWhitespace(""))
	assert.False(t, IsWhitespace("a"))
	assert.False(t, IsWhitespace(" a"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "word", KindWord.String())
	assert.Equal(t, "whitespace", KindWhitespace.String())
	assert.Equal(t, "other", KindOther.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func BenchmarkTokenize(b *testing.B) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 5)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Tokenize(text)
	}
}
