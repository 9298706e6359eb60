// Package hash produces canonical JSON encodings and SHA-256 digests used to
// make layouts content-addressable.
package hash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCyclicValue is returned when a value cannot be canonicalized because it
// refers to itself.
var ErrCyclicValue = errors.New("cyclic value")

// ErrUnsupportedValue is returned for values with no JSON representation,
// such as channels, functions, NaN or infinities.
var ErrUnsupportedValue = errors.New("unsupported value")

// DigestLen is the length of a hex encoded SHA-256 digest.
const DigestLen = sha256.Size * 2

// Canonicalize returns the canonical JSON encoding of v: object keys sorted
// by code point at every depth, no insignificant whitespace, strings escaped
// with the standard JSON escapes only (HTML characters are kept verbatim) and
// numbers in their shortest round-trip form.
func Canonicalize(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", classify(err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}

	var buf bytes.Buffer
	if err := encode(&buf, generic); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Digest returns the lowercase hex SHA-256 of the UTF-8 bytes of s.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// DigestValue canonicalizes v and returns the digest of the encoding.
func DigestValue(v any) (string, error) {
	c, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	return Digest(c), nil
}

// IsDigest reports whether s is a 64 character lowercase hex string.
func IsDigest(s string) bool {
	if len(s) != DigestLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func classify(err error) error {
	var unsupported *json.UnsupportedValueError
	if errors.As(err, &unsupported) && strings.Contains(unsupported.Str, "cycle") {
		return fmt.Errorf("%w: %v", ErrCyclicValue, err)
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
}

func encode(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(canonicalNumber(t))
	case string:
		return encodeString(buf, t)
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encode(buf, t[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

// canonicalNumber keeps integers verbatim and reformats everything else
// through float64 so 1.0 and 1e0 hash identically.
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return fmt.Sprint(i)
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if f == float64(int64(f)) && f > -1e15 && f < 1e15 {
		return fmt.Sprint(int64(f))
	}
	b, _ := json.Marshal(f)
	return string(b)
}
