package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Embed hosts hide their player config inside a Dean Edwards style packed
// script: eval(function(p,a,c,k,e,d){...}('payload',base,count,'words'.split('|'),...)).
// The packer substitutes every word of the payload with its index encoded
// in base `a`; unpacking is a pure dictionary substitution, so the blob is
// decoded here as a string transformation instead of being executed.

var (
	packedRe  = regexp.MustCompile(`(?s)eval\(function\(p,a,c,k,e,(?:d|r)\).*?\}\s*\(\s*'(.*?)'\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*'(.*?)'\s*\.split\('\|'\)`)
	wordRe    = regexp.MustCompile(`\b\w+\b`)
	packedSig = "eval(function(p,a,c,k,e,"
)

// IsPacked reports whether the page contains a packed script payload.
func IsPacked(page string) bool {
	return strings.Contains(page, packedSig)
}

// Unpack locates the packed payload in page and decodes it. It fails when
// no payload is present or the payload's parameters are inconsistent.
func Unpack(page string) (string, error) {
	m := packedRe.FindStringSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("no packed script payload found")
	}

	payload := unescapePayload(m[1])
	base, err := strconv.Atoi(m[2])
	if err != nil || base < 2 || base > 62 {
		return "", fmt.Errorf("invalid packer base %q", m[2])
	}
	count, err := strconv.Atoi(m[3])
	if err != nil || count < 0 {
		return "", fmt.Errorf("invalid packer word count %q", m[3])
	}
	words := strings.Split(m[4], "|")
	if len(words) < count {
		return "", fmt.Errorf("packer dictionary has %d words, header claims %d", len(words), count)
	}

	dict := make(map[string]string, count)
	for i := 0; i < count; i++ {
		if words[i] != "" {
			dict[encodeIndex(i, base)] = words[i]
		}
	}

	unpacked := wordRe.ReplaceAllStringFunc(payload, func(tok string) string {
		if w, ok := dict[tok]; ok {
			return w
		}
		return tok
	})

	return unpacked, nil
}

// encodeIndex reproduces the packer's index encoding: base-36 digits for
// values below 36, then uppercase letters for the 36..61 range.
func encodeIndex(n, base int) string {
	digit := func(d int) string {
		if d > 35 {
			return string(rune(d + 29)) // 36 -> 'A'
		}
		return strconv.FormatInt(int64(d), 36)
	}

	if n < base {
		return digit(n)
	}
	return encodeIndex(n/base, base) + digit(n%base)
}

// unescapePayload reverses the escaping applied to the quoted payload.
func unescapePayload(s string) string {
	s = strings.ReplaceAll(s, `\'`, `'`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
