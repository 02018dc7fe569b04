package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// SplitList splits a ';' separated column value into trimmed, non-empty parts.
func SplitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ";") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// JoinList is the inverse of SplitList. Empty input yields "".
func JoinList(items []string) string {
	return strings.Join(items, ";")
}

// SplitIDList parses a ';' separated list of numeric ids, skipping anything unparsable.
func SplitIDList(raw string) []int64 {
	out := []int64{}
	for _, p := range SplitList(raw) {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// JoinIDList renders ids as a ';' separated list.
func JoinIDList(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return JoinList(parts)
}

// PagerNumberMask normalizes an OPID into its collision mask: lower case,
// letters and digits only. "Dr.Smith-1" and "drsmith1" share a mask.
func PagerNumberMask(opid string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(opid) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
