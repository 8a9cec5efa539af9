// Package branch turns remote-tracking branch names into deploy candidates.
//
// Two filter modes exist. Prefix mode keeps a branch equal to the prefix or
// nested below it ("deploy", "deploy/staging"). Pattern mode compares
// '/'-separated segments one by one, where a segment of exactly "*" matches
// any single segment and the segment counts must agree.
package branch

import (
	"strings"

	pderrors "github.com/penwyp/pushdeploy/internal/errors"
)

// Separator splits branch names into segments.
const Separator = "/"

// Wildcard matches exactly one segment in pattern mode.
const Wildcard = "*"

// StripRemote removes a leading "<remote>/" from every name. Names without
// that prefix are returned unchanged. Order is preserved.
func StripRemote(remote string, names []string) []string {
	prefix := remote + Separator
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, strings.TrimPrefix(name, prefix))
	}
	return out
}

// Match reports whether candidate matches pattern segment by segment.
func Match(pattern, candidate []string) bool {
	if len(pattern) != len(candidate) {
		return false
	}
	for i, segment := range pattern {
		if segment != Wildcard && segment != candidate[i] {
			return false
		}
	}
	return true
}

// MatchPattern splits both arguments on "/" and calls Match.
func MatchPattern(pattern, name string) bool {
	return Match(strings.Split(pattern, Separator), strings.Split(name, Separator))
}

// MatchPrefix reports whether name equals prefix or starts with prefix + "/".
func MatchPrefix(prefix, name string) bool {
	return name == prefix || strings.HasPrefix(name, prefix+Separator)
}

// Filter selects deploy candidates from bare branch names.
//
// A non-empty target selects pattern mode; zero matches then yield an empty,
// error-free result. Otherwise prefix mode applies and zero matches is a
// selection error naming remote and prefix.
func Filter(names []string, remote, prefix, target string) ([]string, error) {
	var candidates []string

	if target != "" {
		pattern := strings.Split(target, Separator)
		for _, name := range names {
			if Match(pattern, strings.Split(name, Separator)) {
				candidates = append(candidates, name)
			}
		}
		return candidates, nil
	}

	for _, name := range names {
		if MatchPrefix(prefix, name) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return nil, pderrors.Newf(pderrors.ErrTypeSelection,
			"Not a single deploy branch found in %q starting with %s.", remote, prefix).
			WithSuggestion("Create one with: git push " + remote + " HEAD:" + prefix + Separator + "<name>")
	}
	return candidates, nil
}
