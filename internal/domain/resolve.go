package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ResolutionKind tags the outcome of resolving one recipient token.
type ResolutionKind string

const (
	Resolved  ResolutionKind = "resolved"
	NotFound  ResolutionKind = "not_found"
	Ambiguous ResolutionKind = "ambiguous"
)

// ResolutionResult is the outcome of resolving a single token. Exactly one
// of the non-Token fields is meaningful per kind: DestinationID when
// Resolved, Candidates when Ambiguous.
type ResolutionResult struct {
	Kind          ResolutionKind
	Token         string
	DestinationID string
	Candidates    []string
}

// Resolve turns a free-text token into a destination. Tokens already
// prefixed with "@" or "#" are taken as-is with no directory lookup or
// existence check; a bad explicit handle surfaces at dispatch time instead.
//
// Bare tokens are compiled as case-insensitive regular expressions and
// matched as substrings, so metacharacters in the token are live pattern
// syntax, not literal text. Each destination's display name is tried first;
// the real name is consulted only when the display name does not match and
// a real name exists. One candidate resolves, none is NotFound, several is
// Ambiguous with every candidate listed so the caller can report rather
// than guess.
func Resolve(token string, directory []Destination) (ResolutionResult, error) {
	if strings.HasPrefix(token, "@") || strings.HasPrefix(token, "#") {
		return ResolutionResult{Kind: Resolved, Token: token, DestinationID: token}, nil
	}

	pattern, err := regexp.Compile("(?i)" + token)
	if err != nil {
		return ResolutionResult{}, fmt.Errorf("compile recipient pattern %q: %w", token, err)
	}

	var candidates []string
	for _, d := range directory {
		if pattern.MatchString(d.DisplayName) {
			candidates = append(candidates, d.ID)
			continue
		}
		if d.RealName != "" && pattern.MatchString(d.RealName) {
			candidates = append(candidates, d.ID)
		}
	}

	switch len(candidates) {
	case 0:
		return ResolutionResult{Kind: NotFound, Token: token}, nil
	case 1:
		return ResolutionResult{Kind: Resolved, Token: token, DestinationID: candidates[0]}, nil
	default:
		return ResolutionResult{Kind: Ambiguous, Token: token, Candidates: candidates}, nil
	}
}
