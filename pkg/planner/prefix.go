package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"fanboxdl/pkg/fanbox"
)

// Numbering selects how posts sharing a creator and date are told apart
type Numbering int

const (
	// NumberingUnique leaves the first post of a date bare and numbers every
	// later one from a counter shared by the whole listing. Prefixes are
	// always unique.
	NumberingUnique Numbering = iota

	// NumberingLegacy numbers every post of a shared date, including the
	// first, and resets the counter on each post whose date is unique.
	// Two groups of the same date separated by another post reuse suffixes.
	NumberingLegacy
)

// ErrUnsafePath is returned for a post whose creator id or date is not a
// single path component below the output directory
var ErrUnsafePath = errors.New("unsafe path component")

// CheckPost verifies that the creator id and publish date of p can be used
// as path components. Both come from the API and are not trusted.
func CheckPost(p fanbox.PostSummary) error {
	date, _, _ := strings.Cut(p.PublishedDatetime, "T")
	if err := checkComponent(p.CreatorID); err != nil {
		return fmt.Errorf("creator id %q: %w", p.CreatorID, err)
	}
	if err := checkComponent(date); err != nil {
		return fmt.Errorf("publish date %q: %w", date, err)
	}
	return nil
}

func checkComponent(s string) error {
	switch {
	case s == ".", strings.Contains(s, ".."), strings.ContainsAny(s, `/\`):
		return ErrUnsafePath
	}
	return nil
}

// BasePrefix returns "{creatorID}/{date}" where date is the part of the
// publish timestamp before the first "T".
func BasePrefix(creatorID, publishedDatetime string) string {
	date, _, _ := strings.Cut(publishedDatetime, "T")
	return creatorID + "/" + date
}

// prefixState is the accumulator threaded through one pass over a listing
type prefixState struct {
	seen    map[string]bool
	counter int
}

// Prefixes assigns each post its destination path stem, in listing order.
func Prefixes(posts []fanbox.PostSummary, numbering Numbering) []string {
	bases := lo.Map(posts, func(p fanbox.PostSummary, _ int) string {
		return BasePrefix(p.CreatorID, p.PublishedDatetime)
	})

	if numbering == NumberingLegacy {
		return legacyPrefixes(bases)
	}

	prefixes := make([]string, len(bases))
	state := prefixState{seen: make(map[string]bool, len(bases))}
	for i, base := range bases {
		prefixes[i], state = nextPrefix(state, base)
	}
	return prefixes
}

func nextPrefix(state prefixState, base string) (string, prefixState) {
	if !state.seen[base] {
		state.seen[base] = true
		return base, state
	}
	state.counter++
	return base + "_" + strconv.Itoa(state.counter), state
}

func legacyPrefixes(bases []string) []string {
	counts := lo.CountValues(bases)

	prefixes := make([]string, len(bases))
	counter := 0
	for i, base := range bases {
		if counts[base] > 1 {
			counter++
		} else {
			counter = 0
		}

		prefixes[i] = base
		if counter != 0 {
			prefixes[i] += "_" + strconv.Itoa(counter)
		}
	}
	return prefixes
}
