package planner

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"fanboxdl/pkg/fanbox"
)

func post(creator, published string) fanbox.PostSummary {
	return fanbox.PostSummary{CreatorID: creator, PublishedDatetime: published}
}

func TestBasePrefix(t *testing.T) {
	assert.Equal(t, "alice/2024-01-01", BasePrefix("alice", "2024-01-01T12:34:56+09:00"))
	assert.Equal(t, "alice/2024-01-01", BasePrefix("alice", "2024-01-01"))
	assert.Equal(t, "alice/", BasePrefix("alice", ""))
}

func TestCheckPost(t *testing.T) {
	tests := []struct {
		name    string
		post    fanbox.PostSummary
		wantErr bool
	}{
		{"plain", post("alice", "2024-01-01T00:00:00Z"), false},
		{"dotted name", post("a.lice", "2024-01-01T00:00:00Z"), false},
		{"no date", post("alice", ""), false},
		{"parent creator", post("..", "2024-01-01T00:00:00Z"), true},
		{"traversal creator", post("../x", "2024-01-01T00:00:00Z"), true},
		{"nested creator", post("a/b", "2024-01-01T00:00:00Z"), true},
		{"backslash creator", post(`a\b`, "2024-01-01T00:00:00Z"), true},
		{"current dir creator", post(".", "2024-01-01T00:00:00Z"), true},
		{"traversal date", post("alice", "../../etc"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPost(tt.post)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsafePath), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrefixesSameDayCollision(t *testing.T) {
	posts := []fanbox.PostSummary{
		post("A", "2024-01-01T10:00:00+09:00"),
		post("A", "2024-01-01T09:00:00+09:00"),
		post("A", "2024-01-02T10:00:00+09:00"),
	}

	assert.Equal(t, []string{
		"A/2024-01-01",
		"A/2024-01-01_1",
		"A/2024-01-02",
	}, Prefixes(posts, NumberingUnique))
}

func TestPrefixesNoCollisionHasNoSuffix(t *testing.T) {
	posts := []fanbox.PostSummary{
		post("A", "2024-01-03T00:00:00Z"),
		post("A", "2024-01-02T00:00:00Z"),
		post("B", "2024-01-02T00:00:00Z"),
	}

	for _, numbering := range []Numbering{NumberingUnique, NumberingLegacy} {
		assert.Equal(t, []string{"A/2024-01-03", "A/2024-01-02", "B/2024-01-02"}, Prefixes(posts, numbering))
	}
}

func TestPrefixesCounterIsGlobal(t *testing.T) {
	posts := []fanbox.PostSummary{
		post("A", "2024-01-05T00:00:00Z"),
		post("A", "2024-01-05T00:00:00Z"),
		post("A", "2024-01-04T00:00:00Z"),
		post("A", "2024-01-04T00:00:00Z"),
		post("A", "2024-01-03T00:00:00Z"),
		post("A", "2024-01-05T00:00:00Z"),
	}

	// The counter keeps climbing across date groups and is never reset
	assert.Equal(t, []string{
		"A/2024-01-05",
		"A/2024-01-05_1",
		"A/2024-01-04",
		"A/2024-01-04_2",
		"A/2024-01-03",
		"A/2024-01-05_3",
	}, Prefixes(posts, NumberingUnique))
}

func TestPrefixesLegacyNumbering(t *testing.T) {
	posts := []fanbox.PostSummary{
		post("A", "2024-01-01T10:00:00Z"),
		post("A", "2024-01-01T09:00:00Z"),
		post("A", "2024-01-02T10:00:00Z"),
	}
	assert.Equal(t, []string{
		"A/2024-01-01_1",
		"A/2024-01-01_2",
		"A/2024-01-02",
	}, Prefixes(posts, NumberingLegacy))

	// A unique date in between resets the counter and a prefix repeats
	posts = []fanbox.PostSummary{
		post("A", "2024-01-05T00:00:00Z"),
		post("A", "2024-01-04T00:00:00Z"),
		post("A", "2024-01-05T00:00:00Z"),
	}
	assert.Equal(t, []string{
		"A/2024-01-05_1",
		"A/2024-01-04",
		"A/2024-01-05_1",
	}, Prefixes(posts, NumberingLegacy))
}

func TestPrefixesEmpty(t *testing.T) {
	assert.Empty(t, Prefixes(nil, NumberingUnique))
	assert.Empty(t, Prefixes(nil, NumberingLegacy))
}

func TestPrefixesAlwaysUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	creators := []string{"A", "B"}

	for round := 0; round < 200; round++ {
		n := rng.Intn(30)
		posts := make([]fanbox.PostSummary, n)
		for i := range posts {
			day := rng.Intn(4) + 1
			posts[i] = post(creators[rng.Intn(len(creators))], fmt.Sprintf("2024-02-%02dT00:00:00Z", day))
		}

		prefixes := Prefixes(posts, NumberingUnique)
		seen := make(map[string]int, len(prefixes))
		for i, p := range prefixes {
			if j, dup := seen[p]; dup {
				t.Fatalf("round %d: prefix %q assigned to posts %d and %d", round, p, j, i)
			}
			seen[p] = i
		}
	}
}
