package match

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/hbollon/go-edlib"
)

// Metric weights for the blended score. The whole-string component catches
// small spelling differences; the token-set component handles word
// reordering and missing or extra words such as featured-artist suffixes.
const (
	wholeStringWeight = 0.55
	tokenSetWeight    = 0.45
)

var (
	bracketed    = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	apostrophes  = strings.NewReplacer("’", "", "‘", "", "'", "")
	nonAlphanum  = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	numberPrefix = regexp.MustCompile(`^\d{1,3}\s+`)
)

// Score compares two labels and returns a confidence in [0, 1].
//
// Score is symmetric, deterministic and pure. Identical labels after
// normalization score exactly 1.0; labels with no shared tokens score near
// zero; increasing token overlap increases the score monotonically.
//
// Both labels are normalized before comparison: case folding, apostrophe
// removal (curly and straight variants), bracketed annotation stripping,
// punctuation-to-space conversion and whitespace collapsing. A leading
// track-number prefix ("01 ", "03 - ") common in filenames is also tried
// stripped, on either side, and the best resulting comparison wins.
func Score(a, b string) float64 {
	variantsA := normalizeVariants(a)
	variantsB := normalizeVariants(b)

	best := 0.0
	for _, na := range variantsA {
		for _, nb := range variantsB {
			if s := blend(na, nb); s > best {
				best = s
			}
		}
	}
	return best
}

// blend combines whole-string and token-set similarity for two already
// normalized labels.
func blend(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	whole := levenshteinRatio(a, b)
	if jw, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler); err == nil && float64(jw) > whole {
		whole = float64(jw)
	}

	score := wholeStringWeight*whole + tokenSetWeight*tokenJaccard(a, b)
	if score > 1 {
		score = 1
	}
	return score
}

// levenshteinRatio returns edit similarity normalized to [0, 1].
func levenshteinRatio(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// tokenJaccard returns the Jaccard index of the two labels' token sets.
func tokenJaccard(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	shared := 0
	for token := range tokensA {
		if tokensB[token] {
			shared++
		}
	}
	union := len(tokensA) + len(tokensB) - shared
	return float64(shared) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, field := range strings.Fields(s) {
		set[field] = true
	}
	return set
}

// normalizeVariants returns the normalized label and, when the label starts
// with a numeric track prefix, the variant with that prefix removed.
func normalizeVariants(s string) []string {
	n := normalize(s)
	stripped := numberPrefix.ReplaceAllString(n, "")
	if stripped != n && stripped != "" {
		return []string{n, stripped}
	}
	return []string{n}
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = bracketed.ReplaceAllString(s, " ")
	s = apostrophes.Replace(s)
	s = nonAlphanum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
