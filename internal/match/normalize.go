package match

import "strings"

var punctStripper = strings.NewReplacer(",", "", "'", "", ":", "", "-", "", ".", "")

// Normalize lowercases a title and strips the punctuation marks , ' : - .
// so "Dr. Strangelove" and "dr strangelove" compare equal.
func Normalize(title string) string {
	return strings.TrimSpace(punctStripper.Replace(strings.ToLower(title)))
}

// Similarity is a longest-common-subsequence ratio in [0,1]:
// 2*LCS(a,b) / (len(a)+len(b)). Two empty strings score 1.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra)+len(rb) == 0 {
		return 1
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return 2 * float64(prev[len(rb)]) / float64(len(ra)+len(rb))
}
