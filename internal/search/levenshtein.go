package search

// Levenshtein returns the character-level edit distance between a and b,
// computed with the classic dynamic-programming recurrence in
// O(len(a)*len(b)) time. Adjacent transpositions count as a single edit,
// so the common misspelling "teh" is one edit from "the".
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	rows := make([][]int, len(ra)+1)
	for i := range rows {
		rows[i] = make([]int, len(rb)+1)
		rows[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		rows[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			distance := min(
				rows[i-1][j]+1,      // deletion
				rows[i][j-1]+1,      // insertion
				rows[i-1][j-1]+cost, // substitution
			)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				distance = min(distance, rows[i-2][j-2]+1) // transposition
			}
			rows[i][j] = distance
		}
	}
	return rows[len(ra)][len(rb)]
}
