package pubmed

// Merge unions two parse results: the tables are concatenated and exact
// duplicate rows (all columns equal) are removed keeping the first
// occurrence. Result order is the left operand's rows followed by the
// right operand's non-duplicate rows. Folding Merge left-to-right over a
// file list is deterministic; operand order can change row order but never
// row content.
func Merge(a, b Tables) Tables {
	return Tables{
		Articles: dedupe(a.Articles, b.Articles),
		Authors:  dedupe(a.Authors, b.Authors),
		Keywords: dedupe(a.Keywords, b.Keywords),
	}
}

// dedupe concatenates left and right keeping the first occurrence of each
// distinct row.
func dedupe[T comparable](left, right []T) []T {
	seen := make(map[T]struct{}, len(left)+len(right))
	out := make([]T, 0, len(left)+len(right))
	for _, rows := range [][]T{left, right} {
		for _, row := range rows {
			if _, ok := seen[row]; ok {
				continue
			}
			seen[row] = struct{}{}
			out = append(out, row)
		}
	}
	return out
}
