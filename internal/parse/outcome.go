package parse

// Outcome is the structured result of parsing one tool run: the identifiers
// the tool reports as newly created and the identifiers it left untouched
// because a destination already existed. An item belongs to exactly one of
// the two sequences; both sequences empty is the no-match failure state,
// never a valid success.
type Outcome struct {
	Added   []string
	Skipped []string
}

// Empty reports the terminal no-match state.
func (o Outcome) Empty() bool {
	return len(o.Added) == 0 && len(o.Skipped) == 0
}

// HasSkips reports whether any item was skipped as a duplicate.
func (o Outcome) HasSkips() bool {
	return len(o.Skipped) > 0
}

// Merge appends the other outcome's sequences, preserving order.
func (o Outcome) Merge(other Outcome) Outcome {
	return Outcome{
		Added:   append(append([]string(nil), o.Added...), other.Added...),
		Skipped: append(append([]string(nil), o.Skipped...), other.Skipped...),
	}
}
