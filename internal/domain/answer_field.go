package domain

// AnswerField is the editable answer draft with a caret.
// Start and End are rune offsets; Start == End means no selection.
type AnswerField struct {
	value []rune
	start int
	end   int
}

// NewAnswerField returns a field holding value with the caret at its end
func NewAnswerField(value string) AnswerField {
	runes := []rune(value)
	return AnswerField{value: runes, start: len(runes), end: len(runes)}
}

// Value returns the current text
func (f AnswerField) Value() string {
	return string(f.value)
}

// Caret returns the selection bounds
func (f AnswerField) Caret() (start, end int) {
	return f.start, f.end
}

// Select sets the selection, clamped to the text
func (f *AnswerField) Select(start, end int) {
	start = clamp(start, 0, len(f.value))
	end = clamp(end, 0, len(f.value))
	if end < start {
		start, end = end, start
	}
	f.start, f.end = start, end
}

// Insert replaces the selection with text and moves the caret after it
func (f *AnswerField) Insert(text string) {
	inserted := []rune(text)

	value := make([]rune, 0, len(f.value)-(f.end-f.start)+len(inserted))
	value = append(value, f.value[:f.start]...)
	value = append(value, inserted...)
	value = append(value, f.value[f.end:]...)

	f.value = value
	f.start += len(inserted)
	f.end = f.start
}

// Clear empties the field
func (f *AnswerField) Clear() {
	f.value = nil
	f.start, f.end = 0, 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
