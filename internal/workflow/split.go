package workflow

import "strings"

// AnswerDelimiter separates the lesson/quiz body from the answer key in
// generated material text. It is a wire contract with the generative
// model: well-formed output contains it, and output without it degrades to
// body-only with an empty answer key.
const AnswerDelimiter = "---"

// SplitAnswerKey splits generated text at the first answer delimiter.
// The body is everything before the delimiter and the answer key is
// everything after, both trimmed. When the delimiter is absent the whole
// trimmed text is the body and the answer key is empty.
func SplitAnswerKey(text string) (body, answerKey string) {
	before, after, found := strings.Cut(text, AnswerDelimiter)
	if !found {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
