package workflow

import "testing"

func TestSplitAnswerKey(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		body   string
		answer string
	}{
		{
			name:   "delimiter present",
			in:     "Dinosaurs were big.\n---\nA1: T-rex\n",
			body:   "Dinosaurs were big.",
			answer: "A1: T-rex",
		},
		{
			name:   "no delimiter",
			in:     "  Dinosaurs were big.  ",
			body:   "Dinosaurs were big.",
			answer: "",
		},
		{
			name:   "empty input",
			in:     "",
			body:   "",
			answer: "",
		},
		{
			name:   "delimiter only",
			in:     "---",
			body:   "",
			answer: "",
		},
		{
			name:   "splits at first delimiter",
			in:     "lesson --- quiz --- answers",
			body:   "lesson",
			answer: "quiz --- answers",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, answer := SplitAnswerKey(tc.in)
			if body != tc.body {
				t.Fatalf("body: got %q, want %q", body, tc.body)
			}
			if answer != tc.answer {
				t.Fatalf("answer: got %q, want %q", answer, tc.answer)
			}
		})
	}
}
