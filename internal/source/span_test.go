package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 9}, Span{File: 1, Start: 2, End: 9}},
		{"nested", Span{File: 1, Start: 0, End: 10}, Span{File: 1, Start: 3, End: 4}, Span{File: 1, Start: 0, End: 10}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 5, End: 20}
	if !outer.Contains(Span{File: 0, Start: 5, End: 20}) {
		t.Fatalf("span must contain itself")
	}
	if outer.Contains(Span{File: 0, Start: 4, End: 6}) {
		t.Fatalf("span leaking to the left must not be contained")
	}
	if outer.Contains(Span{File: 1, Start: 6, End: 7}) {
		t.Fatalf("span from another file must not be contained")
	}
	if got := outer.Head(); got.Len() != 0 || got.Start != 5 {
		t.Fatalf("Head() = %v", got)
	}
}
