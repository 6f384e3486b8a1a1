package observability

import "testing"

func TestParseHeaders(t *testing.T) {
	got := parseHeaders(" api-key = abc , broken, =x, team=photos ")
	if len(got) != 2 || got["api-key"] != "abc" || got["team"] != "photos" {
		t.Fatalf("unexpected headers: %v", got)
	}
	if parseHeaders("") != nil || parseHeaders("nothing") != nil {
		t.Fatalf("empty input must yield nil")
	}
}

func TestClampRatio(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0.25: 0.25, 3: 1}
	for in, want := range cases {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v): want=%v got=%v", in, want, got)
		}
	}
}
