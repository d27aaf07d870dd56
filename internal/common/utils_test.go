package common

import "testing"

func TestContainsFold(t *testing.T) {
	cases := []struct {
		s, substr string
		want      bool
	}{
		{"Seoul", "seoul", true},
		{"seoul", "SEO", true},
		{"종로구", "종로", true},
		{"Seoul", "busan", false},
		{"", "x", false},
		{"Seoul", "", true},
	}
	for _, tc := range cases {
		if got := ContainsFold(tc.s, tc.substr); got != tc.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", tc.s, tc.substr, got, tc.want)
		}
	}
}

func TestAnyContainsFold(t *testing.T) {
	segments := []string{"Seoul", "Jongno", "Cheongun"}

	if !AnyContainsFold(segments, "jongno") {
		t.Error("expected a middle-segment match")
	}
	if AnyContainsFold(segments, "Busan") {
		t.Error("unexpected match")
	}
	if AnyContainsFold(nil, "Seoul") {
		t.Error("no segments should never match")
	}
}
