package resolve

import "testing"

func TestPath(t *testing.T) {
	cases := []struct {
		header string
		root   string
		want   string
	}{
		{"", "/repo", ""},
		{"pkg/main.go", "", "pkg/main.go"},
		{"pkg/main.go", "/repo", "/repo/pkg/main.go"},
		{"./pkg/main.go", "/repo", "/repo/pkg/main.go"},
		{"/abs/path.go", "/repo", "/abs/path.go"},
		{"/abs/../path.go", "/repo", "/path.go"},
		{"a/../b.go", "/repo", "/repo/b.go"},
	}
	for _, tc := range cases {
		if got := Path(tc.header, tc.root); got != tc.want {
			t.Errorf("Path(%q, %q) = %q, want %q", tc.header, tc.root, got, tc.want)
		}
	}
}
