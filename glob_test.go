package subpub

import "testing"

func TestMatch(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		pattern string
		want    bool
	}{
		{"literal exact", "news", "news", true},
		{"literal mismatch", "news", "newsx", false},
		{"question mark", "cat", "c?t", true},
		{"question mark needs a byte", "ct", "c?t", false},
		{"star matches middle", "user.42", "user.*", true},
		{"star matches empty", "user.", "user.*", true},
		{"star does not cross missing prefix", "users.42", "user.*", false},
		{"double star same as single", "axxxb", "a**b", true},
		{"double star zero length", "ab", "a**b", true},
		{"class range", "c", "[a-d]", true},
		{"class range miss", "z", "[a-d]", false},
		{"class negation", "z", "[^a-d]", true},
		{"class negation miss", "c", "[^a-d]", false},
		{"class literal close bracket first", "]", "[]abc]", true},
		{"class literal close bracket first, other member", "b", "[]abc]", true},
		{"class literal close bracket first, miss", "x", "[]abc]", false},
		{"escaped star literal", "a*b", `a\*b`, true},
		{"escaped star literal miss", "axb", `a\*b`, false},
		{"unterminated class never matches", "a", "[ab", false},
		{"dangling escape never matches", "a", `a\`, false},
		{"trailing star matches rest", "anything.goes.here", "anything.*", true},
		{"pattern longer than data", "a", "ab", false},
		{"data longer than pattern", "ab", "a", false},
		{"empty pattern empty data", "", "", true},
		{"empty pattern nonempty data", "x", "", false},
		{"star alone matches everything", "whatever", "*", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Match([]byte(c.data), []byte(c.pattern))
			if got != c.want {
				t.Errorf("Match(%q, %q) = %v, want %v", c.data, c.pattern, got, c.want)
			}
		})
	}
}
