package pattern

import (
	"testing"

	"github.com/treepath/treepath/tree"
)

func cand(n *tree.Node, pos, siblings int) Candidate {
	return Candidate{Node: n, Pos: pos, Siblings: siblings}
}

func TestSegmentMatchesByKind(t *testing.T) {
	file := tree.New("main.py", tree.Attr("type", "file"), tree.Attr("size", int64(42)))
	dir := tree.New("src", tree.Attr("type", "dir"))

	cases := []struct {
		raw  string
		node *tree.Node
		want bool
	}{
		{"src", dir, true},
		{"*", file, true},
		{"~py$", file, true},
		{"~^main", file, true},
		{"~^src$", file, false},
		{"[type=file]", file, true},
		{"[type=file]", dir, false},
		{"[type=file,size=42]", file, true},
		{"[type=file,size=43]", file, false},
		{"%main.py:0.9", file, true},
		// "man.py" vs "main.py": 2*6/13 ≈ 0.923
		{"%man.py:0.9", file, true},
		{"%man.py:0.95", file, false},
		{"%docs:0.9", file, false},
	}
	for _, tst := range cases {
		seg, err := Compile(tst.raw)
		if err != nil {
			t.Errorf("Compile(%q): %v", tst.raw, err)
			continue
		}
		if got := seg.Matches(cand(tst.node, 0, 1)); got != tst.want {
			t.Errorf("%q.Matches(%s) = %v, want %v", tst.raw, tst.node.Name(), got, tst.want)
		}
	}
}

func TestSegmentGlob(t *testing.T) {
	seg, err := Compile("test_*")
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]bool{
		"test_models": true,
		"test_":       true,
		"tests":       false,
		"a_test_b":    false,
	} {
		if got := seg.Matches(cand(tree.New(name), 0, 1)); got != want {
			t.Errorf("test_* vs %q = %v, want %v", name, got, want)
		}
	}
	seg, err = Compile("*txt")
	if err != nil {
		t.Fatal(err)
	}
	if !seg.Matches(cand(tree.New("notes txt"), 0, 1)) {
		t.Error("*txt should match a txt suffix")
	}
	if seg.Matches(cand(tree.New("txt file"), 0, 1)) {
		t.Error("*txt should not match a txt prefix")
	}
}

func TestSegmentNamePrefix(t *testing.T) {
	seg, err := Compile("user[type=admin]")
	if err != nil {
		t.Fatal(err)
	}
	admin := tree.New("user", tree.Attr("type", "admin"))
	other := tree.New("group", tree.Attr("type", "admin"))
	if !seg.Matches(cand(admin, 0, 1)) {
		t.Error("prefixed attribute filter should match")
	}
	if seg.Matches(cand(other, 0, 1)) {
		t.Error("prefixed attribute filter must check the name")
	}
}

func TestSegmentIndex(t *testing.T) {
	seg, err := Compile("[1]")
	if err != nil {
		t.Fatal(err)
	}
	n := tree.New("x")
	if seg.Matches(cand(n, 0, 3)) || !seg.Matches(cand(n, 1, 3)) {
		t.Error("index filter selects the wrong position")
	}
	seg, err = Compile("[-1]")
	if err != nil {
		t.Fatal(err)
	}
	if !seg.Matches(cand(n, 2, 3)) || seg.Matches(cand(n, 0, 3)) {
		t.Error("negative index filter selects the wrong position")
	}
}

func TestSegmentSlice(t *testing.T) {
	n := tree.New("x")
	cases := []struct {
		raw  string
		hits []int
	}{
		{"[0:2]", []int{0, 1}},
		{"[1:]", []int{1, 2, 3}},
		{"[:2]", []int{0, 1}},
		{"[::2]", []int{0, 2}},
		{"[-2:]", []int{2, 3}},
		{"[3:0:-1]", []int{1, 2, 3}},
	}
	for _, tst := range cases {
		seg, err := Compile(tst.raw)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tst.raw, err)
		}
		var got []int
		for pos := 0; pos < 4; pos++ {
			if seg.Matches(cand(n, pos, 4)) {
				got = append(got, pos)
			}
		}
		if len(got) != len(tst.hits) {
			t.Errorf("%q hits %v, want %v", tst.raw, got, tst.hits)
			continue
		}
		for i := range got {
			if got[i] != tst.hits[i] {
				t.Errorf("%q hits %v, want %v", tst.raw, got, tst.hits)
				break
			}
		}
	}
}
