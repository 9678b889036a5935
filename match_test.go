package treepath

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treepath/treepath/build"
	"github.com/treepath/treepath/tree"
)

func mustTree(t *testing.T, doc string) *tree.Node {
	t.Helper()
	root, err := build.FromYAML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func devTree(t *testing.T) *tree.Node {
	return mustTree(t, `
root:
  src:
    user: {id: ~, name: ~}
    post: {id: ~, content: ~}
  tests:
    test_models: ~
    test_views:
      test_index: ~
`)
}

func fsTree(t *testing.T) *tree.Node {
	return mustTree(t, `
fs:
  src:
    main: {type: file, size: 120}
    util: {type: file, size: 40}
    vendor: {type: dir}
  docs:
    readme: {type: file, size: 5}
`)
}

func names(nodes []*tree.Node) []string {
	res := make([]string, len(nodes))
	for i, n := range nodes {
		res[i] = n.Name()
	}
	return res
}

func wantNames(t *testing.T, nodes []*tree.Node, want ...string) {
	t.Helper()
	got := names(nodes)
	if len(got) != len(want) {
		t.Fatalf("matched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("matched %v, want %v", got, want)
		}
	}
}

func TestMatchDeepWildcardAll(t *testing.T) {
	root := devTree(t)
	nodes, err := Match(root, "**")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != tree.Size(root) {
		t.Fatalf("matched %d nodes, want %d", len(nodes), tree.Size(root))
	}
	if nodes[0] != root {
		t.Error("pre-order should start at the root")
	}
	seen := make(map[*tree.Node]bool)
	for _, n := range nodes {
		if seen[n] {
			t.Fatalf("node %s matched twice", n.Name())
		}
		seen[n] = true
	}
	wantNames(t, nodes,
		"root", "src", "user", "id", "name", "post", "id", "content",
		"tests", "test_models", "test_views", "test_index")
}

func TestMatchDeepWildcardGlob(t *testing.T) {
	root := devTree(t)
	nodes, err := Match(root, "**.test_*")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "test_models", "test_views", "test_index")
}

func TestMatchDeepWildcardLiteral(t *testing.T) {
	root := devTree(t)
	paths, err := MatchPaths(root, "**.id")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || paths[0] != "root.src.user.id" || paths[1] != "root.src.post.id" {
		t.Fatalf("paths = %v", paths)
	}
}

func TestMatchRootThroughDeepWildcard(t *testing.T) {
	root := fsTree(t)
	nodes, err := Match(root, "**[?(@.is_root)]")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0] != root {
		t.Fatalf("is_root selected %v, want the root only", names(nodes))
	}
	nodes, err = Match(root, "**.fs")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0] != root {
		t.Fatalf("**.fs selected %v, want the root", names(nodes))
	}
}

func TestMatchWildcardLevel(t *testing.T) {
	app := mustTree(t, `
app:
  models:
    user: ~
  views: {}
`)
	nodes, err := Match(app, "app.*.user")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "user")

	nodes, err = Match(app, "app.*.nonexistent")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 0 {
		t.Fatalf("matched %v, want none", names(nodes))
	}
}

func TestMatchAnchoring(t *testing.T) {
	root := devTree(t)

	// leading literal equal to the root's name anchors at the root
	nodes, err := Match(root, "root")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0] != root {
		t.Fatal("pattern naming the root should match the root itself")
	}

	// otherwise the first segment applies to the root's children
	nodes, err = Match(root, "src.user")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "user")

	nodes, err = Match(root, "root.src.user")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "user")
}

func TestMatchPathsRoundTrip(t *testing.T) {
	root := devTree(t)
	paths, err := MatchPaths(root, "**")
	if err != nil {
		t.Fatal(err)
	}
	all, err := Match(root, "**")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != len(all) {
		t.Fatalf("%d paths for %d nodes", len(paths), len(all))
	}
	for i, p := range paths {
		again, err := Match(root, p)
		if err != nil {
			t.Fatalf("re-resolving %q: %v", p, err)
		}
		found := false
		for _, n := range again {
			if n == all[i] {
				found = true
			}
		}
		if !found {
			t.Errorf("path %q did not resolve back to its node", p)
		}
	}
}

func TestMatchEscapedDots(t *testing.T) {
	cfg := tree.New("app.cfg", tree.Attr("port", int64(80)))
	root := tree.New("root", tree.Kids(cfg))

	nodes, err := Match(root, `root.app\.cfg`)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0] != cfg {
		t.Fatal("escaped dot literal did not match")
	}

	paths, err := MatchPaths(root, "**")
	if err != nil {
		t.Fatal(err)
	}
	if paths[1] != `root.app\.cfg` {
		t.Fatalf("rendered path = %q", paths[1])
	}
}

func TestMatchAttributeFilter(t *testing.T) {
	root := fsTree(t)
	nodes, err := Match(root, "**[type=file]")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "main", "util", "readme")

	nodes, err = Match(root, "fs.src.*[type=file,size=40]")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "util")
}

func TestMatchPredicateFilter(t *testing.T) {
	root := fsTree(t)
	nodes, err := Match(root, "fs.src.*[?(@.size>100)]")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "main")

	// vendor has no size: the predicate fails closed rather than aborting
	nodes, err = Match(root, "fs.src.*[?(@.size>0)]")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "main", "util")
}

func TestMatchRegexAndFuzzy(t *testing.T) {
	root := devTree(t)
	nodes, err := Match(root, "root.tests.~^test_")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "test_models", "test_views")

	nodes, err = Match(root, "root.src.%usr:0.7")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "user")
}

func TestMatchIndexAndSlice(t *testing.T) {
	root := fsTree(t)
	nodes, err := Match(root, "fs.src.[0]")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "main")

	nodes, err = Match(root, "fs.src.[-1]")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "vendor")

	nodes, err = Match(root, "fs.src.[0:2]")
	if err != nil {
		t.Fatal(err)
	}
	wantNames(t, nodes, "main", "util")
}

func TestMatchSyntaxError(t *testing.T) {
	root := devTree(t)
	if _, err := Match(root, "a[unclosed"); err == nil {
		t.Error("unbalanced bracket should fail before traversal")
	}
	if _, err := Match(root, ""); err == nil {
		t.Error("empty pattern should fail")
	}
}

func TestExistsCount(t *testing.T) {
	root := devTree(t)
	ok, err := Exists(root, "**.id")
	if err != nil || !ok {
		t.Errorf("Exists = %v, %v", ok, err)
	}
	n, err := Count(root, "**.test_*")
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v", n, err)
	}
}

func TestPluck(t *testing.T) {
	root := fsTree(t)
	vals, err := Pluck(root, "fs.src.main", "fs.nothing", "fs.src.*[type=file]")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"type": "file", "size": int64(120)}
	if d := cmp.Diff(want, vals[0]); d != "" {
		t.Errorf("vals[0] (-want +got):\n%s", d)
	}
	if vals[1] != nil {
		t.Errorf("vals[1] = %#v, want nil", vals[1])
	}
	list, ok := vals[2].([]any)
	if !ok || len(list) != 2 {
		t.Errorf("vals[2] = %#v", vals[2])
	}
}

func TestPluckPayloadKey(t *testing.T) {
	root := fsTree(t)
	vals, err := Pluck(root, "fs.src.main.size", "fs.src.*.size", "fs.src.main.nope")
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != int64(120) {
		t.Errorf("vals[0] = %#v, want 120", vals[0])
	}
	want := []any{int64(120), int64(40)}
	if d := cmp.Diff(want, vals[1]); d != "" {
		t.Errorf("vals[1] (-want +got):\n%s", d)
	}
	if vals[2] != nil {
		t.Errorf("vals[2] = %#v, want nil", vals[2])
	}
}
