// Package treepath selects and transforms nodes of hierarchical data with a
// compact dot-path language.
//
// # Usage
//
//	// Select nodes
//	nodes, err := treepath.Match(root, "app.src.*.py")
//	paths, err := treepath.MatchPaths(root, "**[type=file]")
//
//	// Transform through the same selection
//	next, err := treepath.Modify(root, map[string]treepath.Action{
//	    "app.config": treepath.Update(map[string]any{"port": int64(8080)}),
//	})
//	next, err = treepath.Prune(root, "**.cache")
//
// Trees are persistent values: every transform returns a new root and shares
// the subtrees it did not touch.
//
// # Related Packages
//
//   - github.com/treepath/treepath/tree - the persistent node model
//   - github.com/treepath/treepath/pattern - tokenizer and segment compiler
//   - github.com/treepath/treepath/build - adapters to YAML and flat shapes
package treepath
