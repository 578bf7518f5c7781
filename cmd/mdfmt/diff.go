package main

import (
	diff "github.com/shogoki/gotextdiff"
)

// unifiedDiff returns a unified diff from before to after, labelled with
// path. Equal inputs give nil.
func unifiedDiff(path, before, after string) []byte {
	if before == after {
		return nil
	}
	return diff.Diff(path+".orig", []byte(before), path, []byte(after))
}
