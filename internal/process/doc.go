// Package process isolates external formatter processes so that they can be
// killed together with any children they spawn.
package process
