// Package pagetree plans the output file layout of the site.
//
// Build walks the content tree and the article list once and returns one
// Record per page: its kind, its slash-separated output path, its depth below
// the site root and the relative prefix that page uses to reach the root.
// Paths are flat by category: a sub-topic page lives next to its section page
// in sezioni/, never in a directory of its own, so every page reaches the
// root with a single prefix.
//
// All path problems (empty slugs, two nodes mapping to one file) are detected
// here, before anything is written.
package pagetree
