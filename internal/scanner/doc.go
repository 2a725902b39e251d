// Package scanner expands file selections into concrete file lists.
// A selection is a base directory plus include/exclude glob patterns;
// the scanner walks the directory through the filesystem abstraction and
// returns the relative paths of matching regular files in walk order.
package scanner
