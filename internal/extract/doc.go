// Package extract unpacks downloaded zip archives.
//
// It walks the flat target directory, extracting every .zip it finds
// into a destination directory, sequentially. Archive members are
// prevented from escaping the destination (zip-slip).
package extract
