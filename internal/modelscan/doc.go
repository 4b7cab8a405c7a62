// Package modelscan discovers machine-learning model directories on disk.
//
// It walks a fixed list of candidate roots using fastwalk, treats every
// directory that directly contains a recognized model file as a hit, and
// reports each hit with its inferred source type and on-disk size.
package modelscan
