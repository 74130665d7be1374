// Package types is the Zeron type algebra: a closed set of type
// descriptors plus the pure operations that build, compare and unify them.
//
// Type is a small value. Constructors and transforms never mutate their
// receiver, so a Type can be copied and shared freely.
package types
