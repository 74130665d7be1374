// Package eval is a tree-walking interpreter over a resolved Zeron file.
//
// It trusts the resolver for static typing and only checks what the
// language leaves to run time: final rebinding, integer division by zero,
// call depth. Values print the way the reference JVM runtime prints them.
package eval
