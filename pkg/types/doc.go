// Package types holds the interfaces shared between hyprlayer packages that
// must not depend on each other.
package types
