// Package filesystem provides the OS implementation of types.FS together with
// the few tree helpers the thoughts layout needs on top of it.
package filesystem
