// Package advanceday moves the library's day counter forward by one.
package advanceday
