//go:build !linux
// +build !linux

package papi

func threadID() int {
	return -1
}
