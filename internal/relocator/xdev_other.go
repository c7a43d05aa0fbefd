//go:build !unix

package relocator

func isCrossDevice(error) bool {
	return false
}
