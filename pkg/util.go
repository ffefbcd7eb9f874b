package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"unsafe"
)

// BytesToString converts a byte slice to a string without an extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// GenerateRandomString returns a URL-safe, base64 encoded string built from
// n securely generated random bytes. An error means the system's secure
// random number generator failed, in which case the caller must bail out.
func GenerateRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// PathExists returns whether the given path exists and matches the wanted
// kind (directory or regular file)
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return stat.IsDir() == isDir, nil
}
