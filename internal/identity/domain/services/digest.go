package services

import "crypto/subtle"

// DigestsEqual сравнивает хэши за постоянное время.
func DigestsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
