// Package token generates opaque share tokens and computes share expiry.
package token

import (
	"crypto/rand"
	"time"
)

const (
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	Length   = 32
)

// Generate returns a new share token: 32 characters drawn uniformly from the
// 62-symbol alphanumeric alphabet (~190 bits of entropy) using crypto/rand.
func Generate() (string, error) {
	out := make([]byte, 0, Length)
	buf := make([]byte, Length)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			// 248 = 62*4; rejecting the tail keeps the draw uniform
			if b >= 248 {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out), nil
}

// ExpiryFromDays returns now + days, or nil when days is nil (never expires).
func ExpiryFromDays(now time.Time, days *int) *time.Time {
	if days == nil {
		return nil
	}
	t := now.AddDate(0, 0, *days)
	return &t
}
