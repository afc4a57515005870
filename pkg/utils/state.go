package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// NewState returns a random OAuth state value.
func NewState() (string, error) {
	return gonanoid.New(32)
}
