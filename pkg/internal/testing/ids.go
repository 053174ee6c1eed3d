package testing

import "fmt"

// NewSequentialIDGenerator returns a generator producing prefixed
// incrementing ids. To be used for tests only
func NewSequentialIDGenerator(prefix string) func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("%v-%v", prefix, next)
	}
}
