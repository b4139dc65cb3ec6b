package types

import "strings"

// Category is a named label tasks reference by id. Name uniqueness is not
// enforced; category deletion is not supported.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ValidateCategoryName trims name and returns it, or ErrNameRequired when
// nothing remains.
func ValidateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}
