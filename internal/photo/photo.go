// Package photo holds the image category vocabulary of the certificate
// document and the attachment gate run before a conversion.
package photo

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category is the machine code of an image category.
type Category string

const (
	CoverPhoto                     Category = "coverPhoto"
	CharacteristicHeatExchanger    Category = "characteristicHeatExchanger"
	CharacteristicOpeningStructure Category = "characteristicOpeningStructure"
	Other                          Category = "other"
)

// Requirement defines whether at least one image of a category is needed.
type Requirement string

const (
	Required Requirement = "required"
	Optional Requirement = "optional"
)

// Spec describes one category of the vocabulary.
type Spec struct {
	Category    Category    `json:"category"`
	Requirement Requirement `json:"requirement"`
}

// vocabulary is ordered as categories appear in the certificate form.
var vocabulary = []Spec{
	{Category: CoverPhoto, Requirement: Required},
	{Category: CharacteristicHeatExchanger, Requirement: Required},
	{Category: CharacteristicOpeningStructure, Requirement: Required},
	{Category: Other, Requirement: Optional},
}

// ErrAttachmentMismatch is returned when the number of images, categories
// and notes of a job disagree.
var ErrAttachmentMismatch = errors.New("photo: number of images, categories and notes must match")

// MissingCategoriesError lists the required categories that have no image.
type MissingCategoriesError struct {
	Missing []Category
}

func (e *MissingCategoriesError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return "missing required image categories: " + strings.Join(names, ", ")
}

// Vocabulary returns every known category in form order.
func Vocabulary() []Spec {
	out := make([]Spec, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// RequiredCategories returns the categories that need at least one image.
func RequiredCategories() []Category {
	var out []Category
	for _, s := range vocabulary {
		if s.Requirement == Required {
			out = append(out, s.Category)
		}
	}
	return out
}

// Known reports whether c is part of the vocabulary.
func Known(c Category) bool {
	for _, s := range vocabulary {
		if s.Category == c {
			return true
		}
	}
	return false
}

// Unknown returns the distinct categories outside the vocabulary, in
// first-seen order.
func Unknown(categories []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range categories {
		if Known(Category(c)) || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// CheckRequired returns a *MissingCategoriesError naming, in sorted order,
// every required category that does not occur in categories.
func CheckRequired(categories []string) error {
	present := make(map[Category]bool, len(categories))
	for _, c := range categories {
		present[Category(c)] = true
	}
	var missing []Category
	for _, c := range RequiredCategories() {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return &MissingCategoriesError{Missing: missing}
}

// CheckCounts verifies that every image has exactly one category and one
// note.
func CheckCounts(images, categories, notes int) error {
	if images != categories || images != notes {
		return fmt.Errorf("%w: %d images, %d categories, %d notes", ErrAttachmentMismatch, images, categories, notes)
	}
	return nil
}
