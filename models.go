package main

import (
	"fmt"
	"strings"
	"time"
)

// SweetCategories is the fixed set of catalog categories. Validation and the
// client both work off this list.
var SweetCategories = []string{"Chocolate", "Candy", "Gummy", "Hard Candy", "Lollipop", "Other"}

func ValidCategory(category string) bool {
	for _, c := range SweetCategories {
		if c == category {
			return true
		}
	}
	return false
}

type SweetModel struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SweetDraft is the create payload. Price and Quantity are pointers so a
// missing field can be told apart from an explicit zero.
type SweetDraft struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

// SweetPatch is the partial update payload. Only non-nil fields are applied.
type SweetPatch struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

// FieldError reports a single violated constraint on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every violated constraint so the caller sees the
// full list, not just the first failure.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// ValidateSweetDraft checks a create payload against the catalog constraints.
// A nil quantity defaults to 0 in the store, so only its sign is checked here.
func ValidateSweetDraft(draft *SweetDraft) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(draft.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name must not be empty"})
	}
	if !ValidCategory(draft.Category) {
		errs = append(errs, FieldError{Field: "category", Message: fmt.Sprintf("Category must be one of: %s", strings.Join(SweetCategories, ", "))})
	}
	if draft.Price == nil {
		errs = append(errs, FieldError{Field: "price", Message: "Price is required"})
	} else if *draft.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "Price must not be negative"})
	}
	if draft.Quantity != nil && *draft.Quantity < 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "Quantity must not be negative"})
	}
	return errs
}

// ValidateSweetPatch re-checks only the fields the patch actually carries,
// with the same constraints as ValidateSweetDraft.
func ValidateSweetPatch(patch *SweetPatch) ValidationErrors {
	var errs ValidationErrors
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name must not be empty"})
	}
	if patch.Category != nil && !ValidCategory(*patch.Category) {
		errs = append(errs, FieldError{Field: "category", Message: fmt.Sprintf("Category must be one of: %s", strings.Join(SweetCategories, ", "))})
	}
	if patch.Price != nil && *patch.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "Price must not be negative"})
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "Quantity must not be negative"})
	}
	return errs
}

// SweetFilter holds the search query; zero-valued fields impose no
// constraint and all supplied filters compose as logical AND.
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}
