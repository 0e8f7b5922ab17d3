// Package validate holds the field validators for list and item payloads.
// Each validator returns a field→message mapping; an empty mapping means
// the payload is valid. No other failure signal exists.
package validate

import "unicode/utf8"

const (
	listNameMin = 3
	listNameMax = 50
	itemNameMax = 50
	brandMax    = 50
	commentsMax = 100
)

// List checks a list name. An empty name is accepted here; the create
// endpoint independently requires one.
func List(name string) map[string]string {
	fields := map[string]string{}
	if name != "" {
		if n := utf8.RuneCountInString(name); n < listNameMin || n > listNameMax {
			fields["name"] = "name must be between 3 and 50 characters"
		}
	}
	return fields
}

// Item checks the user-supplied fields of an item.
func Item(name string, quantity float64, brand, comments string) map[string]string {
	fields := map[string]string{}
	if name == "" {
		fields["name"] = "name is required"
	} else if utf8.RuneCountInString(name) > itemNameMax {
		fields["name"] = "name must be at most 50 characters"
	}
	if quantity <= 0 {
		fields["quantity"] = "quantity must be greater than zero"
	}
	if utf8.RuneCountInString(brand) > brandMax {
		fields["brand"] = "brand must be at most 50 characters"
	}
	if utf8.RuneCountInString(comments) > commentsMax {
		fields["comments"] = "comments must be at most 100 characters"
	}
	return fields
}
