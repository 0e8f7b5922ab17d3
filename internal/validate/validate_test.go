package validate

import (
	"strings"
	"testing"
)

func TestListName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		valid bool
	}{
		{"empty accepted", "", true},
		{"two chars too short", "AB", false},
		{"three chars minimum", "ABC", true},
		{"fifty chars maximum", strings.Repeat("a", 50), true},
		{"fifty one chars too long", strings.Repeat("a", 51), false},
		{"multibyte counted as runes", "日々の買い物", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := List(tc.input)
			if tc.valid && len(fields) > 0 {
				t.Errorf("List(%q) = %v, want no errors", tc.input, fields)
			}
			if !tc.valid {
				if _, ok := fields["name"]; !ok {
					t.Errorf("List(%q): expected name error, got %v", tc.input, fields)
				}
			}
		})
	}
}

func TestItem(t *testing.T) {
	fields := Item("Milk", 2, "", "")
	if len(fields) > 0 {
		t.Fatalf("valid item rejected: %v", fields)
	}
}

func TestItemFieldErrors(t *testing.T) {
	cases := []struct {
		name     string
		itemName string
		quantity float64
		brand    string
		comments string
		field    string
	}{
		{"name required", "", 1, "", "", "name"},
		{"name too long", strings.Repeat("a", 51), 1, "", "", "name"},
		{"quantity zero", "Milk", 0, "", "", "quantity"},
		{"quantity negative", "Milk", -1, "", "", "quantity"},
		{"brand too long", "Milk", 1, strings.Repeat("b", 51), "", "brand"},
		{"comments too long", "Milk", 1, "", strings.Repeat("c", 101), "comments"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := Item(tc.itemName, tc.quantity, tc.brand, tc.comments)
			if _, ok := fields[tc.field]; !ok {
				t.Errorf("expected %s error, got %v", tc.field, fields)
			}
		})
	}
}

func TestItemCollectsAllErrors(t *testing.T) {
	fields := Item("", 0, strings.Repeat("b", 51), strings.Repeat("c", 101))
	if len(fields) != 4 {
		t.Errorf("expected 4 field errors, got %d: %v", len(fields), fields)
	}
}

func TestItemFractionalQuantity(t *testing.T) {
	if fields := Item("Flour", 0.5, "", ""); len(fields) > 0 {
		t.Errorf("fractional quantity rejected: %v", fields)
	}
}
