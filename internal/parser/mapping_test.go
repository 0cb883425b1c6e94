package parser

import "testing"

func TestInferColumnMapping_ExactAndCaseInsensitive(t *testing.T) {
	t.Parallel()

	mapping := InferColumnMapping([]string{"Item", "capex", " Owner ", "Mystery Column", ""})

	if mapping["Item"] != FieldItemName {
		t.Fatalf("Item want=%s got=%s", FieldItemName, mapping["Item"])
	}
	if mapping["capex"] != FieldCapex {
		t.Fatalf("capex want=%s got=%s", FieldCapex, mapping["capex"])
	}
	// trimmed header is the mapping key
	if mapping["Owner"] != FieldOwnerID {
		t.Fatalf("Owner want=%s got=%s", FieldOwnerID, mapping["Owner"])
	}
	if _, ok := mapping["Mystery Column"]; ok {
		t.Fatalf("Mystery Column should stay unmapped")
	}
	if len(mapping) != 3 {
		t.Fatalf("want 3 mapped headers, got %d: %v", len(mapping), mapping)
	}
}

func TestInferColumnMapping_CollidingHeadersBothMapped(t *testing.T) {
	t.Parallel()

	// Both map onto capex; row mapping resolves the collision last-column-wins.
	mapping := InferColumnMapping([]string{"Capex", "Purchase cost"})
	if mapping["Capex"] != FieldCapex || mapping["Purchase cost"] != FieldCapex {
		t.Fatalf("both headers should map to capex: %v", mapping)
	}
}

func TestYearFromSheetName(t *testing.T) {
	t.Parallel()

	if year, ok := YearFromSheetName("2025"); !ok || year != 2025 {
		t.Fatalf("2025 want=(2025,true) got=(%d,%v)", year, ok)
	}
	if year, ok := YearFromSheetName(" 2028 "); !ok || year != 2028 {
		t.Fatalf(" 2028  want=(2028,true) got=(%d,%v)", year, ok)
	}
	for _, name := range []string{"2024", "2029", "FY2025", "Budget 2026", "Sheet1"} {
		if _, ok := YearFromSheetName(name); ok {
			t.Fatalf("%q should not be a year sheet", name)
		}
	}
}

func TestIdempotencyKey(t *testing.T) {
	t.Parallel()

	key := IdempotencyKey(2025, "2025", "  Router ", "ABC-1", "cc-9", "")
	want := "2025::2025::router::abc-1::cc-9::"
	if key != want {
		t.Fatalf("want=%q got=%q", want, key)
	}
}

func TestSuggestHeader(t *testing.T) {
	t.Parallel()

	if got := SuggestHeader("Ownr"); got != "Owner" {
		t.Fatalf("Ownr want=Owner got=%q", got)
	}
	if got := SuggestHeader("Vender"); got != "Vendor" {
		t.Fatalf("Vender want=Vendor got=%q", got)
	}
	if got := SuggestHeader("Totally Unrelated"); got != "" {
		t.Fatalf("want no suggestion, got %q", got)
	}
	if got := SuggestHeader(""); got != "" {
		t.Fatalf("blank header want no suggestion, got %q", got)
	}
}
