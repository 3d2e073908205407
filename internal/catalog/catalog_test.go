package catalog

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	top, ok := c.MeasurementType("top")
	if !ok {
		t.Fatalf("expected top measurement type")
	}
	if len(top.Fields) != 12 {
		t.Errorf("expected 12 top fields, got %d", len(top.Fields))
	}

	blouse, _ := c.MeasurementType("blouse")
	if len(blouse.Fields) != len(top.Fields) {
		t.Errorf("blouse should share top fields, got %d", len(blouse.Fields))
	}

	salwar, _ := c.MeasurementType("salwar")
	if len(salwar.Fields) != 5 {
		t.Errorf("expected 5 salwar fields, got %d", len(salwar.Fields))
	}

	suit, ok := c.ClothingType("suit")
	if !ok || !suit.HasSubType("top-lining") {
		t.Errorf("expected suit with top-lining sub type")
	}
	if suit.HasSubType("padding") {
		t.Errorf("padding is not a suit sub type")
	}

	other, _ := c.ClothingType("other")
	if !other.HasSubType("") {
		t.Errorf("other accepts any sub type")
	}
}

func TestParseRejectsEmptyCatalog(t *testing.T) {
	if _, err := Parse([]byte("clothing_types: []\n")); err == nil {
		t.Fatal("expected error for catalog without measurement types")
	}
}
