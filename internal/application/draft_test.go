package application

import (
	"strings"
	"testing"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()

	if d.Travel.AppliedRemain != "No" || d.Travel.VisaRefused != "No" {
		t.Fatalf("travel defaults wrong: %+v", d.Travel)
	}
	if d.English.FirstLanguage != "No" {
		t.Fatalf("english default wrong: %+v", d.English)
	}
	if d.Accommodation != "No" {
		t.Fatalf("accommodation default wrong: %q", d.Accommodation)
	}
	if d.SameAsPermanent {
		t.Fatal("sameAsPermanent should default to false")
	}
	if len(d.Slots) != len(SlotNames()) {
		t.Fatalf("expected %d slots, got %d", len(SlotNames()), len(d.Slots))
	}
}

func TestDecodeDraft_RejectsUnknownKeys(t *testing.T) {
	body := `{"personal":{"firstName":"Asha"},"is_admin":true}`
	if _, err := DecodeDraft(strings.NewReader(body)); err == nil {
		t.Fatal("expected unknown-key rejection")
	}
}

func TestDecodeDraft_PartialBodyKeepsDefaults(t *testing.T) {
	body := `{"personal":{"firstName":"Asha","email":"asha@example.com"}}`
	d, err := DecodeDraft(strings.NewReader(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Personal.FirstName != "Asha" {
		t.Fatalf("firstName = %q", d.Personal.FirstName)
	}
	if d.Travel.AppliedRemain != "No" {
		t.Fatal("defaults must survive a partial decode")
	}
	if d.Slots == nil {
		t.Fatal("slots must be initialized after decode")
	}
}

func TestSetSameAsPermanent(t *testing.T) {
	d := NewDraft()
	d.PermanentAddress = filledAddress()
	d.PermanentAddress.Line2 = "Flat 4"

	d.SetSameAsPermanent(true)
	if d.CurrentAddress != d.PermanentAddress {
		t.Fatalf("current address not copied: %+v", d.CurrentAddress)
	}

	d.SetSameAsPermanent(false)
	if d.CurrentAddress != (Address{}) {
		t.Fatalf("current address not cleared: %+v", d.CurrentAddress)
	}
}

func TestToggleDestinationCountry(t *testing.T) {
	d := NewDraft()

	d.ToggleDestinationCountry("United Kingdom")
	d.ToggleDestinationCountry("Canada")
	if len(d.DestinationCountries) != 2 {
		t.Fatalf("expected 2 selections, got %v", d.DestinationCountries)
	}

	d.ToggleDestinationCountry("United Kingdom")
	if len(d.DestinationCountries) != 1 || d.DestinationCountries[0] != "Canada" {
		t.Fatalf("toggle off failed: %v", d.DestinationCountries)
	}
}

func TestReset(t *testing.T) {
	d := completePersonalDraft()
	d.ToggleDestinationCountry("Canada")
	if _, err := d.Slots.Add("cv", slotFile("cv.pdf", 100)); err != nil {
		t.Fatalf("add: %v", err)
	}

	d.Reset()

	if d.Personal.FirstName != "" {
		t.Fatal("personal data survived reset")
	}
	if len(d.DestinationCountries) != 0 {
		t.Fatal("destination selection survived reset")
	}
	if d.Slots["cv"].Len() != 0 {
		t.Fatal("slot files survived reset")
	}
	if len(d.Referees) != 2 {
		t.Fatalf("referee floor not restored, got %d", len(d.Referees))
	}
}
