package normalize

import (
	"errors"
	"testing"
	"time"

	"crm-engine/internal/model"
)

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2020-02-29")
	if !ok {
		t.Fatal("expected 2020-02-29 to parse")
	}
	if d != time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("got %v", d)
	}

	for _, s := range []string{"", "2020-2-29", "2021-02-29", "2020-13-01", "2020-00-10", "20-01-0100", "2020-01-0a", "2020/01/01"} {
		if _, ok := ParseDate(s); ok {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestRecordMissingSubscription(t *testing.T) {
	_, err := Record(2, model.RawRecord{EditionDate: "2024-01-01"})
	var missing *MissingRequiredDateError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredDateError, got %v", err)
	}
	if missing.RecordIndex != 2 || missing.Field != "subscription_date" {
		t.Fatalf("wrong context: %+v", missing)
	}
}

func TestRecordMissingEdition(t *testing.T) {
	_, err := Record(0, model.RawRecord{SubscriptionDate: "2020-01-01"})
	var missing *MissingRequiredDateError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingRequiredDateError, got %v", err)
	}
	if missing.Field != "edition_date" {
		t.Fatalf("wrong field: %q", missing.Field)
	}
}

func TestRecordTerminationBeforeSubscription(t *testing.T) {
	_, err := Record(0, model.RawRecord{
		SubscriptionDate: "2020-06-01",
		TerminationDate:  "2020-01-01",
		EditionDate:      "2024-01-01",
	})
	var order *InvalidDateOrderError
	if !errors.As(err, &order) {
		t.Fatalf("expected InvalidDateOrderError, got %v", err)
	}
}

func TestRecordAmbiguousResponsibility(t *testing.T) {
	_, err := Record(1, model.RawRecord{
		SubscriptionDate: "2020-01-01",
		EditionDate:      "2024-01-01",
		Claims: []model.RawClaim{
			{Date: "2021-03-01", Responsibility: "responsable"},
			{Date: "2022-03-01", Responsibility: "peut-être"},
		},
	})
	var ambiguous *AmbiguousResponsibilityError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousResponsibilityError, got %v", err)
	}
	if ambiguous.RecordIndex != 1 || ambiguous.ClaimIndex != 1 {
		t.Fatalf("wrong context: %+v", ambiguous)
	}
}

func TestParseResponsibilitySpellings(t *testing.T) {
	cases := map[string]model.Responsibility{
		"responsable":               model.ResponsibilityFull,
		"FULL":                      model.ResponsibilityFull,
		"Partiellement responsable": model.ResponsibilityPartial,
		"partial":                   model.ResponsibilityPartial,
		"non responsable":           model.ResponsibilityNone,
		"  none ":                   model.ResponsibilityNone,
	}
	for raw, want := range cases {
		got, err := ParseResponsibility(0, 0, raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if got != want {
			t.Errorf("%q: got %s, want %s", raw, got, want)
		}
	}
}

func TestHistoryOverlapRejected(t *testing.T) {
	_, err := History([]model.RawRecord{
		{SubscriptionDate: "2018-01-01", TerminationDate: "2020-06-01", EditionDate: "2020-06-01"},
		{SubscriptionDate: "2020-01-01", EditionDate: "2024-01-01"},
	})
	var order *InvalidDateOrderError
	if !errors.As(err, &order) {
		t.Fatalf("expected InvalidDateOrderError, got %v", err)
	}
	if order.RecordIndex != 1 {
		t.Fatalf("wrong record index: %d", order.RecordIndex)
	}
}

func TestHistoryGapAccepted(t *testing.T) {
	hist, err := History([]model.RawRecord{
		{SubscriptionDate: "2015-01-01", TerminationDate: "2017-01-01", EditionDate: "2017-01-01"},
		{SubscriptionDate: "2020-06-01", EditionDate: "2024-01-01"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hist.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(hist.Records))
	}
}

func TestSecondaryDriverInheritsDesignation(t *testing.T) {
	rec, err := Record(0, model.RawRecord{
		SubscriptionDate: "2020-01-01",
		EditionDate:      "2024-01-01",
		Drivers: []model.RawDriver{
			{Role: "secondaire", LicenseDate: "2019-05-01"},
			{Role: "conducteur principal", LicenseDate: "2001-03-15", DesignationDate: "2020-01-01"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	secondary := rec.Drivers[0]
	if secondary.Role != model.DriverSecondary {
		t.Fatalf("expected secondary role, got %s", secondary.Role)
	}
	if secondary.DesignationDate == nil || secondary.DesignationDate.Format("2006-01-02") != "2020-01-01" {
		t.Fatal("expected secondary driver to inherit the primary's designation date")
	}
}
