package mysql

import (
	"strings"
	"testing"

	"estate_inquiry/internal/domain"
)

func TestBuildListQuery_NoFilter(t *testing.T) {
	q, args := buildListQuery(domain.ResidenceFilter{})
	if strings.Contains(q, "WHERE") {
		t.Fatalf("unexpected WHERE in %q", q)
	}
	if !strings.HasSuffix(q, "ORDER BY r.id") {
		t.Fatalf("missing ordering: %q", q)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	minP, maxP, beds := 100000.0, 900000.0, 3
	q, args := buildListQuery(domain.ResidenceFilter{
		City: "New York", Type: "House", MinPrice: &minP, MaxPrice: &maxP, MinBedrooms: &beds,
	})

	want := "WHERE LOWER(r.city) = LOWER(?) AND LOWER(r.type) = LOWER(?) AND r.price >= ? AND r.price <= ? AND r.bedrooms >= ?"
	if !strings.Contains(q, want) {
		t.Fatalf("query %q does not contain %q", q, want)
	}
	if len(args) != 5 || args[0] != "New York" || args[1] != "House" || args[2] != minP || args[3] != maxP || args[4] != beds {
		t.Fatalf("unexpected args: %v", args)
	}
	if strings.Count(q, "?") != len(args) {
		t.Fatalf("placeholder/arg mismatch in %q", q)
	}
}
