package application

import (
	"context"
	"testing"
)

func TestDashboardService_Summary(t *testing.T) {
	t.Parallel()

	svc := NewDashboardService(sampleCatalog(), sampleClock)
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	wantCounts := StatusCounts{Available: 3, Pending: 1, Sold: 1, Total: 5}
	if summary.Properties != wantCounts {
		t.Fatalf("expected %+v, got %+v", wantCounts, summary.Properties)
	}
	if summary.ClientsByType[ClientTypeBuyer] != 2 || summary.ClientsByType[ClientTypeSeller] != 1 || summary.ClientsByType[ClientTypeBoth] != 1 {
		t.Fatalf("unexpected client counts %v", summary.ClientsByType)
	}
	if got := ids(summary.UpcomingActivities, func(a Activity) string { return a.ID }); !equalIDs(got, []string{"a2", "a1", "a6"}) {
		t.Fatalf("expected upcoming a2 a1 a6, got %v", got)
	}
	if got := ids(summary.RecentOffers, func(o Offer) string { return o.ID }); !equalIDs(got, []string{"o3", "o2", "o1"}) {
		t.Fatalf("expected offers newest first, got %v", got)
	}
}
