package application

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/example/realestate-crm/internal/query"
)

const (
	// MetricsModePlaceholder produces decorative random metrics.
	MetricsModePlaceholder = "placeholder"
	// MetricsModeActivity derives metrics from activities and offers.
	MetricsModeActivity = "activity"

	minInterestLevel     = 1
	maxInterestLevel     = 10
	placeholderWindowDay = 30
)

// MetricsProvider computes the per-client figures shown in the client list.
type MetricsProvider interface {
	InterestLevel(client Client) int
	LastInteraction(client Client) (time.Time, bool)
}

// NewMetricsProvider returns the provider registered for mode.
func NewMetricsProvider(mode string, catalog *Catalog, now func() time.Time) (MetricsProvider, error) {
	switch mode {
	case "", MetricsModePlaceholder:
		return NewPlaceholderMetrics(nil, now), nil
	case MetricsModeActivity:
		return NewActivityMetrics(catalog, now), nil
	default:
		return nil, fmt.Errorf("unknown metrics mode %q", mode)
	}
}

// PlaceholderMetrics stands in for real analytics. Values are random and
// recomputed on every call; they carry no information about the client.
type PlaceholderMetrics struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewPlaceholderMetrics uses rng when given, otherwise the global source.
func NewPlaceholderMetrics(rng *rand.Rand, now func() time.Time) *PlaceholderMetrics {
	if now == nil {
		now = time.Now
	}
	return &PlaceholderMetrics{rng: rng, now: now}
}

func (m *PlaceholderMetrics) intN(n int) int {
	if m.rng == nil {
		return rand.IntN(n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.IntN(n)
}

// InterestLevel returns a uniform value in [1,10].
func (m *PlaceholderMetrics) InterestLevel(Client) int {
	return minInterestLevel + m.intN(maxInterestLevel)
}

// LastInteraction returns now minus a random whole number of days below 30.
func (m *PlaceholderMetrics) LastInteraction(Client) (time.Time, bool) {
	days := m.intN(placeholderWindowDay)
	return m.now().AddDate(0, 0, -days), true
}

// ActivityMetrics derives the client figures from recorded activities and offers.
type ActivityMetrics struct {
	catalog *Catalog
	now     func() time.Time
}

// NewActivityMetrics builds a provider over catalog.
func NewActivityMetrics(catalog *Catalog, now func() time.Time) *ActivityMetrics {
	if now == nil {
		now = time.Now
	}
	return &ActivityMetrics{catalog: catalog, now: now}
}

// InterestLevel is activities + 2*offers for the client, clamped to [1,10].
func (m *ActivityMetrics) InterestLevel(client Client) int {
	activities := query.ManyByOptional(m.catalog.Activities(), client.ID, activityClient)
	offers := query.ManyBy(m.catalog.Offers(), client.ID, func(o Offer) string { return o.BuyerID })
	score := len(activities) + 2*len(offers)
	return max(minInterestLevel, min(maxInterestLevel, score))
}

// LastInteraction is the date of the client's latest activity that is not in
// the future.
func (m *ActivityMetrics) LastInteraction(client Client) (time.Time, bool) {
	now := m.now()
	var latest time.Time
	found := false
	for _, activity := range query.ManyByOptional(m.catalog.Activities(), client.ID, activityClient) {
		if activity.Date.After(now) {
			continue
		}
		if !found || activity.Date.After(latest) {
			latest = activity.Date
			found = true
		}
	}
	return latest, found
}
