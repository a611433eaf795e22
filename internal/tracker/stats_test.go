package tracker

import (
	"testing"
	"time"

	"offertrack/internal/events"
	"offertrack/internal/models"
	"offertrack/internal/storage"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemoStore(t *testing.T, now time.Time) *Store {
	t.Helper()
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := events.NewBus()
	s := NewStore(db, bus, WithClock(clockwork.NewFakeClockAt(now)))
	bus.Publish(events.UserChanged{Account: models.DemoAccount()})
	return s
}

func TestStats_DemoDataset(t *testing.T) {
	s := newDemoStore(t, time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC))

	st := s.Stats()
	assert.Equal(t, 6, st.Total)
	assert.Equal(t, 2, st.ByStatus[models.StatusApplied])
	assert.Equal(t, 2, st.ByStatus[models.StatusInterview])
	assert.Equal(t, 1, st.ByStatus[models.StatusOffer])
	assert.Equal(t, 1, st.ByStatus[models.StatusRejected])
	assert.Equal(t, 67, st.ResponseRate)

	require.Len(t, st.Recent, RecentLimit)
	assert.Equal(t, "Airbnb", st.Recent[0].Company)
	assert.Equal(t, "Meta", st.Recent[1].Company)

	// 2026-02-16 and 2026-02-17 are on or after the 15th.
	assert.Equal(t, 2, st.UpcomingInterviews)
	assert.Equal(t, 5, st.PastInterviews)
}

func TestStats_Empty(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db, events.NewBus())
	st := s.Stats()
	assert.Zero(t, st.Total)
	assert.Zero(t, st.ResponseRate)
	assert.Empty(t, st.Recent)
}

func TestTimeline_SortsByDate(t *testing.T) {
	s := newDemoStore(t, time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC))

	tl := s.Timeline("4")
	require.Len(t, tl, 3)
	assert.Equal(t, []string{"2026-02-01", "2026-02-05", "2026-02-10"},
		[]string{tl[0].Date, tl[1].Date, tl[2].Date})
}

func TestSearch(t *testing.T) {
	s := newDemoStore(t, time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		term   string
		status string
		want   []string
	}{
		{"all", "", "all", []string{"Google", "Meta", "Amazon", "Stripe", "Netflix", "Airbnb"}},
		{"by company, case-insensitive", "GOOG", "", []string{"Google"}},
		{"by location", "remote", "", []string{"Airbnb"}},
		{"by role and status", "engineer", "applied", []string{"Meta", "Airbnb"}},
		{"status only", "", "offer", []string{"Stripe"}},
		{"no match", "zzz", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, a := range s.Search(tt.term, tt.status) {
				got = append(got, a.Company)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
