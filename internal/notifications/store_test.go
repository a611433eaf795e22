package notifications

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"offertrack/internal/events"
	"offertrack/internal/models"
	"offertrack/internal/storage"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var alice = &models.Account{ID: "1700000000000", Name: "Alice", Email: "alice@x.com"}

type recordingDisplay struct {
	shown []models.Notification
}

func (d *recordingDisplay) Show(n models.Notification) { d.shown = append(d.shown, n) }

// StoreTestSuite provides a test suite for the notification log
type StoreTestSuite struct {
	suite.Suite
	db      *storage.DB
	bus     *events.Bus
	clock   *clockwork.FakeClock
	display *recordingDisplay
	store   *Store
}

// SetupTest runs before each test
func (suite *StoreTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.bus = events.NewBus()
	suite.clock = clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	suite.display = &recordingDisplay{}
	suite.store = NewStore(db, suite.bus, suite.display, WithClock(suite.clock))
}

// TearDownTest runs after each test
func (suite *StoreTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *StoreTestSuite) signIn(acct *models.Account) {
	suite.bus.Publish(events.UserChanged{Account: acct})
}

func (suite *StoreTestSuite) persisted(accountID string) []models.Notification {
	entries, _, err := storage.LoadList[models.Notification](suite.db, storage.NotificationsKey(accountID))
	require.NoError(suite.T(), err)
	return entries
}

func (suite *StoreTestSuite) TestAddWithoutAccountIsNoop() {
	n, err := suite.store.Add(models.KindInfo, "hello", "")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), n)
	assert.Empty(suite.T(), suite.store.List())
	assert.Empty(suite.T(), suite.display.shown)
}

func (suite *StoreTestSuite) TestAddPrependsUnreadAndShows() {
	suite.signIn(alice)

	first, err := suite.store.Add(models.KindSuccess, "first", "")
	require.NoError(suite.T(), err)
	suite.clock.Advance(time.Minute)
	second, err := suite.store.Add(models.KindWarning, "second", "details")
	require.NoError(suite.T(), err)

	list := suite.store.List()
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), second.ID, list[0].ID)
	assert.Equal(suite.T(), first.ID, list[1].ID)
	assert.False(suite.T(), list[0].Read)
	assert.Equal(suite.T(), suite.clock.Now().UTC(), list[0].Timestamp)
	assert.NotEqual(suite.T(), first.ID, second.ID)

	require.Len(suite.T(), suite.display.shown, 2)
	assert.Equal(suite.T(), models.KindWarning, suite.display.shown[1].Kind)

	assert.Len(suite.T(), suite.persisted(alice.ID), 2)
}

func (suite *StoreTestSuite) TestAddRejectsUnknownKind() {
	suite.signIn(alice)

	_, err := suite.store.Add(models.Kind("loud"), "x", "")
	assert.ErrorIs(suite.T(), err, models.ErrInvalidInput)
	assert.Empty(suite.T(), suite.store.List())
}

func (suite *StoreTestSuite) TestLogIsCappedAtFifty() {
	suite.signIn(alice)

	for i := 1; i <= MaxEntries+1; i++ {
		_, err := suite.store.Add(models.KindInfo, fmt.Sprintf("n%d", i), "")
		require.NoError(suite.T(), err)
	}

	list := suite.store.List()
	require.Len(suite.T(), list, MaxEntries)
	assert.Equal(suite.T(), "n51", list[0].Title)
	assert.Equal(suite.T(), "n2", list[MaxEntries-1].Title, "oldest entry is evicted")
	assert.Len(suite.T(), suite.persisted(alice.ID), MaxEntries)
}

func (suite *StoreTestSuite) TestUnreadCountAndMarkAllAsRead() {
	suite.signIn(alice)
	_, err := suite.store.Add(models.KindInfo, "a", "")
	require.NoError(suite.T(), err)
	before := suite.store.UnreadCount()

	_, err = suite.store.Add(models.KindError, "X", "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), before+1, suite.store.UnreadCount())

	require.NoError(suite.T(), suite.store.MarkAllAsRead())
	assert.Zero(suite.T(), suite.store.UnreadCount())
	assert.Len(suite.T(), suite.store.List(), 2, "entries remain")
	for _, n := range suite.persisted(alice.ID) {
		assert.True(suite.T(), n.Read)
	}
}

func (suite *StoreTestSuite) TestMarkAsRead() {
	suite.signIn(alice)
	a, err := suite.store.Add(models.KindInfo, "a", "")
	require.NoError(suite.T(), err)
	_, err = suite.store.Add(models.KindInfo, "b", "")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.store.MarkAsRead(a.ID))
	assert.Equal(suite.T(), 1, suite.store.UnreadCount())

	require.NoError(suite.T(), suite.store.MarkAsRead("missing"))
	assert.Equal(suite.T(), 1, suite.store.UnreadCount())
}

func (suite *StoreTestSuite) TestClearAndClearAll() {
	suite.signIn(alice)
	a, err := suite.store.Add(models.KindInfo, "a", "")
	require.NoError(suite.T(), err)
	_, err = suite.store.Add(models.KindInfo, "b", "")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.store.Clear(a.ID))
	list := suite.store.List()
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), "b", list[0].Title)

	require.NoError(suite.T(), suite.store.ClearAll())
	assert.Empty(suite.T(), suite.store.List())
	assert.Empty(suite.T(), suite.persisted(alice.ID))
}

func (suite *StoreTestSuite) TestReloadOnUserChange() {
	suite.signIn(alice)
	_, err := suite.store.Add(models.KindInfo, "for alice", "")
	require.NoError(suite.T(), err)

	suite.bus.Publish(events.UserChanged{})
	assert.Empty(suite.T(), suite.store.List())
	n, err := suite.store.Add(models.KindInfo, "nobody", "")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), n)

	suite.signIn(alice)
	list := suite.store.List()
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), "for alice", list[0].Title)
}

func (suite *StoreTestSuite) TestDemoLogIsEmptyAndNeverPersisted() {
	suite.signIn(models.DemoAccount())
	assert.Empty(suite.T(), suite.store.List())

	_, err := suite.store.Add(models.KindSuccess, "demo", "")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), suite.store.List(), 1)
	assert.Len(suite.T(), suite.display.shown, 1)

	_, ok, err := suite.db.Get(storage.NotificationsKey(models.DemoAccountID))
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)

	suite.signIn(models.DemoAccount())
	assert.Empty(suite.T(), suite.store.List(), "demo log resets on every session")
}

func (suite *StoreTestSuite) TestMalformedLogLoadsEmpty() {
	require.NoError(suite.T(), suite.db.Set(storage.NotificationsKey(alice.ID), `[{"id":"x","timestamp":"yesterday"}]`))

	suite.signIn(alice)
	assert.Empty(suite.T(), suite.store.List())
}

func (suite *StoreTestSuite) TestTimestampsSurviveReload() {
	suite.signIn(alice)
	n, err := suite.store.Add(models.KindInfo, "a", "")
	require.NoError(suite.T(), err)

	suite.signIn(alice)
	list := suite.store.List()
	require.Len(suite.T(), list, 1)
	assert.True(suite.T(), n.Timestamp.Equal(list[0].Timestamp))
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestWriterDisplay(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriterDisplay(&buf)

	d.Show(models.Notification{Kind: models.KindError, Title: "Signup failed", Description: "email taken"})
	d.Show(models.Notification{Kind: models.KindSuccess, Title: "Saved"})

	assert.Equal(t, "[error] Signup failed: email taken\n[ok] Saved\n", buf.String())
}
