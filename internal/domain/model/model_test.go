package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
)

func testBeat(id string, price Money) Beat {
	return Beat{ID: id, Title: "Beat " + id, Genre: "Trap", Price: price, Licenses: AllLicenses()}
}

func TestLicensePriceMultipliers(t *testing.T) {
	cases := []struct {
		license License
		base    Money
		want    Money
	}{
		{LicenseBasic, 2900, 2900},
		{LicensePremium, 2900, 4350},
		{LicenseExclusive, 2900, 8700},
		{LicensePremium, 3900, 5850},
		{LicensePremium, 2901, 4352},
		{LicenseExclusive, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.license.Price(tc.base), "%s of %s", tc.license, tc.base)
	}
}

func TestParseLicense(t *testing.T) {
	l, err := ParseLicense("premium")
	require.NoError(t, err)
	assert.Equal(t, LicensePremium, l)

	_, err = ParseLicense("gold")
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "87.50", Money(8750).String())
	assert.Equal(t, "-0.05", Money(-5).String())
	assert.Equal(t, Money(5850), MoneyFromFloat(58.5))
	assert.InDelta(t, 29.0, Money(2900).Float(), 0.0001)
	assert.Equal(t, Money(0), Money(1000).ApplyRate(0))
	assert.Equal(t, Money(190), Money(1000).ApplyRate(1900))
}

func TestCartAddComputesPriceAndKeepsDuplicates(t *testing.T) {
	cart := NewCart()
	beat := testBeat("1", 2900)

	first, err := cart.Add(beat, LicenseBasic)
	require.NoError(t, err)
	second, err := cart.Add(beat, LicenseBasic)
	require.NoError(t, err)
	_, err = cart.Add(beat, LicenseExclusive)
	require.NoError(t, err)

	assert.Equal(t, Money(2900), first.Price)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, cart.Len())
	assert.Equal(t, Money(2900+2900+8700), cart.Subtotal())
}

func TestCartAddRejectsUnavailableLicense(t *testing.T) {
	cart := NewCart()
	beat := testBeat("1", 2900)
	beat.Licenses.Exclusive = false

	_, err := cart.Add(beat, LicenseExclusive)
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	_, err = cart.Add(beat, License("gold"))
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	assert.Zero(t, cart.Len())
}

func TestCartRemoveDropsEveryTier(t *testing.T) {
	cart := NewCart()
	a := testBeat("a", 2900)
	b := testBeat("b", 3900)
	for _, l := range []License{LicenseBasic, LicensePremium, LicenseExclusive} {
		_, err := cart.Add(a, l)
		require.NoError(t, err)
	}
	_, err := cart.Add(b, LicensePremium)
	require.NoError(t, err)

	removed := cart.Remove("a")
	assert.Equal(t, 3, removed)
	for _, item := range cart.Items() {
		assert.NotEqual(t, "a", item.Beat.ID)
	}
	assert.Equal(t, Money(5850), cart.Subtotal())
	assert.Zero(t, cart.Remove("missing"))
}

func TestCartSubtotalTracksSequences(t *testing.T) {
	cart := NewCart()
	beats := []Beat{testBeat("1", 2900), testBeat("2", 3900), testBeat("3", 4900)}
	licenses := []License{LicenseBasic, LicensePremium, LicenseExclusive}

	for i := 0; i < 9; i++ {
		_, err := cart.Add(beats[i%3], licenses[(i/3)%3])
		require.NoError(t, err)
		if i == 5 {
			cart.Remove("2")
		}
		var sum Money
		for _, item := range cart.Items() {
			sum += item.Price
		}
		assert.Equal(t, sum, cart.Subtotal())
	}

	cart.Clear()
	assert.Zero(t, cart.Subtotal())
}

func TestBeatMatchesQuery(t *testing.T) {
	beat := Beat{Title: "Purple Haze", Genre: "Hip Hop", Tags: []string{"chill", "Smooth"}}
	assert.True(t, beat.MatchesQuery("purple"))
	assert.True(t, beat.MatchesQuery("HIP"))
	assert.True(t, beat.MatchesQuery("smo"))
	assert.False(t, beat.MatchesQuery("drill"))
}

func TestSortForDisplayAndIntersect(t *testing.T) {
	now := time.Now()
	beats := []Beat{
		{ID: "old", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "featured-old", Featured: true, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "new", CreatedAt: now},
		{ID: "featured-new", Featured: true, CreatedAt: now.Add(-time.Hour)},
	}
	SortForDisplay(beats)
	ids := make([]string, 0, len(beats))
	for _, b := range beats {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"featured-new", "featured-old", "new", "old"}, ids)

	common := IntersectBeats(beats, []Beat{{ID: "new"}, {ID: "missing"}})
	require.Len(t, common, 1)
	assert.Equal(t, "new", common[0].ID)
	assert.Empty(t, IntersectBeats(beats, nil))
}

func TestNewOrderTotals(t *testing.T) {
	cart := NewCart()
	_, err := cart.Add(testBeat("1", 2900), LicenseBasic)
	require.NoError(t, err)
	_, err = cart.Add(testBeat("2", 3900), LicensePremium)
	require.NoError(t, err)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	order, err := NewOrder("ord_01abcdefgh", "fan@example.com", cart.Items(), 0, now)
	require.NoError(t, err)

	assert.Equal(t, Money(8750), order.Total)
	assert.Equal(t, order.ItemsTotal(), order.Subtotal)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, "ORD-20260501-01ABCDEFGH", order.Number)
	require.Len(t, order.Items, 2)
	assert.Equal(t, LicensePremium, order.Items[1].License)
}

func TestOrderNumberKeepsWholeSuffix(t *testing.T) {
	day := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	a := OrderNumber("ord_01m5284appe72v0m5jxt7dgmz5", day)
	b := OrderNumber("ord_01m5284ar2fmmvbtq0nx7dgmz5", day)

	assert.Equal(t, "ORD-20260501-01M5284APPE72V0M5JXT7DGMZ5", a)
	assert.NotEqual(t, a, b, "ids sharing their tail must still get distinct numbers")
	assert.Equal(t, "ORD-20260501-PLAIN", OrderNumber("plain", day))
}

func TestNewOrderTaxAndValidation(t *testing.T) {
	items := []CartItem{{Beat: testBeat("1", 10000), License: LicenseBasic, Price: 10000}}
	order, err := NewOrder("ord_1", "fan@example.com", items, 2000, time.Now())
	require.NoError(t, err)
	assert.Equal(t, Money(2000), order.Tax)
	assert.Equal(t, order.Subtotal+order.Tax, order.Total)

	_, err = NewOrder("ord_2", "  ", items, 0, time.Now())
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	_, err = NewOrder("ord_3", "fan@example.com", nil, 0, time.Now())
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}

func TestOrderTransitions(t *testing.T) {
	now := time.Now()
	order := &Order{ID: "ord_1", Status: OrderStatusPending}

	require.NoError(t, order.TransitionTo(OrderStatusProcessing, now))
	assert.ErrorIs(t, order.TransitionTo(OrderStatusPending, now), domainErrors.ErrInvalidTransition)
	require.NoError(t, order.TransitionTo(OrderStatusCompleted, now))
	assert.ErrorIs(t, order.TransitionTo(OrderStatusPending, now), domainErrors.ErrInvalidTransition)
	assert.ErrorIs(t, order.TransitionTo(OrderStatus("shipped"), now), domainErrors.ErrValidation)
	require.NoError(t, order.TransitionTo(OrderStatusRefunded, now))
	assert.True(t, order.Status.Terminal())

	cancelled := &Order{Status: OrderStatusCancelled}
	for _, next := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusRefunded, OrderStatusCancelled} {
		assert.ErrorIs(t, cancelled.TransitionTo(next, now), domainErrors.ErrInvalidTransition)
	}
}

func TestOrderDownloadLinksRequireCompletion(t *testing.T) {
	order := &Order{Status: OrderStatusProcessing}
	err := order.AttachDownloadLinks(map[string]string{"1": "https://dl/1"}, time.Now())
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	assert.Nil(t, order.DownloadLinks)

	order.Status = OrderStatusCompleted
	require.NoError(t, order.AttachDownloadLinks(map[string]string{"1": "https://dl/1"}, time.Now()))
	assert.Equal(t, "https://dl/1", order.DownloadLinks["1"])
}

func TestClassifyPaymentBoundaries(t *testing.T) {
	budget := Money(100000)
	assert.Equal(t, PaymentStatusUnpaid, ClassifyPayment(0, budget))
	assert.Equal(t, PaymentStatusPartial, ClassifyPayment(1, budget))
	assert.Equal(t, PaymentStatusPartial, ClassifyPayment(budget-1, budget))
	assert.Equal(t, PaymentStatusPaid, ClassifyPayment(budget, budget))
	assert.Equal(t, PaymentStatusPaid, ClassifyPayment(budget+1, budget))
}

func newTestCollaboration(t *testing.T) *Collaboration {
	t.Helper()
	c, err := NewCollaboration("collab_1", CollaborationDraft{
		Title:       "Summer single",
		Type:        CollaborationTypeProduction,
		ClientEmail: "artist@example.com",
		Budget:      50000,
	}, "usr_admin", time.Now())
	require.NoError(t, err)
	return c
}

func TestNewCollaborationDefaults(t *testing.T) {
	c := newTestCollaboration(t)
	assert.Equal(t, Money(0), c.PaidAmount)
	assert.Equal(t, PaymentStatusUnpaid, c.PaymentStatus)
	assert.Equal(t, CollaborationStatusInquiry, c.Status)
	assert.Equal(t, "usr_admin", c.CreatedBy)
	assert.Nil(t, c.SignedAt)

	_, err := NewCollaboration("collab_2", CollaborationDraft{Type: CollaborationTypeRemix, ClientEmail: "a@b.c"}, "u", time.Now())
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	_, err = NewCollaboration("collab_3", CollaborationDraft{Title: "x", Type: "dance", ClientEmail: "a@b.c"}, "u", time.Now())
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}

func TestCollaborationSignedAtStampedOnce(t *testing.T) {
	c := newTestCollaboration(t)
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	require.NoError(t, c.SetStatus(CollaborationStatusSigned, first))
	require.NotNil(t, c.SignedAt)
	require.NoError(t, c.SetStatus(CollaborationStatusSigned, second))
	assert.Equal(t, first, *c.SignedAt)
	assert.Equal(t, second, c.UpdatedAt)

	require.NoError(t, c.SetStatus(CollaborationStatusInProgress, second))
	require.NoError(t, c.SetStatus(CollaborationStatusSigned, second.Add(time.Hour)))
	assert.Equal(t, first, *c.SignedAt)
}

func TestCollaborationCompletedIsTerminal(t *testing.T) {
	c := newTestCollaboration(t)
	done := time.Now()
	require.NoError(t, c.SetStatus(CollaborationStatusCompleted, done))
	require.NoError(t, c.SetStatus(CollaborationStatusCompleted, done.Add(time.Hour)))
	assert.Equal(t, done, *c.CompletedAt)

	err := c.SetStatus(CollaborationStatusInProgress, done)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
	assert.Equal(t, CollaborationStatusCompleted, c.Status)
}

func TestCollaborationRecordPayment(t *testing.T) {
	c := newTestCollaboration(t)
	require.NoError(t, c.RecordPayment(20000, time.Now()))
	assert.Equal(t, PaymentStatusPartial, c.PaymentStatus)
	require.NoError(t, c.RecordPayment(60000, time.Now()))
	assert.Equal(t, PaymentStatusPaid, c.PaymentStatus)
	assert.Equal(t, Money(-10000), c.Outstanding())
	assert.ErrorIs(t, c.RecordPayment(-1, time.Now()), domainErrors.ErrValidation)
	assert.Equal(t, Money(60000), c.PaidAmount)
}

func TestCollaborationApplyKeepsImmutableFields(t *testing.T) {
	c := newTestCollaboration(t)
	createdAt, createdBy := c.CreatedAt, c.CreatedBy
	title := "Renamed"
	budget := Money(10000)
	status := CollaborationStatusSigned
	require.NoError(t, c.RecordPayment(10000, time.Now()))

	require.NoError(t, c.Apply(CollaborationPatch{Title: &title, Budget: &budget, Status: &status}, time.Now()))
	assert.Equal(t, "Renamed", c.Title)
	assert.Equal(t, PaymentStatusPaid, c.PaymentStatus)
	assert.NotNil(t, c.SignedAt)
	assert.Equal(t, createdAt, c.CreatedAt)
	assert.Equal(t, createdBy, c.CreatedBy)

	bad := CollaborationStatus("unknown")
	assert.ErrorIs(t, c.Apply(CollaborationPatch{Title: &title, Status: &bad}, time.Now()), domainErrors.ErrValidation)
}

func TestCollaborationFilterAndParticipants(t *testing.T) {
	c := Collaboration{Status: CollaborationStatusSigned, Type: CollaborationTypeRemix, ClientEmail: "Artist@Example.com", AssignedTo: "usr_9"}
	assert.True(t, CollaborationFilter{}.Matches(c))
	assert.True(t, CollaborationFilter{Status: CollaborationStatusSigned, Type: CollaborationTypeRemix}.Matches(c))
	assert.False(t, CollaborationFilter{Type: CollaborationTypeFeature}.Matches(c))
	assert.True(t, CollaborationFilter{Statuses: ActiveCollaborationStatuses}.Matches(c))
	assert.False(t, CollaborationFilter{Statuses: []CollaborationStatus{CollaborationStatusCompleted}}.Matches(c))

	assert.True(t, c.InvolvesParticipant("", "artist@example.com"))
	assert.True(t, c.InvolvesParticipant("usr_9", ""))
	assert.False(t, c.InvolvesParticipant("usr_1", "other@example.com"))
}

func TestStatsOnEmptyLedgers(t *testing.T) {
	assert.Equal(t, OrderStats{}, ComputeOrderStats(nil))
	assert.Equal(t, CollaborationStats{}, ComputeCollaborationStats(nil))
	assert.Equal(t, CatalogStats{}, ComputeCatalogStats(nil))
	assert.Equal(t, CustomerSummary{}, SummarizeCustomer(nil))
}

func TestComputeOrderStats(t *testing.T) {
	orders := []Order{
		{Status: OrderStatusCompleted, Total: 8750},
		{Status: OrderStatusPending, Total: 2900},
		{Status: OrderStatusCompleted, Total: 1250},
		{Status: OrderStatusCancelled, Total: 9900},
	}
	stats := ComputeOrderStats(orders)
	assert.Equal(t, Money(10000), stats.TotalRevenue)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 2, stats.CompletedOrders)
	assert.Equal(t, Money(2500), stats.AverageOrderValue)
}

func TestComputeCollaborationStats(t *testing.T) {
	collabs := []Collaboration{
		{Status: CollaborationStatusAgreed, Budget: 1000, PaidAmount: 200},
		{Status: CollaborationStatusInProgress, Budget: 500},
		{Status: CollaborationStatusCompleted, Budget: 800, PaidAmount: 800},
		{Status: CollaborationStatusCancelled, Budget: 700, PaidAmount: 100},
		{Status: CollaborationStatusInquiry, Budget: 300},
	}
	stats := ComputeCollaborationStats(collabs)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, Money(800), stats.TotalRevenue)
	assert.Equal(t, Money(800+500+300), stats.PendingRevenue)
}

func TestSummaries(t *testing.T) {
	orders := []Order{
		{Status: OrderStatusCompleted, Total: 4000, Items: make([]OrderItem, 2)},
		{Status: OrderStatusPending, Total: 1000, Items: make([]OrderItem, 1)},
	}
	customer := SummarizeCustomer(orders)
	assert.Equal(t, CustomerSummary{TotalOrders: 2, TotalSpent: 4000, TotalDownloads: 2}, customer)

	collabs := []Collaboration{
		{Status: CollaborationStatusSigned},
		{Status: CollaborationStatusContractSent},
		{Status: CollaborationStatusCompleted},
	}
	artist := SummarizeArtist(collabs, orders)
	assert.Equal(t, ArtistSummary{ActiveCollaborations: 1, CompletedCollaborations: 1, BeatsPurchased: 2, TotalSpent: 4000}, artist)

	catalog := ComputeCatalogStats([]Beat{{Genre: "Trap", Featured: true}, {Genre: "Trap"}, {Genre: "Lo-Fi"}})
	assert.Equal(t, CatalogStats{TotalBeats: 3, FeaturedBeats: 1, Genres: 2}, catalog)
}

func TestRoleParsing(t *testing.T) {
	for _, raw := range []string{"admin", "artist", "user"} {
		r, err := ParseRole(raw)
		require.NoError(t, err)
		assert.Equal(t, Role(raw), r)
	}
	_, err := ParseRole("root")
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}
