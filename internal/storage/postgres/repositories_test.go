package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/beatstore/internal/domain/errors"
	"github.com/polkiloo/beatstore/internal/domain/model"
)

var (
	userCols   = []string{"id", "email", "display_name", "role", "password_hash", "created_at"}
	beatCols   = []string{"id", "title", "artist", "bpm", "musical_key", "genre", "price", "audio_url", "artwork_url", "tags", "license_basic", "license_premium", "license_exclusive", "featured", "created_at", "updated_at"}
	orderCols  = []string{"id", "number", "customer_email", "items", "subtotal", "tax", "total", "status", "download_links", "created_at", "updated_at"}
	collabCols = []string{"id", "title", "type", "description", "client_name", "client_email", "assigned_to", "budget", "paid_amount", "payment_status", "status", "deadline", "notes", "created_by", "created_at", "updated_at", "signed_at", "completed_at"}
)

const orderItemsJSON = `[{"beat_id":"1","title":"Midnight Dreams","license":"premium","price":4350},{"beat_id":"3","title":"Neon Nights","license":"basic","price":4900}]`

func TestUserRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	createdAt := time.Now()
	user := model.User{ID: "usr_1", Email: " Ana@Example.com ", DisplayName: "Ana", Role: model.RoleUser, PasswordHash: "hash", CreatedAt: createdAt}

	mock.ExpectQuery("INSERT INTO users").WithArgs("usr_1", "ana@example.com", "Ana", "user", "hash", pgxmockv3.AnyArg()).WillReturnRows(
		pgxmockv3.NewRows([]string{"created_at"}).AddRow(createdAt),
	)
	created, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "usr_1" || created.Email != "ana@example.com" || created.Role != model.RoleUser {
		t.Fatalf("unexpected user: %+v", created)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs("usr_1", "ana@example.com", "Ana", "user", "hash", pgxmockv3.AnyArg()).WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), user); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs("usr_1", "ana@example.com", "Ana", "user", "hash", pgxmockv3.AnyArg()).WillReturnError(errors.New("other"))
	if _, err := repo.Create(context.Background(), user); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("ana@example.com").WillReturnRows(
		pgxmockv3.NewRows(userCols).AddRow("usr_1", "ana@example.com", "Ana", "admin", "hash", createdAt))
	got, err := repo.GetByEmail(context.Background(), "ANA@example.com")
	if err != nil || got.Role != model.RoleAdmin || got.DisplayName != "Ana" {
		t.Fatalf("unexpected user: %+v err=%v", got, err)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("missing@example.com").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByEmail(context.Background(), "missing@example.com"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs("usr_1").WillReturnRows(
		pgxmockv3.NewRows(userCols).AddRow("usr_1", "ana@example.com", "Ana", "artist", "hash", createdAt))
	if got, err := repo.GetByID(context.Background(), "usr_1"); err != nil || got.Role != model.RoleArtist {
		t.Fatalf("unexpected user: %+v err=%v", got, err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs("usr_2").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "usr_2"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs("usr_3").WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(context.Background(), "usr_3"); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	mock.ExpectExec("UPDATE users SET role=").WithArgs("admin", "usr_1").WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateRole(context.Background(), "usr_1", model.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE users SET role=").WithArgs("admin", "usr_9").WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdateRole(context.Background(), "usr_9", model.RoleAdmin); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE users SET password_hash=").WithArgs("new", "usr_1").WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdatePassword(context.Background(), "usr_1", "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE users SET password_hash=").WithArgs("new", "usr_1").WillReturnError(errors.New("update"))
	if err := repo.UpdatePassword(context.Background(), "usr_1", "new"); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func beatRow(rows *pgxmockv3.Rows, id, title, genre string, featured bool, created time.Time, tags ...string) *pgxmockv3.Rows {
	return rows.AddRow(id, title, seedArtist, 140, "Am", genre, int64(2900), "", "", tags, true, true, false, featured, created, created)
}

func TestBeatRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &beatRepository{storage: storage}

	now := time.Now()
	mock.ExpectQuery("FROM beats ORDER BY featured DESC").WillReturnRows(
		beatRow(beatRow(pgxmockv3.NewRows(beatCols), "1", "Midnight Dreams", "Trap", true, now, "dark"), "3", "Neon Nights", "Drill", false, now, "uk"))
	beats, err := repo.GetAll(context.Background())
	if err != nil || len(beats) != 2 {
		t.Fatalf("unexpected result: %v err=%v", beats, err)
	}
	if beats[0].Price != 2900 || beats[0].BPM != 140 || !beats[0].Featured || beats[0].Licenses.Exclusive {
		t.Fatalf("unexpected beat: %+v", beats[0])
	}

	mock.ExpectQuery("FROM beats WHERE id=").WithArgs("1").WillReturnRows(
		beatRow(pgxmockv3.NewRows(beatCols), "1", "Midnight Dreams", "Trap", true, now))
	beat, err := repo.GetByID(context.Background(), "1")
	if err != nil || beat.Title != "Midnight Dreams" || beat.Tags == nil {
		t.Fatalf("unexpected beat: %+v err=%v", beat, err)
	}

	mock.ExpectQuery("FROM beats WHERE id=").WithArgs("404").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "404"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("ILIKE").WithArgs(`%100\%%`).WillReturnRows(pgxmockv3.NewRows(beatCols))
	beats, err = repo.Search(context.Background(), "100%")
	if err != nil || beats == nil || len(beats) != 0 {
		t.Fatalf("expected empty non-nil result, got %v err=%v", beats, err)
	}

	mock.ExpectQuery("FROM beats WHERE genre=").WithArgs("Trap").WillReturnRows(
		beatRow(pgxmockv3.NewRows(beatCols), "1", "Midnight Dreams", "Trap", true, now))
	if beats, err := repo.GetByGenre(context.Background(), "Trap"); err != nil || len(beats) != 1 {
		t.Fatalf("unexpected result: %v err=%v", beats, err)
	}

	mock.ExpectQuery("FROM beats WHERE genre=").WithArgs("Drill").WillReturnError(errors.New("query"))
	if _, err := repo.GetByGenre(context.Background(), "Drill"); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	mock.ExpectQuery("FROM beats ORDER BY featured DESC").WillReturnRows(
		pgxmockv3.NewRows(beatCols).AddRow("1", "t", "a", 140, "Am", "Trap", "bad", "", "", []string{}, true, true, true, false, now, now))
	if _, err := repo.GetAll(context.Background()); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected scan error, got %v", err)
	}

	mock.ExpectQuery("FROM beats ORDER BY featured DESC").WillReturnRows(
		beatRow(pgxmockv3.NewRows(beatCols), "1", "Midnight Dreams", "Trap", true, now).RowError(0, errors.New("row err")))
	if _, err := repo.GetAll(context.Background()); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected row error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestBeatRepositoryRowsError(t *testing.T) {
	cause := errors.New("rows err")
	storage := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: cause}}}
	repo := &beatRepository{storage: storage}

	if _, err := repo.Search(context.Background(), "trap"); !errors.Is(err, cause) || !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestLikePattern(t *testing.T) {
	cases := map[string]string{
		"trap":    "%trap%",
		"50%":     `%50\%%`,
		"lo_fi":   `%lo\_fi%`,
		`back\`:   `%back\\%`,
		"":        "%%",
		"R&B":     "%R&B%",
		"Hip Hop": "%Hip Hop%",
	}
	for in, want := range cases {
		if got := likePattern(in); got != want {
			t.Fatalf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func sampleOrder(now time.Time) *model.Order {
	return &model.Order{
		ID:            "ord_1",
		Number:        "ORD-20260101-000001",
		CustomerEmail: "ana@example.com",
		Items: []model.OrderItem{
			{BeatID: "1", Title: "Midnight Dreams", License: model.LicensePremium, Price: 4350},
			{BeatID: "3", Title: "Neon Nights", License: model.LicenseBasic, Price: 4900},
		},
		Subtotal:  9250,
		Total:     9250,
		Status:    model.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	order := sampleOrder(time.Now())
	args := []any{"ord_1", order.Number, "ana@example.com", pgxmockv3.AnyArg(), int64(9250), int64(0), int64(9250), "pending", pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg()}

	mock.ExpectExec("INSERT INTO orders").WithArgs(args...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO orders").WithArgs(args...).WillReturnError(&pgconn.PgError{Code: "23505"})
	if err := repo.Create(context.Background(), order); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectExec("INSERT INTO orders").WithArgs(args...).WillReturnError(errors.New("insert"))
	if err := repo.Create(context.Background(), order); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetAndList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	now := time.Now()
	links := []byte(`{"1":"https://dl.example/ord_1/1?token=x"}`)

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs("ord_1").WillReturnRows(
		pgxmockv3.NewRows(orderCols).AddRow("ord_1", "ORD-1", "ana@example.com", []byte(orderItemsJSON), int64(9250), int64(0), int64(9250), "completed", links, now, now))
	order, err := repo.GetByID(context.Background(), "ord_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Items) != 2 || order.Items[0].License != model.LicensePremium || order.Items[0].Price != 4350 {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
	if order.Status != model.OrderStatusCompleted || order.DownloadLinks["1"] == "" {
		t.Fatalf("unexpected order: %+v", order)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs("broken").WillReturnRows(
		pgxmockv3.NewRows(orderCols).AddRow("broken", "ORD-2", "ana@example.com", []byte(`{`), int64(0), int64(0), int64(0), "pending", nil, now, now))
	if _, err := repo.GetByID(context.Background(), "broken"); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected decode failure as backend error, got %v", err)
	}

	mock.ExpectQuery("WHERE lower\\(customer_email\\)").WithArgs("Ana@Example.com").WillReturnRows(
		pgxmockv3.NewRows(orderCols).
			AddRow("ord_2", "ORD-2", "ana@example.com", []byte(orderItemsJSON), int64(9250), int64(0), int64(9250), "pending", nil, now, now).
			AddRow("ord_1", "ORD-1", "ana@example.com", []byte(orderItemsJSON), int64(9250), int64(0), int64(9250), "completed", links, now.Add(-time.Hour), now))
	orders, err := repo.ListByCustomer(context.Background(), "Ana@Example.com")
	if err != nil || len(orders) != 2 || orders[0].ID != "ord_2" || orders[0].DownloadLinks != nil {
		t.Fatalf("unexpected result: %+v err=%v", orders, err)
	}

	mock.ExpectQuery("LIMIT NULLIF").WithArgs(5).WillReturnRows(pgxmockv3.NewRows(orderCols))
	orders, err = repo.ListRecent(context.Background(), 5)
	if err != nil || orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", orders, err)
	}

	mock.ExpectQuery("LIMIT NULLIF").WithArgs(0).WillReturnRows(pgxmockv3.NewRows(orderCols))
	if _, err := repo.ListRecent(context.Background(), -3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM orders ORDER BY created_at DESC").WillReturnError(errors.New("query"))
	if _, err := repo.ListAll(context.Background()); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	mock.ExpectQuery("WHERE status='completed' AND").WithArgs(32).WillReturnRows(
		pgxmockv3.NewRows(orderCols).AddRow("ord_3", "ORD-3", "bo@example.com", []byte(orderItemsJSON), int64(9250), int64(0), int64(9250), "completed", nil, now, now))
	orders, err = repo.ListAwaitingFulfillment(context.Background(), 32)
	if err != nil || len(orders) != 1 || orders[0].ID != "ord_3" {
		t.Fatalf("unexpected result: %+v err=%v", orders, err)
	}

	mock.ExpectQuery("FROM orders ORDER BY created_at DESC").WillReturnRows(
		pgxmockv3.NewRows(orderCols).
			AddRow("ord_1", "ORD-1", "ana@example.com", []byte(orderItemsJSON), int64(9250), int64(0), int64(9250), "pending", nil, now, now).
			RowError(0, errors.New("row err")))
	if _, err := repo.ListAll(context.Background()); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected row error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryListRowsError(t *testing.T) {
	cause := errors.New("rows err")
	storage := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: cause}}}
	repo := &orderRepository{storage: storage}

	if _, err := repo.ListByCustomer(context.Background(), "ana@example.com"); !errors.Is(err, cause) {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestOrderRepositoryUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	now := time.Now()
	pendingRow := func() *pgxmockv3.Rows {
		return pgxmockv3.NewRows(orderCols).AddRow("ord_1", "ORD-1", "ana@example.com", []byte(orderItemsJSON), int64(9250), int64(0), int64(9250), "pending", nil, now, now)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("ord_1").WillReturnRows(pendingRow())
	mock.ExpectExec("UPDATE orders SET status=").WithArgs("completed", pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), "ord_1").WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	updated, err := repo.Update(context.Background(), "ord_1", func(o *model.Order) error {
		return o.TransitionTo(model.OrderStatusCompleted, now)
	})
	if err != nil || updated.Status != model.OrderStatusCompleted || len(updated.Items) != 2 {
		t.Fatalf("unexpected result: %+v err=%v", updated, err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("ord_1").WillReturnRows(pendingRow())
	mock.ExpectRollback()
	_, err = repo.Update(context.Background(), "ord_1", func(o *model.Order) error {
		return o.TransitionTo(model.OrderStatusRefunded, now)
	})
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()
	if _, err := repo.Update(context.Background(), "missing", func(*model.Order) error { return nil }); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("ord_1").WillReturnRows(pendingRow())
	mock.ExpectExec("UPDATE orders SET status=").WithArgs("cancelled", pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), "ord_1").WillReturnError(errors.New("update"))
	mock.ExpectRollback()
	_, err = repo.Update(context.Background(), "ord_1", func(o *model.Order) error {
		return o.TransitionTo(model.OrderStatusCancelled, now)
	})
	if !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderEncodingRoundTrip(t *testing.T) {
	order := sampleOrder(time.Now())
	data, err := encodeOrderItems(order.Items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"license":"premium"`) || strings.Contains(string(data), "artwork_url") {
		t.Fatalf("unexpected encoding: %s", data)
	}

	links, err := encodeDownloadLinks(nil)
	if err != nil || links != nil {
		t.Fatalf("expected NULL for empty links, got %q err=%v", links, err)
	}
	links, err = encodeDownloadLinks(map[string]string{"1": "u"})
	if err != nil || string(links) != `{"1":"u"}` {
		t.Fatalf("unexpected links: %q err=%v", links, err)
	}
}

func collabRow(rows *pgxmockv3.Rows, id, status string, created time.Time, signed *time.Time) *pgxmockv3.Rows {
	return rows.AddRow(id, "Feature verse", "feature", "", "Bo", "bo@example.com", "usr_7", int64(50000), int64(10000),
		"partial", status, nil, "", "usr_admin", created, created, signed, nil)
}

func TestCollaborationRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &collaborationRepository{storage: storage}

	now := time.Now()
	collab := &model.Collaboration{
		ID: "collab_1", Title: "Feature verse", Type: model.CollaborationTypeFeature, ClientEmail: "bo@example.com",
		Budget: 50000, PaymentStatus: model.PaymentStatusUnpaid, Status: model.CollaborationStatusInquiry,
		CreatedBy: "usr_admin", CreatedAt: now, UpdatedAt: now,
	}

	insertArgs := []any{
		"collab_1", "Feature verse", "feature", "", "", "bo@example.com", "",
		int64(50000), int64(0), "unpaid", "inquiry", pgxmockv3.AnyArg(),
		"", "usr_admin", now, now, pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
	}
	mock.ExpectExec("INSERT INTO collaborations").WithArgs(insertArgs...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.Create(context.Background(), collab); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO collaborations").WithArgs(insertArgs...).WillReturnError(&pgconn.PgError{Code: "23505"})
	if err := repo.Create(context.Background(), collab); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	signed := now.Add(-time.Hour)
	mock.ExpectQuery("FROM collaborations WHERE id=").WithArgs("collab_1").WillReturnRows(
		collabRow(pgxmockv3.NewRows(collabCols), "collab_1", "signed", now, &signed))
	got, err := repo.GetByID(context.Background(), "collab_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.CollaborationStatusSigned || got.SignedAt == nil || got.Deadline != nil || got.Budget != 50000 {
		t.Fatalf("unexpected collaboration: %+v", got)
	}

	mock.ExpectQuery("FROM collaborations WHERE id=").WithArgs("nope").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("WHERE status=").WithArgs("signed", "feature", 10).WillReturnRows(
		collabRow(pgxmockv3.NewRows(collabCols), "collab_1", "signed", now, &signed))
	list, err := repo.List(context.Background(), model.CollaborationFilter{Status: model.CollaborationStatusSigned, Type: model.CollaborationTypeFeature, Limit: 10})
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectQuery("lower\\(client_email\\)").WithArgs("bo@example.com", "usr_7").WillReturnRows(
		collabRow(collabRow(pgxmockv3.NewRows(collabCols), "collab_2", "inquiry", now, nil), "collab_1", "signed", now.Add(-time.Hour), &signed))
	list, err = repo.ListForParticipant(context.Background(), "usr_7", "bo@example.com")
	if err != nil || len(list) != 2 || list[0].ID != "collab_2" {
		t.Fatalf("unexpected result: %v err=%v", list, err)
	}

	mock.ExpectExec("DELETE FROM collaborations").WithArgs("collab_1").WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), "collab_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM collaborations").WithArgs("collab_1").WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), "collab_1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM collaborations").WithArgs("collab_1").WillReturnError(errors.New("delete"))
	if err := repo.Delete(context.Background(), "collab_1"); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCollaborationRepositoryUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &collaborationRepository{storage: storage}

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("collab_1").WillReturnRows(
		collabRow(pgxmockv3.NewRows(collabCols), "collab_1", "agreed", now, nil))
	mock.ExpectExec("UPDATE collaborations SET").WithArgs(
		"Feature verse", "feature", "", "Bo", "bo@example.com", "usr_7",
		int64(50000), int64(50000), "paid", "signed", pgxmockv3.AnyArg(),
		"", now, pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), "collab_1",
	).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	updated, err := repo.Update(context.Background(), "collab_1", func(c *model.Collaboration) error {
		if err := c.SetStatus(model.CollaborationStatusSigned, now); err != nil {
			return err
		}
		return c.RecordPayment(50000, now)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.SignedAt == nil || updated.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("unexpected collaboration: %+v", updated)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("collab_1").WillReturnRows(
		collabRow(pgxmockv3.NewRows(collabCols), "collab_1", "cancelled", now, nil))
	mock.ExpectRollback()
	_, err = repo.Update(context.Background(), "collab_1", func(c *model.Collaboration) error {
		return c.SetStatus(model.CollaborationStatusInquiry, now)
	})
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("gone").WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()
	if _, err := repo.Update(context.Background(), "gone", func(*model.Collaboration) error { return nil }); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("collab_1").WillReturnRows(
		collabRow(pgxmockv3.NewRows(collabCols), "collab_1", "agreed", now, nil))
	mock.ExpectExec("UPDATE collaborations SET").WithArgs(
		"Feature verse", "feature", "", "Bo", "bo@example.com", "usr_7",
		int64(50000), int64(10000), "partial", "agreed", pgxmockv3.AnyArg(),
		"", pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), "collab_1",
	).WillReturnError(errors.New("update"))
	mock.ExpectRollback()
	if _, err := repo.Update(context.Background(), "collab_1", func(*model.Collaboration) error { return nil }); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCollaborationListQuery(t *testing.T) {
	query, args := collaborationListQuery(model.CollaborationFilter{})
	if strings.Contains(query, "WHERE") || strings.Contains(query, "LIMIT") || len(args) != 0 {
		t.Fatalf("unexpected unfiltered query %q args=%v", query, args)
	}

	query, args = collaborationListQuery(model.CollaborationFilter{
		Statuses: model.ActiveCollaborationStatuses,
		Type:     model.CollaborationTypeRemix,
		Limit:    3,
	})
	if !strings.Contains(query, "status = ANY($1)") || !strings.Contains(query, "type=$2") || !strings.HasSuffix(query, "LIMIT $3") {
		t.Fatalf("unexpected query %q", query)
	}
	statuses, ok := args[0].([]string)
	if !ok || len(statuses) != 4 || statuses[0] != "agreed" || args[1] != "remix" || args[2] != 3 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestSubscriberRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &subscriberRepository{storage: storage}

	mock.ExpectExec("INSERT INTO subscribers").WithArgs("fan@example.com").WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	added, err := repo.Add(context.Background(), " Fan@Example.com")
	if err != nil || !added {
		t.Fatalf("expected added, got %v err=%v", added, err)
	}

	mock.ExpectExec("INSERT INTO subscribers").WithArgs("fan@example.com").WillReturnResult(pgxmockv3.NewResult("INSERT", 0))
	added, err = repo.Add(context.Background(), "fan@example.com")
	if err != nil || added {
		t.Fatalf("expected duplicate, got %v err=%v", added, err)
	}

	mock.ExpectExec("INSERT INTO subscribers").WithArgs("fan@example.com").WillReturnError(errors.New("insert"))
	if _, err := repo.Add(context.Background(), "fan@example.com"); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	now := time.Now()
	mock.ExpectQuery("FROM subscribers").WillReturnRows(
		pgxmockv3.NewRows([]string{"email", "created_at"}).AddRow("fan@example.com", now).AddRow("old@example.com", now.Add(-time.Hour)))
	subs, err := repo.List(context.Background())
	if err != nil || len(subs) != 2 || subs[0].Email != "fan@example.com" {
		t.Fatalf("unexpected result: %v err=%v", subs, err)
	}

	mock.ExpectQuery("FROM subscribers").WillReturnError(errors.New("query"))
	if _, err := repo.List(context.Background()); !errors.Is(err, domainErrors.ErrBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
