package usecases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"subtrack/internal/application/subscription/validation"
	"subtrack/internal/domain/audit"
	"subtrack/internal/domain/subscription"
	vo "subtrack/internal/domain/subscription/valueobjects"
	"subtrack/internal/shared/dateutil"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
)

// fakeSubscriptionRepo is a map-backed subscription.Repository.
type fakeSubscriptionRepo struct {
	subs   map[uint]*subscription.Subscription
	nextID uint
	err    error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[uint]*subscription.Subscription{}, nextID: 1}
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *subscription.Subscription) error {
	if r.err != nil {
		return r.err
	}
	if err := sub.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.subs[sub.ID()] = sub
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.subs[id], nil
}

func (r *fakeSubscriptionRepo) GetByIDAndUserID(ctx context.Context, id, userID uint) (*subscription.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	sub := r.subs[id]
	if sub == nil || sub.UserID() != userID {
		return nil, nil
	}
	return sub, nil
}

func (r *fakeSubscriptionRepo) GetActiveByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*subscription.Subscription
	for _, sub := range r.subs {
		if sub.UserID() == userID && sub.IsActive() {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) GetUpcomingByUserID(ctx context.Context, userID uint, from, to time.Time) ([]*subscription.Subscription, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*subscription.Subscription
	for _, sub := range r.subs {
		next := sub.NextPaymentDate()
		if sub.UserID() == userID && sub.IsActive() && !next.Before(from) && !next.After(to) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) Update(ctx context.Context, sub *subscription.Subscription) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.subs[sub.ID()]; !ok {
		return errors.New("subscription not found")
	}
	r.subs[sub.ID()] = sub
	return nil
}

// fakeAuditRepo records entries in order.
type fakeAuditRepo struct {
	entries []*audit.Entry
	err     error
}

func (r *fakeAuditRepo) Create(ctx context.Context, entry *audit.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

// passTx runs the function without any transaction.
type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func ptr(s string) *string {
	return &s
}

// validationInput builds a full create payload. Empty strings mean the field
// is absent, matching a request body that omits the key.
func validationInput(name, amount, periodicity, startDate string) validation.Input {
	return validationInputPartial(map[string]string{
		"name":        name,
		"amount":      amount,
		"periodicity": periodicity,
		"start_date":  startDate,
	})
}

func validationInputPartial(fields map[string]string) validation.Input {
	in := validation.Input{}
	set := func(dst **string, key string) {
		if v, ok := fields[key]; ok && v != "" {
			*dst = ptr(v)
		}
	}
	set(&in.Name, "name")
	set(&in.Amount, "amount")
	set(&in.Periodicity, "periodicity")
	set(&in.StartDate, "start_date")
	set(&in.NextPaymentDate, "next_payment_date")
	return in
}

func seedSubscription(t *testing.T, repo *fakeSubscriptionRepo, userID uint, name, amount, periodicity, startDate string) *subscription.Subscription {
	t.Helper()
	a, err := vo.ParseAmount(amount)
	if err != nil {
		t.Fatalf("ParseAmount(%q): %v", amount, err)
	}
	p, err := vo.ParsePeriodicity(periodicity)
	if err != nil {
		t.Fatalf("ParsePeriodicity(%q): %v", periodicity, err)
	}
	start, err := dateutil.Parse(startDate)
	if err != nil {
		t.Fatalf("Parse(%q): %v", startDate, err)
	}
	sub, err := subscription.NewSubscription(userID, name, a, p, start)
	if err != nil {
		t.Fatalf("NewSubscription: %v", err)
	}
	if err := repo.Create(context.Background(), sub); err != nil {
		t.Fatalf("seed create: %v", err)
	}
	return sub
}

func TestCreateSubscription(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	auditRepo := &fakeAuditRepo{}
	uc := NewCreateSubscriptionUseCase(subRepo, auditRepo, passTx{}, quietLogger())

	sub, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		UserID: 1,
		Fields: validationInput("Netflix", "15.99", "monthly", "2024-01-01"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if sub.ID() == 0 {
		t.Error("created subscription should have an ID")
	}
	if got := dateutil.Format(sub.NextPaymentDate()); got != "2024-01-01" {
		t.Errorf("next payment date = %s, want the start date", got)
	}

	if len(auditRepo.entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(auditRepo.entries))
	}
	entry := auditRepo.entries[0]
	if entry.Action() != audit.ActionCreate {
		t.Errorf("audit action = %q", entry.Action())
	}
	if entry.RecordID() != sub.ID() {
		t.Errorf("audit record ID = %d, want %d", entry.RecordID(), sub.ID())
	}
	if entry.OldValues() != nil {
		t.Error("create audit should carry no old values")
	}
	nv := entry.NewValues()
	if nv["name"] != "Netflix" || nv["amount"] != "15.99" || nv["is_active"] != true {
		t.Errorf("create snapshot = %v", nv)
	}
}

func TestCreateSubscription_ValidationFailure(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	auditRepo := &fakeAuditRepo{}
	uc := NewCreateSubscriptionUseCase(subRepo, auditRepo, passTx{}, quietLogger())

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		UserID: 1,
		Fields: validationInput("", "-5", "biweekly", "not-a-date"),
	})
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Type != apperrors.ErrorTypeValidation {
		t.Fatalf("error = %v, want a validation error", err)
	}
	if len(appErr.Fields) != 4 {
		t.Errorf("fields = %v, want errors on all four fields", appErr.Fields)
	}
	if len(subRepo.subs) != 0 || len(auditRepo.entries) != 0 {
		t.Error("a rejected create must not touch storage")
	}
}

func TestCreateSubscription_SanitizesName(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	uc := NewCreateSubscriptionUseCase(subRepo, &fakeAuditRepo{}, passTx{}, quietLogger())

	sub, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		UserID: 1,
		Fields: validationInput("  <Netflix>  ", "15.99", "monthly", "2024-01-01"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if sub.Name() != "&lt;Netflix&gt;" {
		t.Errorf("stored name = %q", sub.Name())
	}
}

func TestCreateSubscription_RepositoryFailure(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	subRepo.err = errors.New("connection refused")
	uc := NewCreateSubscriptionUseCase(subRepo, &fakeAuditRepo{}, passTx{}, quietLogger())

	_, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		UserID: 1,
		Fields: validationInput("Netflix", "15.99", "monthly", "2024-01-01"),
	})
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Type != apperrors.ErrorTypeInternal {
		t.Fatalf("error = %v, want an internal error", err)
	}
}

func TestUpdateSubscription_PartialFields(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	auditRepo := &fakeAuditRepo{}
	sub := seedSubscription(t, subRepo, 1, "Netflix", "15.99", "monthly", "2024-01-01")
	uc := NewUpdateSubscriptionUseCase(subRepo, auditRepo, passTx{}, quietLogger())

	updated, err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
		UserID:         1,
		SubscriptionID: sub.ID(),
		Fields: validationInputPartial(map[string]string{
			"amount": "19.99",
		}),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if updated.Amount().String() != "19.99" {
		t.Errorf("amount = %s", updated.Amount())
	}
	if updated.Name() != "Netflix" {
		t.Errorf("name changed unexpectedly: %q", updated.Name())
	}

	if len(auditRepo.entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(auditRepo.entries))
	}
	entry := auditRepo.entries[0]
	if entry.Action() != audit.ActionUpdate {
		t.Errorf("audit action = %q", entry.Action())
	}
	if ov, nv := entry.OldValues(), entry.NewValues(); ov["amount"] != "15.99" || nv["amount"] != "19.99" {
		t.Errorf("audit snapshots old=%v new=%v", ov, nv)
	}
	if _, ok := entry.OldValues()["name"]; ok {
		t.Error("unchanged fields must not appear in the update audit")
	}
}

func TestUpdateSubscription_OwnershipScoped(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	sub := seedSubscription(t, subRepo, 1, "Netflix", "15.99", "monthly", "2024-01-01")
	uc := NewUpdateSubscriptionUseCase(subRepo, &fakeAuditRepo{}, passTx{}, quietLogger())

	_, err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
		UserID:         2,
		SubscriptionID: sub.ID(),
		Fields:         validationInputPartial(map[string]string{"name": "Hijacked"}),
	})
	if !apperrors.IsNotFoundError(err) {
		t.Fatalf("error = %v, want not found for another user's subscription", err)
	}
	if sub.Name() != "Netflix" {
		t.Error("subscription must be untouched")
	}
}

func TestDeleteSubscription(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	auditRepo := &fakeAuditRepo{}
	sub := seedSubscription(t, subRepo, 1, "Netflix", "15.99", "monthly", "2024-01-01")
	uc := NewDeleteSubscriptionUseCase(subRepo, auditRepo, passTx{}, quietLogger())

	if err := uc.Execute(context.Background(), DeleteSubscriptionCommand{UserID: 1, SubscriptionID: sub.ID()}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if sub.IsActive() {
		t.Error("subscription should be inactive")
	}
	if _, ok := subRepo.subs[sub.ID()]; !ok {
		t.Error("soft delete must keep the record")
	}

	if len(auditRepo.entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(auditRepo.entries))
	}
	entry := auditRepo.entries[0]
	if entry.Action() != audit.ActionDelete {
		t.Errorf("audit action = %q", entry.Action())
	}
	ov := entry.OldValues()
	if ov["name"] != "Netflix" || ov["amount"] != "15.99" || ov["periodicity"] != "monthly" {
		t.Errorf("delete snapshot = %v", ov)
	}
	if _, ok := ov["next_payment_date"]; ok {
		t.Error("delete snapshot must not include the next payment date")
	}
	if entry.NewValues() != nil {
		t.Error("delete audit should carry no new values")
	}

	// Second delete succeeds silently without another audit entry.
	if err := uc.Execute(context.Background(), DeleteSubscriptionCommand{UserID: 1, SubscriptionID: sub.ID()}); err != nil {
		t.Fatalf("repeat Execute: %v", err)
	}
	if len(auditRepo.entries) != 1 {
		t.Errorf("repeat delete added an audit entry: %d total", len(auditRepo.entries))
	}
}

func TestDeleteSubscription_NotFound(t *testing.T) {
	uc := NewDeleteSubscriptionUseCase(newFakeSubscriptionRepo(), &fakeAuditRepo{}, passTx{}, quietLogger())

	err := uc.Execute(context.Background(), DeleteSubscriptionCommand{UserID: 1, SubscriptionID: 999})
	if !apperrors.IsNotFoundError(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestAdvanceNextPayment(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	auditRepo := &fakeAuditRepo{}
	sub := seedSubscription(t, subRepo, 7, "Netflix", "15.99", "monthly", "2024-01-01")
	uc := NewAdvanceNextPaymentUseCase(subRepo, auditRepo, passTx{}, quietLogger())

	advanced, err := uc.Execute(context.Background(), AdvanceNextPaymentCommand{UserID: 7, SubscriptionID: sub.ID()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := dateutil.Format(advanced.NextPaymentDate()); got != "2024-01-31" {
		t.Errorf("next payment date = %s, want 2024-01-31", got)
	}

	if len(auditRepo.entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(auditRepo.entries))
	}
	entry := auditRepo.entries[0]
	if entry.Action() != audit.ActionUpdateNextPayment {
		t.Errorf("audit action = %q", entry.Action())
	}
	// The actor is the subscription's owner.
	if entry.UserID() != 7 {
		t.Errorf("audit user ID = %d, want the owner", entry.UserID())
	}
	if ov, nv := entry.OldValues(), entry.NewValues(); ov["next_payment_date"] != "2024-01-01" || nv["next_payment_date"] != "2024-01-31" {
		t.Errorf("audit snapshots old=%v new=%v", ov, nv)
	}
}

func TestAdvanceNextPayment_OtherUsersSubscription(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	auditRepo := &fakeAuditRepo{}
	sub := seedSubscription(t, subRepo, 7, "Netflix", "15.99", "monthly", "2024-01-01")
	uc := NewAdvanceNextPaymentUseCase(subRepo, auditRepo, passTx{}, quietLogger())

	_, err := uc.Execute(context.Background(), AdvanceNextPaymentCommand{UserID: 8, SubscriptionID: sub.ID()})
	if !apperrors.IsNotFoundError(err) {
		t.Fatalf("error = %v, want not found", err)
	}
	if got := dateutil.Format(sub.NextPaymentDate()); got != "2024-01-01" {
		t.Errorf("next payment date moved to %s", got)
	}
	if len(auditRepo.entries) != 0 {
		t.Errorf("got %d audit entries, want none", len(auditRepo.entries))
	}
}

func TestListActiveSubscriptions_ExcludesDeleted(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	seedSubscription(t, subRepo, 1, "Netflix", "15.99", "monthly", "2024-01-01")
	gone := seedSubscription(t, subRepo, 1, "Cancelled", "5", "monthly", "2024-01-01")
	gone.Deactivate()
	seedSubscription(t, subRepo, 2, "Spotify", "9.99", "monthly", "2024-01-01")

	uc := NewListActiveSubscriptionsUseCase(subRepo, quietLogger())
	subs, err := uc.Execute(context.Background(), ListActiveSubscriptionsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(subs) != 1 || subs[0].Name() != "Netflix" {
		t.Errorf("got %d subscriptions", len(subs))
	}
}

func TestListUpcomingPayments(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	today := dateutil.Today()

	inWindow := seedSubscription(t, subRepo, 1, "Netflix", "15.99", "monthly", dateutil.Format(today.AddDate(0, 0, 10)))
	seedSubscription(t, subRepo, 1, "Annual", "99", "yearly", dateutil.Format(today.AddDate(0, 0, 40)))
	boundary := seedSubscription(t, subRepo, 1, "Boundary", "4.01", "weekly", dateutil.Format(today.AddDate(0, 0, 30)))

	uc := NewListUpcomingPaymentsUseCase(subRepo, quietLogger())
	res, err := uc.Execute(context.Background(), ListUpcomingPaymentsQuery{UserID: 1})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(res.Subscriptions) != 2 {
		t.Fatalf("got %d subscriptions in the default 30-day window, want 2", len(res.Subscriptions))
	}
	want := inWindow.Amount().Add(boundary.Amount())
	if !res.TotalAmount.Equal(want) {
		t.Errorf("total = %s, want %s", res.TotalAmount, want)
	}

	// A narrower explicit horizon drops the boundary subscription.
	res, err = uc.Execute(context.Background(), ListUpcomingPaymentsQuery{UserID: 1, HorizonDays: 15})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Subscriptions) != 1 || res.Subscriptions[0].Name() != "Netflix" {
		t.Errorf("15-day window: got %d subscriptions", len(res.Subscriptions))
	}
}

func TestMonthlySummary(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	seedSubscription(t, subRepo, 1, "Netflix", "15.99", "monthly", "2024-01-01")
	seedSubscription(t, subRepo, 1, "Spotify", "9.99", "monthly", "2024-03-01")
	gone := seedSubscription(t, subRepo, 1, "Cancelled", "100", "monthly", "2024-01-01")
	gone.Deactivate()

	uc := NewMonthlySummaryUseCase(subRepo, quietLogger())
	res, err := uc.Execute(context.Background(), MonthlySummaryQuery{UserID: 1, Year: 2024, Month: 6})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.TotalSubscriptions != 2 {
		t.Errorf("total subscriptions = %d, want 2", res.TotalSubscriptions)
	}
	if want := decimal.RequireFromString("25.98"); !res.TotalMonthlyAmount.Equal(want) {
		t.Errorf("total amount = %s, want %s", res.TotalMonthlyAmount, want)
	}

	// The month filter compares year and month components independently:
	// March (3) <= June (6), so a March subscription counts, but a
	// subscription started in month 7 would not count for any month < 7.
	seedSubscription(t, subRepo, 1, "Late", "1", "monthly", "2023-11-01")
	res, err = uc.Execute(context.Background(), MonthlySummaryQuery{UserID: 1, Year: 2024, Month: 6})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.TotalSubscriptions != 2 {
		t.Errorf("total subscriptions = %d, want 2 (November start excluded by month component)", res.TotalSubscriptions)
	}
}

func TestMonthlySummary_UpcomingInMonth(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	sub := seedSubscription(t, subRepo, 1, "Netflix", "15.99", "monthly", "2024-06-15")
	seedSubscription(t, subRepo, 1, "Spotify", "9.99", "monthly", "2024-01-10")

	uc := NewMonthlySummaryUseCase(subRepo, quietLogger())
	res, err := uc.Execute(context.Background(), MonthlySummaryQuery{UserID: 1, Year: 2024, Month: 6})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(res.UpcomingPayments) != 1 || res.UpcomingPayments[0].ID() != sub.ID() {
		t.Errorf("upcoming payments = %d, want only the June-scheduled subscription", len(res.UpcomingPayments))
	}
}

func TestMonthlySummary_InvalidMonth(t *testing.T) {
	uc := NewMonthlySummaryUseCase(newFakeSubscriptionRepo(), quietLogger())

	for _, month := range []int{0, 13, -1} {
		_, err := uc.Execute(context.Background(), MonthlySummaryQuery{UserID: 1, Year: 2024, Month: month})
		if !apperrors.IsValidationError(err) {
			t.Errorf("month %d: error = %v, want validation error", month, err)
		}
	}
}
