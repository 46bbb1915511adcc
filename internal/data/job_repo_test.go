package data

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skipflow/skipflow-go/internal/core"
	"github.com/skipflow/skipflow-go/internal/domain/model"
	"github.com/skipflow/skipflow-go/internal/testutil"
)

func TestJobRepo_Integration_CreateAssignsSequentialNumbers(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		dir := testutil.SeedDirectory(t, db)
		repo := NewJobRepo(db)
		ctx := context.Background()

		first, err := repo.Create(ctx, dir.TenantID, testutil.NewJobRequest(dir).Build())
		require.NoError(t, err)
		second, err := repo.Create(ctx, dir.TenantID, testutil.NewJobRequest(dir).Build())
		require.NoError(t, err)

		assert.Equal(t, "JOB-00001", first.JobNumber)
		assert.Equal(t, "JOB-00002", second.JobNumber)
		assert.Equal(t, model.JobStatusBooked, first.Status)
		assert.Nil(t, first.DeliveredAt)

		// Booking appends the scheduled delivery event.
		events := listEvents(t, db, dir.TenantID, first.ID)
		require.Len(t, events, 1)
		assert.Equal(t, model.EventTypeDelivery, events[0].EventType)
		assert.Equal(t, model.EventStatusScheduled, events[0].Status)
		assert.Equal(t, 1, events[0].EventOrder)
	})
}

func TestJobRepo_Integration_CreateIsolatesTenantSequences(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		dirA := testutil.SeedDirectory(t, db)
		dirB := testutil.SeedDirectory(t, db)
		repo := NewJobRepo(db)
		ctx := context.Background()

		jobA, err := repo.Create(ctx, dirA.TenantID, testutil.NewJobRequest(dirA).Build())
		require.NoError(t, err)
		jobB, err := repo.Create(ctx, dirB.TenantID, testutil.NewJobRequest(dirB).Build())
		require.NoError(t, err)

		// Each tenant starts its own sequence.
		assert.Equal(t, "JOB-00001", jobA.JobNumber)
		assert.Equal(t, "JOB-00001", jobB.JobNumber)

		// Cross-tenant reads miss.
		_, err = repo.GetByID(ctx, dirA.TenantID, jobB.ID)
		assert.ErrorIs(t, err, ErrJobNotFound)
	})
}

func TestJobRepo_Integration_DeliveryAndCollection(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		dir := testutil.SeedDirectory(t, db)
		repo := NewJobRepo(db)
		ctx := context.Background()

		job, err := repo.Create(ctx, dir.TenantID, testutil.NewJobRequest(dir).Build())
		require.NoError(t, err)

		deliveredAt := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
		delivered, err := repo.SetDelivered(ctx, dir.TenantID, job.ID, deliveredAt)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusDelivered, delivered.Status)
		require.NotNil(t, delivered.DeliveredAt)
		assert.True(t, delivered.DeliveredAt.Equal(deliveredAt))

		// Replayed delivery is rejected without touching the original timestamp.
		_, err = repo.SetDelivered(ctx, dir.TenantID, job.ID, deliveredAt.Add(time.Hour))
		assert.ErrorIs(t, err, ErrAlreadyDelivered)

		collectedAt := deliveredAt.Add(14 * 24 * time.Hour)
		collected, err := repo.SetCollected(ctx, dir.TenantID, job.ID, collectedAt)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusCollected, collected.Status)

		_, err = repo.SetCollected(ctx, dir.TenantID, job.ID, collectedAt)
		assert.ErrorIs(t, err, ErrAlreadyCollected)

		// Timeline: scheduled delivery, completed delivery, completed collection.
		events := listEvents(t, db, dir.TenantID, job.ID)
		require.Len(t, events, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{events[0].EventOrder, events[1].EventOrder, events[2].EventOrder})
		assert.Equal(t, model.EventTypeCollection, events[2].EventType)
	})
}

func TestJobRepo_Integration_CollectionRequiresDelivery(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		dir := testutil.SeedDirectory(t, db)
		repo := NewJobRepo(db)
		ctx := context.Background()

		job, err := repo.Create(ctx, dir.TenantID, testutil.NewJobRequest(dir).Build())
		require.NoError(t, err)

		_, err = repo.SetCollected(ctx, dir.TenantID, job.ID, time.Now())
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestJobRepo_Integration_Cancel(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		dir := testutil.SeedDirectory(t, db)
		repo := NewJobRepo(db)
		ctx := context.Background()

		job, err := repo.Create(ctx, dir.TenantID, testutil.NewJobRequest(dir).Build())
		require.NoError(t, err)

		cancelled, err := repo.Cancel(ctx, dir.TenantID, job.ID, testutil.StringPtr("customer no longer needs it"))
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusCancelled, cancelled.Status)

		// Terminal: no further transitions.
		_, err = repo.Cancel(ctx, dir.TenantID, job.ID, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = repo.SetDelivered(ctx, dir.TenantID, job.ID, time.Now())
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestJobRepo_Integration_ListFilters(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		dir := testutil.SeedDirectory(t, db)
		repo := NewJobRepo(db)
		ctx := context.Background()

		booked, err := repo.Create(ctx, dir.TenantID,
			testutil.NewJobRequest(dir).WithScheduledDate("2026-03-02").Build())
		require.NoError(t, err)
		other, err := repo.Create(ctx, dir.TenantID,
			testutil.NewJobRequest(dir).WithScheduledDate("2026-03-09").Build())
		require.NoError(t, err)
		_, err = repo.SetDelivered(ctx, dir.TenantID, other.ID, time.Now())
		require.NoError(t, err)

		status := model.JobStatusBooked
		jobs, err := repo.List(ctx, dir.TenantID, model.JobListOptions{Status: &status})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, booked.ID, jobs[0].ID)

		date := mustDate(t, "2026-03-09")
		jobs, err = repo.List(ctx, dir.TenantID, model.JobListOptions{Date: &date})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, other.ID, jobs[0].ID)
	})
}

func TestJobRepo_Integration_PaidFieldsGroup(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		dir := testutil.SeedDirectory(t, db)
		repo := NewJobRepo(db)
		ctx := context.Background()

		job, err := repo.Create(ctx, dir.TenantID, testutil.NewJobRequest(dir).Build())
		require.NoError(t, err)

		paidAt := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
		paid, err := repo.SetPaid(ctx, dir.TenantID, job.ID, model.PaidRecord{
			PaidAt:        paidAt,
			PaidMethod:    model.PaymentMethodCash,
			PaidReference: testutil.StringPtr("till-42"),
		})
		require.NoError(t, err)
		require.NotNil(t, paid.PaidAt)
		require.NotNil(t, paid.PaidMethod)
		assert.Equal(t, model.PaymentMethodCash, *paid.PaidMethod)

		cleared, err := repo.ClearPaid(ctx, dir.TenantID, job.ID)
		require.NoError(t, err)
		assert.Nil(t, cleared.PaidAt)
		assert.Nil(t, cleared.PaidMethod)
		assert.Nil(t, cleared.PaidReference)
		assert.Nil(t, cleared.PaidByUserID)
	})
}

func TestJobRepo_Integration_AccountingLink(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		dir := testutil.SeedDirectory(t, db)
		repo := NewJobRepo(db)
		ctx := context.Background()

		job, err := repo.Create(ctx, dir.TenantID, testutil.NewJobRequest(dir).Build())
		require.NoError(t, err)

		linked, err := repo.SetAccountingLink(ctx, dir.TenantID, job.ID, core.AccountingLink{
			InvoiceID:     "inv-1",
			InvoiceNumber: "INV-0001",
			InvoiceStatus: "AUTHORISED",
		})
		require.NoError(t, err)
		require.NotNil(t, linked.XeroInvoiceID)
		assert.Equal(t, "inv-1", *linked.XeroInvoiceID)

		_, err = repo.SetAccountingLink(ctx, dir.TenantID, "00000000-0000-0000-0000-000000000000", core.AccountingLink{})
		assert.ErrorIs(t, err, ErrJobNotFound)
	})
}

func listEvents(t testing.TB, db *sql.DB, tenantID, jobID string) []*model.JobEvent {
	t.Helper()
	events, err := NewJobEventRepo(db).ListByJob(context.Background(), tenantID, jobID)
	if err != nil {
		t.Fatal("failed to list events:", err)
	}
	return events
}

func mustDate(t testing.TB, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatal("bad date literal:", err)
	}
	return d
}

func TestJobRepo_CreateValidation(t *testing.T) {
	repo := NewJobRepo(nil)

	_, err := repo.Create(context.Background(), "tenant", nil)
	require.Error(t, err)

	_, err = repo.Create(context.Background(), "tenant", &model.CreateJobRequest{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrJobNotFound))
}
