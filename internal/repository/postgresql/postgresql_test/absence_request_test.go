package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internship-backend-go/internal/domain/absence"
	"github.com/internhub/internship-backend-go/internal/repository/postgresql"
)

func TestAbsenceRequestRepository_FreshRequestRoundTrip(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	internID := createTestIntern(t, ctx)
	repo := postgresql.NewAbsenceRequestRepository(testDB)

	created, err := repo.Create(ctx, absence.Request{
		InternID:    internID,
		Reason:      "family matter",
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Status:      absence.StatusPending,
		SubmittedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// An undecided request has NULL decision columns in the database;
	// reading it back must still succeed.
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, absence.StatusPending, got.Status)
	assert.Empty(t, got.DecisionNote)
	assert.Nil(t, got.DecisionAt)
	assert.Nil(t, got.ApproverID)
	assert.Nil(t, got.SupportingDocumentPath)
	require.NotNil(t, got.InternName)
	assert.Equal(t, "Test Intern", *got.InternName)
}

func TestAbsenceRequestRepository_DecideRoundTrip(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	internID := createTestIntern(t, ctx)
	approverID := createTestSupervisor(t, ctx)
	repo := postgresql.NewAbsenceRequestRepository(testDB)

	created, err := repo.Create(ctx, absence.Request{
		InternID:    internID,
		Reason:      "medical appointment",
		StartDate:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Status:      absence.StatusPending,
		SubmittedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	decided, err := repo.Decide(ctx, created.ID, absence.StatusRejected, &approverID, time.Now().UTC(), "no coverage that day")
	require.NoError(t, err)
	require.True(t, decided)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, absence.StatusRejected, got.Status)
	assert.Equal(t, "no coverage that day", got.DecisionNote)
	require.NotNil(t, got.ApproverID)
	assert.Equal(t, approverID, *got.ApproverID)
	assert.NotNil(t, got.DecisionAt)
}
