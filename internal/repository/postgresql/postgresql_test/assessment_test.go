package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internship-backend-go/internal/domain/assessment"
	"github.com/internhub/internship-backend-go/internal/repository/postgresql"
)

func TestAssessmentRepository_CreateWithoutPeriod(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	internID := createTestIntern(t, ctx)
	supervisorID := createTestSupervisor(t, ctx)
	repo := postgresql.NewAssessmentRepository(testDB)

	// The assessment period is optional at creation time.
	created, err := repo.Create(ctx, assessment.PerformanceAssessment{
		InternID:       internID,
		AssessedBy:     &supervisorID,
		AssessmentDate: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		WeekNumber:     1,
		Status:         assessment.StatusDraft,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, assessment.StatusDraft, got.Status)
	assert.Nil(t, got.PeriodStart)
	assert.Nil(t, got.PeriodEnd)

	// The intern and acknowledgement notes are NULL until the intern
	// self-assesses and the supervisor reviews.
	assert.Nil(t, got.SupervisorScore)
	assert.Nil(t, got.InternScore)
	assert.Empty(t, got.InternNote)
	assert.Empty(t, got.AcknowledgementNote)
}

func TestAssessmentRepository_DuplicateWeekFails(t *testing.T) {
	defer cleanupTestData(t)
	cleanupTestData(t)

	ctx := context.Background()
	internID := createTestIntern(t, ctx)
	supervisorID := createTestSupervisor(t, ctx)
	repo := postgresql.NewAssessmentRepository(testDB)

	base := assessment.PerformanceAssessment{
		InternID:       internID,
		AssessedBy:     &supervisorID,
		AssessmentDate: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		WeekNumber:     2,
		Status:         assessment.StatusDraft,
	}

	_, err := repo.Create(ctx, base)
	require.NoError(t, err)

	_, err = repo.Create(ctx, base)
	assert.ErrorIs(t, err, assessment.ErrDuplicateWeek)
}
