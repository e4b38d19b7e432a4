package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internship-backend-go/internal/domain/report"
	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type fakeReportRepo struct {
	rows       []report.InternSummary
	lastFilter report.SummaryFilter
}

func (f *fakeReportRepo) InternSummaries(_ context.Context, filter report.SummaryFilter) ([]report.InternSummary, error) {
	f.lastFilter = filter
	return f.rows, nil
}

func sampleRows() []report.InternSummary {
	branchName := "Jakarta HQ"
	score := 87.5
	return []report.InternSummary{
		{
			InternID:            "intern-1",
			InternName:          "Ayu Lestari",
			BranchName:          &branchName,
			AttendanceTotal:     20,
			AttendanceApproved:  18,
			AttendancePending:   1,
			AttendanceRejected:  1,
			AbsenceDaysApproved: 2,
			AssessmentCount:     4,
			AverageScore:        &score,
		},
		{
			InternID:        "intern-2",
			InternName:      "Budi Santoso",
			AttendanceTotal: 5,
		},
	}
}

func TestInternSummariesRequiresReportsView(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{})
	intern := user.Principal{UserID: "user-intern-1", Role: user.RoleIntern}

	_, err := svc.InternSummaries(context.Background(), intern, report.SummaryFilter{})
	assert.ErrorIs(t, err, user.ErrPermissionDenied)
}

func TestInternSummariesScopesSupervisor(t *testing.T) {
	repo := &fakeReportRepo{rows: sampleRows()}
	svc := NewReportService(repo)
	supervisor := user.Principal{UserID: "user-sup-1", Role: user.RoleSupervisor}

	_, err := svc.InternSummaries(context.Background(), supervisor, report.SummaryFilter{})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.SupervisorID)
	assert.Equal(t, "user-sup-1", *repo.lastFilter.SupervisorID)
}

func TestInternSummariesManagerUnscoped(t *testing.T) {
	repo := &fakeReportRepo{rows: sampleRows()}
	svc := NewReportService(repo)
	manager := user.Principal{UserID: "user-manager-1", Role: user.RoleManager}

	rows, err := svc.InternSummaries(context.Background(), manager, report.SummaryFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Nil(t, repo.lastFilter.SupervisorID)
}

func TestInternSummariesCSV(t *testing.T) {
	repo := &fakeReportRepo{rows: sampleRows()}
	svc := NewReportService(repo)
	manager := user.Principal{UserID: "user-manager-1", Role: user.RoleManager}

	data, err := svc.InternSummariesCSV(context.Background(), manager, report.SummaryFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
	assert.Equal(t, "intern-1,Ayu Lestari,Jakarta HQ,20,18,1,1,2,4,87.50", lines[1])
	// Missing branch and score come out as empty cells, not zeros.
	assert.Equal(t, "intern-2,Budi Santoso,,5,0,0,0,0,0,", lines[2])
}
