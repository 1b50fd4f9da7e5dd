package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-admin-api/internal/dto"
	"github.com/noah-isme/campus-admin-api/internal/models"
	"github.com/noah-isme/campus-admin-api/internal/repository"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
	"github.com/noah-isme/campus-admin-api/pkg/jobs"
	"github.com/noah-isme/campus-admin-api/pkg/storage"
)

type exportJobRepoStub struct {
	jobs map[string]*models.ExportJob
}

func newExportJobRepoStub() *exportJobRepoStub {
	return &exportJobRepoStub{jobs: map[string]*models.ExportJob{}}
}

func (r *exportJobRepoStub) Create(ctx context.Context, job *models.ExportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *exportJobRepoStub) GetByID(ctx context.Context, id string) (*models.ExportJob, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return job, nil
}

func (r *exportJobRepoStub) Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error {
	job, ok := r.jobs[id]
	if !ok {
		return sql.ErrNoRows
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.RowCount != nil {
		job.RowCount = *params.RowCount
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.ErrorMessage != nil {
		job.ErrorMessage = params.ErrorMessage
	}
	if params.FinishedAt != nil {
		job.FinishedAt = params.FinishedAt
	}
	return nil
}

func (r *exportJobRepoStub) ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error) {
	var queued []models.ExportJob
	for _, job := range r.jobs {
		if job.Status == models.ExportStatusQueued {
			queued = append(queued, *job)
		}
	}
	return queued, nil
}

func (r *exportJobRepoStub) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error) {
	return nil, nil
}

type queueStub struct {
	jobs []jobs.Job
	err  error
}

func (q *queueStub) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type leadRowsStub struct {
	rows []dto.LeadExportRow
	err  error
}

func (s leadRowsStub) ExportRows(ctx context.Context, params models.ExportParams) ([]dto.LeadExportRow, error) {
	return s.rows, s.err
}

func newExportServiceForTest(t *testing.T, rows leadRowSource) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewExportService(rows, store, signer, ExportConfig{APIPrefix: "/api/v1", ResultTTL: time.Hour}, zap.NewNop(), nil, nil, nil)
	return svc, store
}

func newExportJobServiceForTest(t *testing.T) (*ExportJobService, *exportJobRepoStub, *queueStub, *ExportService) {
	t.Helper()
	repo := newExportJobRepoStub()
	queue := &queueStub{}
	exporter, _ := newExportServiceForTest(t, leadRowsStub{rows: []dto.LeadExportRow{{ID: "lead-1", Name: "Asha"}}})
	svc := NewExportJobService(repo, queue, exporter, nil, nil, nil, zap.NewNop(), ExportJobServiceConfig{ResultTTL: time.Hour})
	return svc, repo, queue, exporter
}

func TestExportServiceGenerateFormats(t *testing.T) {
	svc, store := newExportServiceForTest(t, leadRowsStub{rows: []dto.LeadExportRow{{ID: "lead-1", Name: "Asha", Status: "NEW"}}})

	for _, format := range []models.ExportFormat{models.ExportFormatCSV, models.ExportFormatJSON, models.ExportFormatPDF} {
		t.Run(string(format), func(t *testing.T) {
			result, err := svc.Generate(context.Background(), &models.ExportJob{ID: "job-" + string(format), Format: format})
			require.NoError(t, err)
			assert.Equal(t, 1, result.RowCount)
			assert.Contains(t, result.URL, "/api/v1/exports/")

			info, err := os.Stat(store.Path(result.RelativePath))
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestExportServiceGenerateRejectsUnknownFormat(t *testing.T) {
	svc, _ := newExportServiceForTest(t, leadRowsStub{})

	_, err := svc.Generate(context.Background(), &models.ExportJob{ID: "job-x", Format: "xlsx"})
	assert.Error(t, err)
}

func TestExportJobServiceCreateJob(t *testing.T) {
	svc, repo, queue, _ := newExportJobServiceForTest(t)

	resp, err := svc.CreateJob(context.Background(), models.Actor{UserID: "admin-1", Role: models.RoleAdmin}, LeadExportRequest{
		Format: models.ExportFormatCSV,
		Source: " google ",
	})
	require.NoError(t, err)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, ExportJobType, queue.jobs[0].Type)
	assert.Equal(t, models.ExportStatusQueued, resp.Status)
	assert.Equal(t, "google", repo.jobs[resp.ID].Params.Source)
	assert.Equal(t, "admin-1", repo.jobs[resp.ID].CreatedBy)
}

func TestExportJobServiceCreateJobValidation(t *testing.T) {
	svc, _, _, _ := newExportJobServiceForTest(t)
	from := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateJob(context.Background(), models.Actor{}, LeadExportRequest{Format: "xlsx"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.CreateJob(context.Background(), models.Actor{}, LeadExportRequest{Format: models.ExportFormatCSV, DateFrom: &from, DateTo: &to})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportJobServiceCreateJobEnqueueFailure(t *testing.T) {
	svc, repo, queue, _ := newExportJobServiceForTest(t)
	queue.err = errors.New("queue stopped")

	_, err := svc.CreateJob(context.Background(), models.Actor{UserID: "admin-1"}, LeadExportRequest{Format: models.ExportFormatPDF})
	require.Error(t, err)
	for _, job := range repo.jobs {
		assert.Equal(t, models.ExportStatusFailed, job.Status)
	}
}

func TestExportJobServiceGetStatusOwnership(t *testing.T) {
	svc, repo, _, _ := newExportJobServiceForTest(t)
	repo.jobs["job-1"] = &models.ExportJob{ID: "job-1", Format: models.ExportFormatCSV, Status: models.ExportStatusQueued, CreatedBy: "editor-1"}

	resp, err := svc.GetStatus(context.Background(), models.Actor{UserID: "editor-1", Role: models.RoleEditor}, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusQueued, resp.Status)

	_, err = svc.GetStatus(context.Background(), models.Actor{UserID: "editor-2", Role: models.RoleEditor}, "job-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, err = svc.GetStatus(context.Background(), models.Actor{UserID: "admin", Role: models.RoleAdmin}, "job-1")
	assert.NoError(t, err)

	_, err = svc.GetStatus(context.Background(), models.Actor{Role: models.RoleAdmin}, "missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestExportWorkerHandleAndDownload(t *testing.T) {
	svc, repo, queue, exporter := newExportJobServiceForTest(t)
	resp, err := svc.CreateJob(context.Background(), models.Actor{UserID: "admin-1", Role: models.RoleAdmin}, LeadExportRequest{Format: models.ExportFormatCSV})
	require.NoError(t, err)

	worker := NewExportWorker(repo, exporter, nil, 3, zap.NewNop())
	require.NoError(t, worker.Handle(context.Background(), queue.jobs[0]))

	job := repo.jobs[resp.ID]
	assert.Equal(t, models.ExportStatusFinished, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, 1, job.RowCount)
	require.NotNil(t, job.ResultURL)

	token := extractToken(*job.ResultURL)
	download, err := svc.ResolveDownload(context.Background(), token)
	require.NoError(t, err)
	defer download.File.Close()
	assert.Regexp(t, `^leads-export-\d{4}-\d{2}-\d{2}\.csv$`, download.Filename)
	body, err := io.ReadAll(download.File)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Asha")

	_, err = svc.ResolveDownload(context.Background(), token+"x")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestExportWorkerMarksFailedAfterRetries(t *testing.T) {
	repo := newExportJobRepoStub()
	exporter, _ := newExportServiceForTest(t, leadRowsStub{err: errors.New("db down")})
	repo.jobs["job-1"] = &models.ExportJob{ID: "job-1", Format: models.ExportFormatCSV, Status: models.ExportStatusQueued}
	worker := NewExportWorker(repo, exporter, nil, 2, zap.NewNop())

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 0})
	require.Error(t, err)
	assert.Equal(t, models.ExportStatusQueued, repo.jobs["job-1"].Status)

	err = worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 2})
	require.Error(t, err)
	assert.Equal(t, models.ExportStatusFailed, repo.jobs["job-1"].Status)
	require.NotNil(t, repo.jobs["job-1"].ErrorMessage)
	assert.Contains(t, *repo.jobs["job-1"].ErrorMessage, "db down")
}

func TestExportJobServiceRecoverPendingJobs(t *testing.T) {
	svc, repo, queue, _ := newExportJobServiceForTest(t)
	repo.jobs["a"] = &models.ExportJob{ID: "a", Status: models.ExportStatusQueued}
	repo.jobs["b"] = &models.ExportJob{ID: "b", Status: models.ExportStatusFinished}

	svc.RecoverPendingJobs(context.Background())
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, "a", queue.jobs[0].ID)
}
