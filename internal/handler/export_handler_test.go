package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-admin-api/internal/dto"
	"github.com/noah-isme/campus-admin-api/internal/middleware"
	"github.com/noah-isme/campus-admin-api/internal/models"
	"github.com/noah-isme/campus-admin-api/internal/service"
	appErrors "github.com/noah-isme/campus-admin-api/pkg/errors"
)

type exportServiceMock struct {
	actor       models.Actor
	createResp  *dto.ExportJobResponse
	createErr   error
	statusResp  *dto.ExportStatusResponse
	statusErr   error
	download    *service.ExportDownload
	downloadErr error
}

func (m *exportServiceMock) CreateJob(ctx context.Context, actor models.Actor, req service.LeadExportRequest) (*dto.ExportJobResponse, error) {
	m.actor = actor
	return m.createResp, m.createErr
}

func (m *exportServiceMock) GetStatus(ctx context.Context, actor models.Actor, id string) (*dto.ExportStatusResponse, error) {
	m.actor = actor
	return m.statusResp, m.statusErr
}

func (m *exportServiceMock) ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error) {
	return m.download, m.downloadErr
}

func TestExportHandlerCreate(t *testing.T) {
	mockSvc := &exportServiceMock{
		createResp: &dto.ExportJobResponse{ID: "job-1", Status: models.ExportStatusQueued},
	}
	h := NewExportHandler(mockSvc, nil)

	payload, _ := json.Marshal(service.LeadExportRequest{Format: models.ExportFormatPDF})
	c, w := newGinContext(http.MethodPost, "/admin/leads/exports", payload)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "editor-1", Role: models.RoleEditor})

	h.Create(c)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "editor-1", mockSvc.actor.UserID)
	assert.Equal(t, models.RoleEditor, mockSvc.actor.Role)
}

func TestExportHandlerStatusForbidden(t *testing.T) {
	mockSvc := &exportServiceMock{statusErr: appErrors.Clone(appErrors.ErrForbidden, "not your export")}
	h := NewExportHandler(mockSvc, nil)

	c, w := newGinContext(http.MethodGet, "/admin/leads/exports/job-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "editor-2", Role: models.RoleEditor})

	h.Status(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExportHandlerDownload(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "leads*.csv")
	require.NoError(t, err)
	_, _ = file.WriteString("id,name\n1,Ann\n")
	_, _ = file.Seek(0, 0)

	mockSvc := &exportServiceMock{
		download: &service.ExportDownload{
			File:      file,
			Filename:  "leads-export-2024-06-01.csv",
			Format:    models.ExportFormatCSV,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	h := NewExportHandler(mockSvc, nil)

	c, w := newGinContext(http.MethodGet, "/exports/token", nil)
	c.Params = gin.Params{{Key: "token", Value: "token"}}

	h.Download(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "leads-export-2024-06-01.csv")
	assert.Equal(t, "id,name\n1,Ann\n", w.Body.String())
}

func TestExportHandlerDownloadRejectsBadToken(t *testing.T) {
	mockSvc := &exportServiceMock{downloadErr: appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")}
	h := NewExportHandler(mockSvc, nil)

	c, w := newGinContext(http.MethodGet, "/exports/bad", nil)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}

	h.Download(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
