package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"receivables-service/internal/models"
	"receivables-service/pkg/common"
)

const TypeStatementExport = "statement:export"

// ErrJobNotReady is returned when a download is requested for a job that has
// not reached the complete state.
var ErrJobNotReady = errors.New("export job is not complete")

// ErrNoArchiveFiles is returned when none of a completed job's result paths
// still exist on disk.
var ErrNoArchiveFiles = errors.New("no files available for download")

// StatementExportPayload is the task body for a statement export job.
type StatementExportPayload struct {
	TaskID     string `json:"task_id"`
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
	ClientCode string `json:"client_code"`
}

type ExportService struct {
	DB        *gorm.DB
	Client    *asynq.Client
	OutputDir string
}

func NewExportService(db *gorm.DB, client *asynq.Client, outputDir string) *ExportService {
	return &ExportService{DB: db, Client: client, OutputDir: outputDir}
}

// Submit records a pending job and enqueues the export task. The returned
// task id is the handle for status polling and download.
func (s *ExportService) Submit(fromDate, toDate, clientCode string) (string, error) {
	if _, err := time.Parse("2006-01-02", fromDate); err != nil {
		return "", fmt.Errorf("invalid from date %q", fromDate)
	}
	if _, err := time.Parse("2006-01-02", toDate); err != nil {
		return "", fmt.Errorf("invalid to date %q", toDate)
	}

	taskID := uuid.NewString()
	job := models.ExportJob{TaskID: taskID, Status: models.JobPending}
	if err := s.DB.Create(&job).Error; err != nil {
		return "", err
	}

	payload := StatementExportPayload{
		TaskID:     taskID,
		FromDate:   fromDate,
		ToDate:     toDate,
		ClientCode: strings.TrimSpace(clientCode),
	}
	taskData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	task := asynq.NewTask(TypeStatementExport, taskData)
	if _, err := s.Client.Enqueue(task, asynq.TaskID(taskID)); err != nil {
		s.DB.Model(&models.ExportJob{}).Where("task_id = ?", taskID).
			Updates(map[string]interface{}{"status": models.JobFailed, "result": err.Error()})
		return "", err
	}

	logrus.WithField("task_id", taskID).Info("statement export submitted")
	return taskID, nil
}

// GetStatus returns the job record for a task id.
func (s *ExportService) GetStatus(taskID string) (*models.ExportJob, error) {
	var job models.ExportJob
	if err := s.DB.Where("task_id = ?", taskID).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// CollectArchive zips a completed job's generated PDFs for download. Result
// paths that no longer exist are dropped; a job whose files are all gone is
// a failure at download time even though the job itself completed.
func (s *ExportService) CollectArchive(taskID string) (string, error) {
	job, err := s.GetStatus(taskID)
	if err != nil {
		return "", err
	}
	if job.Status != models.JobComplete {
		return "", ErrJobNotReady
	}

	var paths []string
	if err := json.Unmarshal([]byte(job.Result), &paths); err != nil {
		return "", fmt.Errorf("unreadable job result: %w", err)
	}

	var existing []string
	for _, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), ".pdf") {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			logrus.WithField("path", p).Warn("export file missing, skipping")
			continue
		}
		existing = append(existing, p)
	}
	if len(existing) == 0 {
		return "", ErrNoArchiveFiles
	}

	zipPath := filepath.Join(s.OutputDir, fmt.Sprintf("statements_%s.zip", taskID))
	if err := common.BuildZipArchive(existing, zipPath); err != nil {
		return "", err
	}
	return zipPath, nil
}
