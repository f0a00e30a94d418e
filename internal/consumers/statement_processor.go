package consumers

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"receivables-service/internal/models"
	"receivables-service/internal/services"
)

// StatementExportDTO mirrors services.StatementExportPayload on the consuming
// side of the queue.
type StatementExportDTO struct {
	TaskID     string `json:"task_id"`
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
	ClientCode string `json:"client_code"`
}

// StatementProcessor runs statement export jobs pulled off the queue and
// records their terminal state on the background_tasks row.
type StatementProcessor struct {
	DB         *gorm.DB
	Statements *services.StatementService
}

func NewStatementProcessor(db *gorm.DB, statements *services.StatementService) *StatementProcessor {
	return &StatementProcessor{DB: db, Statements: statements}
}

// ProcessStatementExport generates the requested statements and marks the
// job complete or failed. Failures are captured on the job record rather
// than returned, so the queue never retries a terminal job.
func (p *StatementProcessor) ProcessStatementExport(data StatementExportDTO) {
	log := logrus.WithField("task_id", data.TaskID)
	log.Info("processing statement export")

	from, err := time.Parse("2006-01-02", data.FromDate)
	if err != nil {
		p.fail(data.TaskID, "invalid from date: "+data.FromDate)
		return
	}
	to, err := time.Parse("2006-01-02", data.ToDate)
	if err != nil {
		p.fail(data.TaskID, "invalid to date: "+data.ToDate)
		return
	}

	paths, err := p.Statements.Generate(from, to, data.ClientCode)
	if err != nil {
		log.Error("statement export failed: ", err)
		p.fail(data.TaskID, err.Error())
		return
	}

	sort.Strings(paths)
	result, err := json.Marshal(paths)
	if err != nil {
		p.fail(data.TaskID, "failed to encode result: "+err.Error())
		return
	}

	p.update(data.TaskID, models.JobComplete, string(result))
	log.WithField("files", len(paths)).Info("statement export complete")
}

func (p *StatementProcessor) fail(taskID, reason string) {
	logrus.WithField("task_id", taskID).Warn("statement export failed: ", reason)
	p.update(taskID, models.JobFailed, reason)
}

func (p *StatementProcessor) update(taskID, status, result string) {
	err := p.DB.Model(&models.ExportJob{}).Where("task_id = ?", taskID).
		Updates(map[string]interface{}{"status": status, "result": result}).Error
	if err != nil {
		logrus.WithField("task_id", taskID).Error("failed to update job status: ", err)
	}
}
