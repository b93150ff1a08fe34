package imports

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/alexkola94/Paire-sub001/internal/jobs"
)

// ImportJob is the API model of an import job.
type ImportJob struct {
	ID         string        `json:"id" doc:"Job UUID"`
	UserID     string        `json:"userID" doc:"Owning user UUID"`
	Status     string        `json:"status" doc:"running, completed, or failed"`
	Result     *ImportResult `json:"result,omitempty" doc:"Reconciliation outcome, present once completed"`
	Error      string        `json:"error,omitempty" doc:"Failure reason, present once failed"`
	StartedAt  string        `json:"startedAt" doc:"RFC3339 start time"`
	FinishedAt *string       `json:"finishedAt,omitempty" doc:"RFC3339 finish time, absent while running"`
}

// GetImportJobInput is the Huma input for fetching an import job.
type GetImportJobInput struct {
	JobID string `path:"jobID" doc:"Job UUID"`
}

// GetImportJobOutput is the Huma output for fetching an import job.
type GetImportJobOutput struct {
	Body ImportJob
}

// jobGetter is the interface for looking up import jobs.
type jobGetter interface {
	GetJob(id uuid.UUID) (jobs.ImportJob, bool)
}

// GetImportJobHandler handles GET /v1/import/{jobID}.
type GetImportJobHandler struct {
	ImportService jobGetter
}

// NewGetImportJobHandler creates a new GetImportJobHandler.
func NewGetImportJobHandler(svc jobGetter) *GetImportJobHandler {
	return &GetImportJobHandler{ImportService: svc}
}

// Register registers the get import job endpoint with the Huma API.
func (h *GetImportJobHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-import-job",
		Method:      http.MethodGet,
		Path:        "/v1/import/{jobID}",
		Summary:     "Get import job",
		Description: "Returns the status of an import run.",
		Tags:        []string{"Imports"},
	}, h.handle)
}

func (h *GetImportJobHandler) handle(_ context.Context, input *GetImportJobInput) (*GetImportJobOutput, error) {
	jobID, err := uuid.FromString(input.JobID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid jobID", err)
	}

	job, ok := h.ImportService.GetJob(jobID)
	if !ok {
		return nil, huma.NewError(http.StatusNotFound, "import job not found")
	}

	out := ImportJob{
		ID:        job.ID.String(),
		UserID:    job.UserID.String(),
		Status:    string(job.Status),
		Result:    fromReconcileResult(job.Result),
		Error:     job.Error,
		StartedAt: job.StartedAt.Format(time.RFC3339),
	}
	if job.FinishedAt != nil {
		finished := job.FinishedAt.Format(time.RFC3339)
		out.FinishedAt = &finished
	}

	return &GetImportJobOutput{Body: out}, nil
}
