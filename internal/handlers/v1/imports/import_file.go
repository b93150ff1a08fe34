package imports

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/alexkola94/Paire-sub001/internal/logging"
	"github.com/alexkola94/Paire-sub001/internal/reconcile"
	"github.com/alexkola94/Paire-sub001/internal/service"
)

// ImportFileBody is the request body for uploading a statement file.
type ImportFileBody struct {
	UserID  string `json:"userID" required:"true" doc:"Owning user UUID"`
	Format  string `json:"format" required:"true" enum:"csv,xlsx" doc:"Statement file format"`
	Content string `json:"content" required:"true" doc:"Base64-encoded file content"`
}

// ImportFileInput is the Huma input for uploading a statement file.
type ImportFileInput struct {
	Body ImportFileBody
}

// ImportFileResponseBody is the response body for uploading a statement file.
type ImportFileResponseBody struct {
	JobID  string        `json:"jobID" doc:"UUID of the import job"`
	Result *ImportResult `json:"result,omitempty" doc:"Reconciliation outcome"`
}

// ImportFileOutput is the Huma output for uploading a statement file.
type ImportFileOutput struct {
	Body ImportFileResponseBody
}

// fileImporter is the interface for parsing and reconciling statement files.
type fileImporter interface {
	ImportFile(ctx context.Context, userID uuid.UUID, format string, content []byte) (uuid.UUID, *reconcile.Result, error)
}

// ImportFileHandler handles POST /v1/import/file.
type ImportFileHandler struct {
	ImportService fileImporter
}

// NewImportFileHandler creates a new ImportFileHandler.
func NewImportFileHandler(svc fileImporter) *ImportFileHandler {
	return &ImportFileHandler{ImportService: svc}
}

// Register registers the import file endpoint with the Huma API.
func (h *ImportFileHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "import-file",
		Method:      http.MethodPost,
		Path:        "/v1/import/file",
		Summary:     "Import statement file",
		Description: "Parses an uploaded bank statement file and reconciles its rows against existing transactions.",
		Tags:        []string{"Imports"},
	}, h.handle)
}

// parseImportFileInput parses and validates the API input.
func parseImportFileInput(input *ImportFileInput) (uuid.UUID, []byte, error) {
	userID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	content, err := base64.StdEncoding.DecodeString(input.Body.Content)
	if err != nil {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid content encoding", err)
	}
	if len(content) == 0 {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "empty file content")
	}

	return userID, content, nil
}

func (h *ImportFileHandler) handle(ctx context.Context, input *ImportFileInput) (*ImportFileOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, content, err := parseImportFileInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("importFileMs")
	}
	jobID, result, err := h.ImportService.ImportFile(ctx, userID, input.Body.Format, content)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatement) {
			return nil, huma.NewError(http.StatusBadRequest, "invalid statement file", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to import file", err)
	}

	if logData != nil {
		logData.AddData("format", input.Body.Format)
		logData.AddData("totalImported", result.TotalImported)
	}

	return &ImportFileOutput{Body: ImportFileResponseBody{
		JobID:  jobID.String(),
		Result: fromReconcileResult(result),
	}}, nil
}
