package imports

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/alexkola94/Paire-sub001/internal/logging"
	"github.com/alexkola94/Paire-sub001/internal/reconcile"
)

// StatementRow is one feed-delivered statement row in the request body.
type StatementRow struct {
	ExternalID  string `json:"externalID" required:"true" doc:"Source-supplied transaction identifier"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount, sign interpreted per convention"`
	Date        string `json:"date" required:"true" doc:"RFC3339 timestamp or YYYY-MM-DD date"`
	Description string `json:"description" doc:"Statement description"`
	Category    string `json:"category" doc:"Source category hint"`
}

// ImportStatementBody is the request body for importing feed rows.
type ImportStatementBody struct {
	UserID     string         `json:"userID" required:"true" doc:"Owning user UUID"`
	Source     string         `json:"source" required:"true" minLength:"1" doc:"Feed source label recorded on the import batch"`
	Convention string         `json:"convention,omitempty" enum:"signedAmount,positiveDebit" doc:"Amount sign convention, defaults to signedAmount"`
	Rows       []StatementRow `json:"rows" required:"true" doc:"Statement rows to reconcile"`
}

// ImportStatementInput is the Huma input for importing feed rows.
type ImportStatementInput struct {
	Body ImportStatementBody
}

// ImportStatementResponseBody is the response body for importing feed rows.
type ImportStatementResponseBody struct {
	JobID  string        `json:"jobID" doc:"UUID of the import job"`
	Result *ImportResult `json:"result,omitempty" doc:"Reconciliation outcome"`
}

// ImportStatementOutput is the Huma output for importing feed rows.
type ImportStatementOutput struct {
	Body ImportStatementResponseBody
}

// statementImporter is the interface for reconciling feed rows.
type statementImporter interface {
	ImportFeed(ctx context.Context, userID uuid.UUID, rows []reconcile.Row, source string, convention reconcile.SignConvention) (uuid.UUID, *reconcile.Result, error)
}

// ImportStatementHandler handles POST /v1/import/statement.
type ImportStatementHandler struct {
	ImportService statementImporter
}

// NewImportStatementHandler creates a new ImportStatementHandler.
func NewImportStatementHandler(svc statementImporter) *ImportStatementHandler {
	return &ImportStatementHandler{ImportService: svc}
}

// Register registers the import statement endpoint with the Huma API.
func (h *ImportStatementHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "import-statement",
		Method:      http.MethodPost,
		Path:        "/v1/import/statement",
		Summary:     "Import statement rows",
		Description: "Reconciles bank feed rows against existing transactions and persists the new ones.",
		Tags:        []string{"Imports"},
	}, h.handle)
}

// parseImportStatementInput parses and validates the API input.
func parseImportStatementInput(input *ImportStatementInput) (uuid.UUID, []reconcile.Row, reconcile.SignConvention, error) {
	userID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return uuid.Nil, nil, 0, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	convention := reconcile.SignedAmount
	if input.Body.Convention == "positiveDebit" {
		convention = reconcile.PositiveDebit
	}

	rows := make([]reconcile.Row, len(input.Body.Rows))
	for i, row := range input.Body.Rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return uuid.Nil, nil, 0, huma.NewError(http.StatusBadRequest, "invalid row amount", err)
		}
		date, err := parseRowDate(row.Date)
		if err != nil {
			return uuid.Nil, nil, 0, huma.NewError(http.StatusBadRequest, "invalid row date", err)
		}
		rows[i] = reconcile.Row{
			ExternalID:  row.ExternalID,
			Amount:      amount,
			Date:        date,
			Description: row.Description,
			Category:    row.Category,
		}
	}

	return userID, rows, convention, nil
}

func (h *ImportStatementHandler) handle(ctx context.Context, input *ImportStatementInput) (*ImportStatementOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, rows, convention, err := parseImportStatementInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("importStatementMs")
	}
	jobID, result, err := h.ImportService.ImportFeed(ctx, userID, rows, input.Body.Source, convention)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to import statement", err)
	}

	if logData != nil {
		logData.AddData("rowCount", len(rows))
		logData.AddData("totalImported", result.TotalImported)
	}

	return &ImportStatementOutput{Body: ImportStatementResponseBody{
		JobID:  jobID.String(),
		Result: fromReconcileResult(result),
	}}, nil
}
