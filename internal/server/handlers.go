package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"fjacquet/fattura-csv/internal/batch"
	"fjacquet/fattura-csv/internal/export"
	"fjacquet/fattura-csv/internal/fileutils"
	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/models"
	"fjacquet/fattura-csv/internal/parsererror"
	"fjacquet/fattura-csv/internal/session"

	"github.com/gin-gonic/gin"
)

// UploadField is the multipart field carrying the documents.
const UploadField = "files"

// FormatClipboard selects the headerless clipboard text on the export
// endpoint.
const FormatClipboard = "clipboard"

// FileFailure reports one rejected upload.
type FileFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// UploadResult is the payload of a successful upload.
type UploadResult struct {
	Added    int           `json:"added"`
	Rows     []models.Row  `json:"rows"`
	Failures []FileFailure `json:"failures,omitempty"`
}

// ListResult is the payload of the list endpoint.
type ListResult struct {
	Count  int          `json:"count"`
	Groups int          `json:"groups"`
	Rows   []models.Row `json:"rows"`
}

// Handler serves the invoice endpoints over one session result set.
type Handler struct {
	processor     *batch.Processor
	results       *session.ResultSet
	exporter      *export.Exporter
	defaultFormat export.Format
	logger        logging.Logger
}

// NewHandler creates a Handler.
func NewHandler(processor *batch.Processor, results *session.ResultSet, exporter *export.Exporter, defaultFormat export.Format, logger logging.Logger) *Handler {
	if defaultFormat == "" {
		defaultFormat = export.FormatCSV
	}
	return &Handler{
		processor:     processor,
		results:       results,
		exporter:      exporter,
		defaultFormat: defaultFormat,
		logger:        logging.OrDefault(logger),
	}
}

// Upload processes every uploaded XML file and adds the resulting rows to
// the session. Files without the .xml extension are reported as failures.
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "multipart form expected", err.Error())
		return
	}
	headers := form.File[UploadField]
	if len(headers) == 0 {
		fail(c, http.StatusBadRequest, fmt.Sprintf("no files in field %q", UploadField))
		return
	}

	var failures []FileFailure
	var sources []batch.Source
	for _, fh := range headers {
		if !fileutils.IsXMLFile(fh.Filename) {
			failures = append(failures, FileFailure{File: fh.Filename, Error: "not an XML file"})
			continue
		}
		data, err := readUpload(fh)
		if err != nil {
			failures = append(failures, FileFailure{File: fh.Filename, Error: err.Error()})
			continue
		}
		sources = append(sources, batch.BytesSource(fh.Filename, data))
	}

	rows, err := batch.Collect(h.processor.ProcessAll(c.Request.Context(), sources))
	var batchErr *parsererror.BatchError
	if errors.As(err, &batchErr) {
		for _, f := range batchErr.Failures {
			failures = append(failures, FileFailure{File: f.FileName, Error: f.Err.Error()})
		}
	}
	h.results.Add(rows...)

	h.logger.Info("Upload processed",
		logging.F(logging.FieldCount, len(headers)),
		logging.F(logging.FieldFailed, len(failures)))

	if len(rows) == 0 && len(failures) > 0 {
		errs := make([]string, 0, len(failures))
		for _, f := range failures {
			errs = append(errs, f.File+": "+f.Error)
		}
		fail(c, http.StatusUnprocessableEntity, "no document could be processed", errs...)
		return
	}

	if rows == nil {
		rows = []models.Row{}
	}
	success(c, http.StatusOK, UploadResult{Added: len(rows), Rows: rows, Failures: failures}, "")
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return buf.Bytes(), nil
}

// List returns the rows of the session.
func (h *Handler) List(c *gin.Context) {
	success(c, http.StatusOK, ListResult{
		Count:  h.results.Len(),
		Groups: h.results.Groups(),
		Rows:   h.results.Rows(),
	}, "")
}

// RemoveGroup drops every row of the group named in the path.
func (h *Handler) RemoveGroup(c *gin.Context) {
	group := c.Param("group")
	removed := h.results.RemoveGroup(group)
	if removed == 0 {
		fail(c, http.StatusNotFound, fmt.Sprintf("group %s not found", group))
		return
	}
	h.logger.Info("Group removed", logging.F(logging.FieldGroupID, group), logging.F(logging.FieldCount, removed))
	success(c, http.StatusOK, gin.H{"removed": removed}, "")
}

// Reset empties the session.
func (h *Handler) Reset(c *gin.Context) {
	h.results.Reset()
	success(c, http.StatusOK, nil, "session cleared")
}

// Export downloads the session rows. The format query parameter selects
// csv, tsv, xlsx or clipboard.
func (h *Handler) Export(c *gin.Context) {
	rows := h.results.Rows()
	requested := c.DefaultQuery("format", string(h.defaultFormat))

	if requested == FormatClipboard {
		text, err := h.exporter.Clipboard(rows)
		if err != nil {
			fail(c, http.StatusInternalServerError, "export failed", err.Error())
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
		return
	}

	format, err := export.ParseFormat(requested)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, rows, format); err != nil {
		fail(c, http.StatusInternalServerError, "export failed", err.Error())
		return
	}

	fileName := fmt.Sprintf("fatture_%s.%s", time.Now().Format("20060102_150405"), format)
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "fattura-csv"})
}
