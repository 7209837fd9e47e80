package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"declascan/constants"
	"declascan/internal/pipeline"
)

// batchItem is one file's outcome plus the download links the dashboard
// renders for successful extractions.
type batchItem struct {
	pipeline.Outcome
	Downloads map[string]string `json:"downloads,omitempty"`
}

type batchResponse struct {
	BatchResults []batchItem `json:"batch_results"`
}

// handleBatchExtract accepts a multipart batch of declaration documents and
// processes them synchronously, one outcome per file. One file's failure
// never suppresses another's outcome.
func (s *Service) handleBatchExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, "invalid multipart payload", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "no files provided", http.StatusBadRequest)
		return
	}

	results := make([]batchItem, 0, len(files))
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "" || name == "." {
			continue
		}
		ext := filepath.Ext(name)
		if !constants.ExtAllowed(ext) {
			results = append(results, batchItem{Outcome: pipeline.Outcome{
				Filename: name,
				Status:   constants.StatusError,
				Error:    fmt.Sprintf("unsupported file format %q", constants.NormalizeExt(ext)),
			}})
			continue
		}

		tempPath, err := s.stageUpload(fh, ext)
		if err != nil {
			s.logger.Error("upload staging failed", "file", name, "error", err)
			results = append(results, batchItem{Outcome: pipeline.Outcome{
				Filename: name,
				Status:   constants.StatusError,
				Error:    "could not stage upload",
			}})
			continue
		}

		out, err := s.proc.ProcessFile(r.Context(), tempPath, name)
		_ = os.Remove(tempPath)
		if err != nil {
			// Ledger append failed: the audit row is lost, surface loudly.
			s.logger.Error("ledger append failed", "file", name, "error", err)
			results = append(results, batchItem{Outcome: pipeline.Outcome{
				Filename: name,
				Status:   constants.StatusError,
				Error:    "history append failed",
			}})
			continue
		}

		item := batchItem{Outcome: out}
		if out.Status == constants.StatusSuccess {
			item.Downloads = map[string]string{
				"json": "/api/download/" + out.JSONName,
				"csv":  "/api/download/" + out.CSVName,
			}
		}
		results = append(results, item)
	}

	s.writeJSON(w, http.StatusOK, batchResponse{BatchResults: results})
}

// stageUpload copies one multipart file into the upload directory under a
// fresh name so concurrent uploads of identically-named files cannot clash.
func (s *Service) stageUpload(fh *multipart.FileHeader, ext string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	tempPath := filepath.Join(s.uploadDir, uuid.NewString()+ext)
	dst, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("copy upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("close staging file: %w", err)
	}
	return tempPath, nil
}

// handleDownload serves per-document artifacts plus the two master-store
// aliases the dashboard uses.
func (s *Service) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	switch name {
	case "GLOBAL_JSON":
		serveAttachment(w, r, s.led.StructuredPath(), "GLOBAL_HISTORY.json")
		return
	case "GLOBAL_CSV":
		serveAttachment(w, r, s.led.TabularPath(), "GLOBAL_HISTORY.csv")
		return
	}

	path, err := s.artifacts.Path(name)
	if err != nil {
		http.Error(w, "artifact not found", http.StatusNotFound)
		return
	}
	serveAttachment(w, r, path, name)
}

func serveAttachment(w http.ResponseWriter, r *http.Request, path, name string) {
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}
