package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"datasight/domain/chart"
	"datasight/domain/core"
	"datasight/domain/profile"
	"datasight/domain/table"
	"datasight/internal"
	"datasight/internal/chat"
	"datasight/internal/dataset"
	"datasight/internal/errors"
	"datasight/internal/render"
	"datasight/internal/report"
	"datasight/ports"
)

// UploadResult is returned for every accepted upload
type UploadResult struct {
	FileID   core.FileID             `json:"file_id"`
	Filename string                  `json:"filename"`
	Analysis *profile.DatasetProfile `json:"analysis"`
}

// AnalysisService orchestrates the upload, profile, render and chat flows
type AnalysisService struct {
	loader    ports.TableLoader
	files     ports.FileStorage
	store     ports.ProfileStore
	profiler  ports.ProfilerPort
	responder *chat.Responder
	allowed   map[string]struct{}
	logger    *internal.Logger
}

// NewAnalysisService wires the service. allowedExtensions lists accepted
// upload extensions without the leading dot; empty allows anything the
// loader can read.
func NewAnalysisService(
	loader ports.TableLoader,
	files ports.FileStorage,
	store ports.ProfileStore,
	profiler ports.ProfilerPort,
	allowedExtensions []string,
	logger *internal.Logger,
) *AnalysisService {
	if logger == nil {
		logger = internal.NopLogger()
	}
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[normalizeExt(ext)] = struct{}{}
	}
	return &AnalysisService{
		loader:    loader,
		files:     files,
		store:     store,
		profiler:  profiler,
		responder: chat.NewResponder(),
		allowed:   allowed,
		logger:    logger,
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// extension returns the normalized extension of filename, or an
// INVALID_INPUT error when it is not on the allow-list
func (s *AnalysisService) extension(filename string) (string, error) {
	ext := normalizeExt(filepath.Ext(filename))
	if ext == "" {
		return "", errors.InvalidInput("Invalid file type")
	}
	if len(s.allowed) > 0 {
		if _, ok := s.allowed[ext]; !ok {
			return "", errors.InvalidInput("Invalid file type")
		}
	}
	return ext, nil
}

// Upload stores the raw file, loads and profiles it, and persists the
// profile. Nothing is kept when the file cannot be read as a table.
func (s *AnalysisService) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, errors.InvalidInput("No selected file")
	}
	ext, err := s.extension(filename)
	if err != nil {
		return nil, err
	}

	id := core.NewFileID()
	if _, err := s.files.Store(ctx, id, ext, r); err != nil {
		if stderrors.Is(err, dataset.ErrFileTooLarge) {
			return nil, errors.WithCode(errors.CodeInvalidInput, err)
		}
		return nil, errors.Wrap(err, "failed to store upload")
	}

	tbl, err := s.load(ctx, id, filename, ext)
	if err != nil {
		s.discard(ctx, id, ext)
		return nil, err
	}

	analysis := s.profiler.ProfileDataset(tbl)
	stored := &profile.StoredProfile{
		FileID:    id,
		Filename:  filename,
		Profile:   analysis,
		CreatedAt: core.Now(),
	}
	if err := s.store.Save(ctx, stored); err != nil {
		s.discard(ctx, id, ext)
		return nil, errors.DatabaseError("failed to save profile", err)
	}

	s.logger.Info("[Analysis] profiled %s as %s: %d rows, %d columns",
		filename, id, analysis.Summary.RowCount, analysis.Summary.ColumnCount)
	return &UploadResult{FileID: id, Filename: filename, Analysis: analysis}, nil
}

func (s *AnalysisService) discard(ctx context.Context, id core.FileID, ext string) {
	if err := s.files.Delete(ctx, id, ext); err != nil {
		s.logger.Warn("[Analysis] failed to remove %s.%s: %v", id, ext, err)
	}
}

func (s *AnalysisService) load(ctx context.Context, id core.FileID, filename, ext string) (*table.Table, error) {
	rc, err := s.files.Open(ctx, id, ext)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open upload %s", id)
	}
	defer rc.Close()

	tbl, err := s.loader.Load(rc, filename)
	if err != nil {
		return nil, errors.LoadError(filename, err)
	}
	return tbl, nil
}

// parseID validates a caller supplied file id
func parseID(raw string) (core.FileID, error) {
	id, err := core.ParseFileID(raw)
	if err != nil {
		return "", errors.WithCode(errors.CodeInvalidInput, err)
	}
	return id, nil
}

// Profile returns the stored profile for an upload
func (s *AnalysisService) Profile(ctx context.Context, fileID string) (*profile.StoredProfile, error) {
	id, err := parseID(fileID)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Get(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, errors.Wrapf(err, "file %s not found", id)
		}
		return nil, errors.DatabaseError("failed to get profile", err)
	}
	return stored, nil
}

// Profiles lists recent uploads, newest first
func (s *AnalysisService) Profiles(ctx context.Context, limit int) ([]*profile.StoredProfile, error) {
	list, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list profiles", err)
	}
	return list, nil
}

// Table reloads the table behind an upload
func (s *AnalysisService) Table(ctx context.Context, fileID string) (*table.Table, *profile.StoredProfile, error) {
	stored, err := s.Profile(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	tbl, err := s.load(ctx, stored.FileID, stored.Filename, normalizeExt(filepath.Ext(stored.Filename)))
	if err != nil {
		return nil, nil, err
	}
	return tbl, stored, nil
}

// Render draws a chart over the table behind an upload
func (s *AnalysisService) Render(ctx context.Context, fileID string, cfg chart.Config) (*chart.Description, error) {
	tbl, _, err := s.Table(ctx, fileID)
	if err != nil {
		return nil, err
	}
	desc, err := render.Render(tbl, cfg)
	if err != nil {
		s.logger.Debug("[Analysis] render %s on %s failed: %v", cfg.Type, fileID, err)
		return nil, errors.RenderError(err)
	}
	return desc, nil
}

// Chat answers a question about an upload. An empty or unknown file id still
// gets a reply, just without dataset specifics.
func (s *AnalysisService) Chat(ctx context.Context, message, fileID string) (string, error) {
	if strings.TrimSpace(fileID) == "" {
		return s.responder.Reply(message, nil), nil
	}

	stored, err := s.Profile(ctx, fileID)
	if err != nil {
		switch errors.GetCode(err) {
		case errors.CodeNotFound, errors.CodeInvalidInput:
			return s.responder.Reply(message, nil), nil
		default:
			return "", err
		}
	}

	ds := &chat.Dataset{Profile: stored.Profile}
	tbl, err := s.load(ctx, stored.FileID, stored.Filename, normalizeExt(filepath.Ext(stored.Filename)))
	if err != nil {
		// the raw file may be gone while the profile survives
		s.logger.Warn("[Analysis] answering from profile only for %s: %v", stored.FileID, err)
	} else {
		ds.Table = tbl
	}
	return s.responder.Reply(message, ds), nil
}

// ReportFormat selects the report rendering
type ReportFormat string

const (
	ReportMarkdown ReportFormat = "markdown"
	ReportHTML     ReportFormat = "html"
)

// Report renders the stored profile of an upload as a document
func (s *AnalysisService) Report(ctx context.Context, fileID string, format ReportFormat) ([]byte, error) {
	stored, err := s.Profile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	switch format {
	case ReportHTML:
		return report.HTML(stored.Filename, stored.Profile), nil
	case ReportMarkdown, "":
		return []byte(report.Markdown(stored.Filename, stored.Profile)), nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown report format %q", format))
	}
}

// Delete removes an upload and its profile
func (s *AnalysisService) Delete(ctx context.Context, fileID string) error {
	stored, err := s.Profile(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.files.Delete(ctx, stored.FileID, normalizeExt(filepath.Ext(stored.Filename))); err != nil {
		return errors.Wrap(err, "failed to delete upload")
	}
	if err := s.store.Delete(ctx, stored.FileID); err != nil {
		return errors.DatabaseError("failed to delete profile", err)
	}
	return nil
}
