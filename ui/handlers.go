package ui

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"datasight/app"
	"datasight/domain/chart"
	"datasight/internal/errors"
)

// multipartMemory is how much of a multipart form is held in memory before
// spilling to temporary files
const multipartMemory = 32 << 20

func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if a.config.MaxUploadBytes > 0 {
		// headroom for the multipart envelope
		r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxUploadBytes+1<<20)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			a.writeError(w, r, err)
			return
		}
		a.writeError(w, r, errors.InvalidInput("No file part"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, r, errors.InvalidInput("No file part"))
		return
	}
	defer file.Close()
	if header.Filename == "" {
		a.writeError(w, r, errors.InvalidInput("No selected file"))
		return
	}

	result, err := a.service.Upload(r.Context(), header.Filename, file)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type generateChartRequest struct {
	FileID      string        `json:"file_id"`
	ChartConfig *chart.Config `json:"chart_config"`
}

type generateChartResponse struct {
	Chart *chart.Description `json:"chart"`
}

func (a *App) handleGenerateChart(w http.ResponseWriter, r *http.Request) {
	var req generateChartRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.FileID) == "" || req.ChartConfig == nil {
		a.writeError(w, r, errors.InvalidInput("Missing file_id or chart_config"))
		return
	}

	desc, err := a.service.Render(r.Context(), req.FileID, *req.ChartConfig)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateChartResponse{Chart: desc})
}

type chatRequest struct {
	Message string `json:"message"`
	FileID  string `json:"file_id"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (a *App) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	reply, err := a.service.Chat(r.Context(), req.Message, req.FileID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

func (a *App) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := a.service.Profiles(r.Context(), intQuery(r, "limit", 50))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"profiles": list})
}

func (a *App) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	stored, err := a.service.Profile(r.Context(), chi.URLParam(r, "file_id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (a *App) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := a.service.Delete(r.Context(), chi.URLParam(r, "file_id")); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	format := app.ReportFormat(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" {
		format = app.ReportHTML
	}

	out, err := a.service.Report(r.Context(), chi.URLParam(r, "file_id"), format)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if format == app.ReportHTML {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
