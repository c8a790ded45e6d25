package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/benoitkugler/svgstyler/editor"
	"github.com/benoitkugler/svgstyler/logging"
	"github.com/benoitkugler/svgstyler/svgpdf"
	"github.com/benoitkugler/svgstyler/svgraster"
)

type nameRequest struct {
	Name string `json:"name"`
}

type colorRequest struct {
	Color string `json:"color"`
}

type indexRequest struct {
	Index int `json:"index"`
}

type presetsResponse struct {
	Presets  []string `json:"presets"`
	Selected string   `json:"selected"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// errorStatus maps an editor error to an HTTP status.
func errorStatus(err error) int {
	switch {
	case editor.IsUserInput(err):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrNoDocument), errors.Is(err, editor.ErrStaleLoad):
		return http.StatusConflict
	case errors.Is(err, editor.ErrUnknownShape):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logging.Logger().Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	writeError(w, status, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// mutate runs fn on the editor loop, then replies with the new state.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, status int, fn func(*editor.Session) error) {
	var snap editor.Snapshot
	err := s.ed.Do(r.Context(), func(sess *editor.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		snap = sess.Snapshot()
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, status, snap)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, http.StatusOK, func(*editor.Session) error { return nil })
}

// uploadReader returns the document of an upload: the "file" field
// of a multipart form, or the raw body.
func uploadReader(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		f, _, err := r.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) {
			return nil, editor.ErrNoFile
		}
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	if r.ContentLength == 0 {
		return nil, editor.ErrNoFile
	}
	return r.Body, nil
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, err := uploadReader(r)
	if err != nil {
		if editor.IsUserInput(err) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		}
		return
	}
	defer file.Close()

	result, err := s.ed.StartLoad(r.Context(), file)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	// the body must be consumed before the handler returns
	if err := <-result; err != nil {
		if errors.Is(err, editor.ErrStaleLoad) {
			s.fail(w, r, err)
		} else {
			writeError(w, http.StatusBadRequest, "invalid document: "+err.Error())
		}
		return
	}
	s.mutate(w, r, http.StatusOK, func(*editor.Session) error { return nil })
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.ed.Do(r.Context(), func(sess *editor.Session) error { return sess.WriteSVG(&buf) }); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.ed.Do(r.Context(), func(sess *editor.Session) error { return sess.ExportPNG(&buf) }); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": svgraster.ExportFilename}))
	w.Write(buf.Bytes())
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.ed.Do(r.Context(), func(sess *editor.Session) error { return sess.ExportPDF(&buf) }); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": svgpdf.ExportFilename}))
	w.Write(buf.Bytes())
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	var resp presetsResponse
	err := s.ed.Do(r.Context(), func(sess *editor.Session) error {
		resp = presetsResponse{Presets: sess.Presets(), Selected: sess.Selected()}
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if resp.Presets == nil {
		resp.Presets = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mutate(w, r, http.StatusCreated, func(sess *editor.Session) error { return sess.SavePreset(req.Name) })
}

func (s *Server) handleSelectPreset(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mutate(w, r, http.StatusOK, func(sess *editor.Session) error {
		sess.SelectPreset(req.Name)
		return nil
	})
}

func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mutate(w, r, http.StatusOK, func(sess *editor.Session) error { return sess.ApplyPreset(req.Name) })
}

func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mutate(w, r, http.StatusOK, func(sess *editor.Session) error { return sess.SetActiveColor(req.Color) })
}

func (s *Server) handleAddToBank(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, http.StatusOK, func(sess *editor.Session) error {
		sess.AddToBank()
		return nil
	})
}

func (s *Server) handleSelectSwatch(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mutate(w, r, http.StatusOK, func(sess *editor.Session) error { return sess.SelectSwatch(req.Index) })
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shape index")
		return
	}
	s.mutate(w, r, http.StatusOK, func(sess *editor.Session) error { return sess.ClickShape(index) })
}
