package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/middleware"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/services"
)

// BuildController serves the operator-facing registry endpoints: upload,
// listing and deletion. Authorization is enforced by the router's middleware;
// handlers here assume an already-checked operator.
type BuildController struct {
	Builds *services.BuildService
	Log    zerolog.Logger
}

func NewBuildController(builds *services.BuildService, log zerolog.Logger) *BuildController {
	return &BuildController{Builds: builds, Log: log}
}

// maxFieldBytes bounds each non-file multipart field. The archive part itself
// is streamed straight to disk and has no limit.
const maxFieldBytes = 64 << 10

// Upload reads the multipart form part by part so the archive is never
// buffered whole in memory. Field parts may arrive in any order relative to
// the file part, so metadata validation happens only after the full form has
// been consumed; a stored file is removed again if validation fails.
func (c *BuildController) Upload(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Multipart form required"))
		return
	}

	var meta services.UploadMeta
	fields := map[string]*string{
		"build":        &meta.Name,
		"uploader":     &meta.Uploader,
		"version":      &meta.Version,
		"description":  &meta.Description,
		"printer_type": &meta.PrinterType,
		"sub_type":     &meta.SubType,
		"make":         &meta.Make,
	}

	var storedPath string
	var storedSize int64
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Malformed multipart form"))
			return
		}
		switch {
		case part.FormName() == "zipFile" && part.FileName() != "":
			storedPath, storedSize, err = c.Builds.SaveArchive(part, part.FileName())
			if err != nil {
				c.Log.Error().Err(err).Msg("save uploaded archive")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("Failed to store archive."))
				return
			}
		default:
			if dst, ok := fields[part.FormName()]; ok {
				v, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
				if err != nil {
					w.WriteHeader(http.StatusBadRequest)
					_, _ = w.Write([]byte("Malformed multipart form"))
					return
				}
				*dst = string(v)
			}
		}
		_ = part.Close()
	}

	if storedPath == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("ZIP file is required."))
		return
	}
	if claims := middleware.GetClaims(r.Context()); claims != nil && meta.Uploader == "" {
		meta.Uploader = claims.Username
	}
	if _, err := c.Builds.Register(meta, storedPath, storedSize); err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Missing required build metadata."))
			return
		}
		c.Log.Error().Err(err).Msg("register build")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Database insert error."))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Upload successful! Build saved."))
}

func (c *BuildController) List(w http.ResponseWriter, r *http.Request) {
	builds, err := c.Builds.List()
	if err != nil {
		c.Log.Error().Err(err).Msg("list builds")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Failed to fetch builds."))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(builds)
}

func (c *BuildController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Build not found."))
		return
	}
	switch err := c.Builds.Delete(uint(id)); {
	case err == nil:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Build deleted successfully."))
	case errors.Is(err, services.ErrBuildNotFound):
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Build not found."))
	default:
		c.Log.Error().Err(err).Uint64("build_id", id).Msg("delete build")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Failed to delete from database."))
	}
}
