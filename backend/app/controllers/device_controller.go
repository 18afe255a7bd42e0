package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/audit"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/dto"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/middleware"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/models"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/services"
)

// DeviceController serves the printer-facing endpoints behind the device
// gate. Every request through here, success or failure, produces one audit
// entry with the client IP: these are unattended machines in the field and
// the audit trail is how support reconstructs what a printer saw.
type DeviceController struct {
	Builds *services.BuildService
	Audit  *audit.Logger
	Log    zerolog.Logger
}

func NewDeviceController(builds *services.BuildService, auditLog *audit.Logger, log zerolog.Logger) *DeviceController {
	return &DeviceController{Builds: builds, Audit: auditLog, Log: log}
}

// Download resolves the full device-and-version key and streams the archive.
func (c *DeviceController) Download(w http.ResponseWriter, r *http.Request) {
	ip := middleware.ClientIP(r)

	var req dto.DownloadRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if !req.Complete() {
		_ = c.Audit.Recordf("ERROR: Missing parameters for download from %s", ip)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Missing 'printer_type', 'sub_type' or 'make' or 'build_number'"))
		return
	}

	target := services.Target{PrinterType: req.PrinterType, SubType: req.SubType, Make: req.Make}
	b, err := c.Builds.Resolve(target, req.BuildNumber)
	if errors.Is(err, services.ErrBuildNotFound) {
		_ = c.Audit.Recordf("NOT FOUND: No build for %s/%s/%s/%s (%s)", req.PrinterType, req.SubType, req.Make, req.BuildNumber, ip)
		c.Builds.RecordDownload(nil, models.DownloadFailed, "no matching build")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("No build found"))
		return
	}
	if err != nil {
		_ = c.Audit.Recordf("DB ERROR: %v (%s)", err, ip)
		c.Log.Error().Err(err).Str("ip", ip).Msg("resolve build")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Database error"))
		return
	}

	path, err := c.Builds.ArchivePath(b)
	if err != nil {
		_ = c.Audit.Recordf("FILE MISSING: %s (%s)", b.FilePath, ip)
		c.Builds.RecordDownload(&b.ID, models.DownloadFailed, "archive missing from disk")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("File not found"))
		return
	}

	f, err := os.Open(path)
	if err != nil {
		_ = c.Audit.Recordf("DOWNLOAD ERROR: %v (%s)", err, ip)
		c.Builds.RecordDownload(&b.ID, models.DownloadFailed, "archive unreadable")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Download failed"))
		return
	}
	defer f.Close()

	name := filepath.Base(path)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}
	if _, err := io.Copy(w, f); err != nil {
		// Headers are gone; all we can do is record the broken transfer.
		_ = c.Audit.Recordf("DOWNLOAD ERROR: %v (%s)", err, ip)
		c.Builds.RecordDownload(&b.ID, models.DownloadFailed, "transfer interrupted")
		return
	}
	_ = c.Audit.Recordf("DOWNLOAD SUCCESS: %s (%s)", name, ip)
	c.Builds.RecordDownload(&b.ID, models.DownloadSuccess, "")
}

// BuildDetails lists every build matching a device profile, metadata only.
func (c *DeviceController) BuildDetails(w http.ResponseWriter, r *http.Request) {
	ip := middleware.ClientIP(r)

	var req dto.BuildDetailsRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	target, err := services.ParseTarget(req.PrinterDetails)
	if err != nil {
		_ = c.Audit.Recordf("ERROR: Malformed printerDetails %q from %s", req.PrinterDetails, ip)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("printerDetails must be '<printer_type> <sub_type> <make>'"))
		return
	}

	builds, err := c.Builds.FindByTarget(target)
	if err != nil {
		_ = c.Audit.Recordf("DB ERROR: %v (%s)", err, ip)
		c.Log.Error().Err(err).Str("ip", ip).Msg("find builds by target")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Failed to fetch builds."))
		return
	}
	_ = c.Audit.Recordf("BUILD DETAILS: %d build(s) for %s/%s/%s (%s)", len(builds), target.PrinterType, target.SubType, target.Make, ip)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(builds)
}
