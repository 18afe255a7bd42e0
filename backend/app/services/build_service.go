package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/models"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/repo"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/storage"
)

var (
	ErrBuildNotFound   = errors.New("build not found")
	ErrMissingFields   = errors.New("missing required fields")
	ErrArtifactMissing = errors.New("archive file missing from disk")
)

// Build rows stamp upload_time in IST regardless of server locale; the fleet
// and the existing database rows both assume that offset.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// UploadMeta is the operator-supplied targeting metadata for one archive.
// Name, PrinterType, SubType and Uploader are required; the rest may be
// empty.
type UploadMeta struct {
	Name        string
	Version     string
	Description string
	Uploader    string
	PrinterType string
	SubType     string
	Make        string
}

// Target is the validated (printer_type, sub_type, make) device profile.
type Target struct {
	PrinterType string
	SubType     string
	Make        string
}

// ParseTarget splits a space-delimited "<printer_type> <sub_type> <make>"
// string. Anything other than exactly three tokens is a validation error;
// short input must not silently resolve against empty fields.
func ParseTarget(printerDetails string) (Target, error) {
	fields := strings.Fields(printerDetails)
	if len(fields) != 3 {
		return Target{}, fmt.Errorf("%w: want \"<printer_type> <sub_type> <make>\", got %d field(s)", ErrMissingFields, len(fields))
	}
	return Target{PrinterType: fields[0], SubType: fields[1], Make: fields[2]}, nil
}

// BuildService owns the build registry and the artifact files backing it.
type BuildService struct {
	builds    *repo.BuildRepository
	downloads *repo.DownloadRepository
	store     *storage.Store
	log       zerolog.Logger
	now       func() time.Time
}

func NewBuildService(builds *repo.BuildRepository, downloads *repo.DownloadRepository, store *storage.Store, log zerolog.Logger) *BuildService {
	return &BuildService{builds: builds, downloads: downloads, store: store, log: log, now: time.Now}
}

// SaveArchive streams an uploaded archive to the managed directory, before
// any metadata validation: multipart fields may trail the file part, so the
// bytes have to land somewhere first. Register removes the file again when
// the metadata turns out to be bad.
func (s *BuildService) SaveArchive(archive io.Reader, originalName string) (string, int64, error) {
	path, size, err := s.store.Save(archive, originalName)
	if err != nil {
		return "", 0, fmt.Errorf("store archive: %w", err)
	}
	return path, size, nil
}

// Register validates the metadata and inserts the build row for an archive
// already on disk. The two steps are not transactional: on any failure the
// stored file is removed so no orphan is left behind.
func (s *BuildService) Register(meta UploadMeta, path string, size int64) (*models.Build, error) {
	if meta.Name == "" || meta.PrinterType == "" || meta.SubType == "" || meta.Uploader == "" {
		s.discard(path)
		return nil, ErrMissingFields
	}
	b := &models.Build{
		Name:        meta.Name,
		Version:     meta.Version,
		Description: meta.Description,
		UploadedBy:  meta.Uploader,
		UploadTime:  s.now().In(istZone).Format("2006-01-02 15:04:05"),
		FilePath:    path,
		PrinterType: meta.PrinterType,
		SubType:     meta.SubType,
		Size:        fmt.Sprintf("%.2f", float64(size)/(1024*1024)),
		Make:        meta.Make,
	}
	if err := s.builds.Create(b); err != nil {
		s.discard(path)
		return nil, fmt.Errorf("insert build: %w", err)
	}
	return b, nil
}

// Upload is SaveArchive followed by Register, for callers that have the whole
// form in hand up front.
func (s *BuildService) Upload(meta UploadMeta, archive io.Reader, originalName string) (*models.Build, error) {
	path, size, err := s.SaveArchive(archive, originalName)
	if err != nil {
		return nil, err
	}
	return s.Register(meta, path, size)
}

func (s *BuildService) discard(path string) {
	if err := s.store.Remove(path); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("orphan archive left behind")
	}
}

func (s *BuildService) List() ([]models.Build, error) { return s.builds.ListAll() }

// Resolve returns the newest build matching the full device-and-version key.
func (s *BuildService) Resolve(t Target, version string) (*models.Build, error) {
	b, err := s.builds.Resolve(t.PrinterType, t.SubType, t.Make, version)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBuildNotFound
	}
	return b, nil
}

// FindByTarget lists every build for a device profile, newest first.
func (s *BuildService) FindByTarget(t Target) ([]models.Build, error) {
	return s.builds.FindByTarget(t.PrinterType, t.SubType, t.Make)
}

// ArchivePath returns the on-disk path for a resolved build, verifying that
// the file still exists before anything is streamed to a device.
func (s *BuildService) ArchivePath(b *models.Build) (string, error) {
	if !s.store.Exists(b.FilePath) {
		return "", ErrArtifactMissing
	}
	return b.FilePath, nil
}

// Delete removes the backing archive (best-effort, logged) and then the
// registry row. Registry consistency wins over leaked files: a failed file
// removal does not stop the row delete. Deleting an id twice reports
// ErrBuildNotFound on the second call.
func (s *BuildService) Delete(id uint) error {
	b, err := s.builds.FindByID(id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBuildNotFound
	}
	if err := s.store.Remove(b.FilePath); err != nil {
		s.log.Warn().Err(err).Uint("build_id", id).Str("path", b.FilePath).Msg("archive removal failed, deleting row anyway")
	}
	deleted, err := s.builds.DeleteByID(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBuildNotFound
	}
	return nil
}

// RecordDownload appends one Downloads row for a device download attempt.
// Observational only; failures are logged, never surfaced to the device.
func (s *BuildService) RecordDownload(buildID *uint, status, errorMessage string) {
	d := &models.Download{BuildID: buildID, Status: status, ErrorMessage: errorMessage}
	if err := s.downloads.Create(d); err != nil {
		s.log.Warn().Err(err).Msg("record download attempt failed")
	}
}
