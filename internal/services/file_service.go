package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"github.com/yargevad/filepathx"

	"bhindi/internal/events"
	"bhindi/internal/models"
	"bhindi/internal/repositories"
	"bhindi/internal/storage"
)

const (
	// MaxFileSize applies to the file manager.
	MaxFileSize int64 = 50 * 1024 * 1024
	// MaxChatUploadSize applies to attachments sent from the chat box.
	MaxChatUploadSize int64 = 10 * 1024 * 1024
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrFileTooLarge = errors.New("file exceeds size limit")
	ErrFileType     = errors.New("file type not accepted")
)

// acceptedTypes lists MIME types (or "x/*" families) the uploader accepts.
var acceptedTypes = []string{
	"text/*",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"image/*",
	"audio/*",
	"video/*",
}

// AcceptedFileType reports whether the uploader accepts mimeType.
func AcceptedFileType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	for _, t := range acceptedTypes {
		if strings.HasSuffix(t, "/*") {
			if strings.HasPrefix(mimeType, strings.TrimSuffix(t, "*")) {
				return true
			}
			continue
		}
		if mimeType == t {
			return true
		}
	}
	return false
}

// FolderFor buckets a MIME type into one of the file manager folders.
func FolderFor(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "images"
	case strings.HasPrefix(mimeType, "video/"):
		return "videos"
	case strings.HasPrefix(mimeType, "audio/"):
		return "audio"
	case strings.Contains(mimeType, "pdf"), strings.Contains(mimeType, "document"), strings.Contains(mimeType, "text"):
		return "documents"
	default:
		return "others"
	}
}

// FormatFileSize renders bytes as "1.5 KB" style text with at most two decimals.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizes)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizes[i]
}

type FolderCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type FileService interface {
	Startup(ctx context.Context) error
	Add(uploads []models.FileUpload) ([]models.FileItem, error)
	ImportGlob(pattern string) ([]models.FileItem, error)
	Delete(id string) error
	Get(id string) (*models.FileItem, error)
	List(folder, query string) []models.FileItem
	FolderCounts() []FolderCount
	Reset()
}

type fileService struct {
	ctx    context.Context
	items  *storage.Collection[models.FileItem]
	logger *slog.Logger
	now    func() time.Time
}

func NewFileService(repo repositories.SlotRepository, logger *slog.Logger) FileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &fileService{
		items:  storage.NewCollection[models.FileItem](repo, storage.FilesKey, logger),
		logger: logger,
		now:    time.Now,
	}
}

func (s *fileService) Startup(ctx context.Context) error {
	s.ctx = ctx
	return s.items.Load(contextOrBackground(ctx))
}

// Add validates every upload first, then prepends each one so the newest
// file is listed first.
func (s *fileService) Add(uploads []models.FileUpload) ([]models.FileItem, error) {
	for _, up := range uploads {
		if err := validateUpload(up, MaxFileSize); err != nil {
			return nil, err
		}
	}

	ctx := contextOrBackground(s.ctx)
	added := make([]models.FileItem, 0, len(uploads))
	for _, up := range uploads {
		item := models.FileItem{
			ID:         "file_" + ulid.Make().String(),
			Name:       up.Name,
			Type:       up.Type,
			Size:       up.Size,
			UploadedAt: s.now(),
			URL:        up.URL,
			Folder:     FolderFor(up.Type),
		}
		if err := s.items.Prepend(ctx, item); err != nil {
			return added, err
		}
		added = append(added, item)
	}
	if len(added) > 0 {
		events.Emit(ctx, events.Notify, events.NewSuccess(fmt.Sprintf("%d file(s) uploaded successfully!", len(added))))
	}
	return added, nil
}

func validateUpload(up models.FileUpload, limit int64) error {
	if strings.TrimSpace(up.Name) == "" {
		return errors.New("file name is required")
	}
	if up.Size > limit {
		return fmt.Errorf("%w: %s is %s, limit %s", ErrFileTooLarge, up.Name, FormatFileSize(up.Size), FormatFileSize(limit))
	}
	if !AcceptedFileType(up.Type) {
		return fmt.Errorf("%w: %s (%s)", ErrFileType, up.Name, up.Type)
	}
	return nil
}

// ImportGlob registers files from disk matching pattern ("**" allowed).
// Types are sniffed from content; unaccepted or oversized files are skipped.
func (s *fileService) ImportGlob(pattern string) ([]models.FileItem, error) {
	matches, err := filepathx.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	var uploads []models.FileUpload
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		mt, err := mimetype.DetectFile(path)
		if err != nil {
			s.logger.Warn("detect file type", "path", path, "err", err)
			continue
		}
		up := models.FileUpload{
			Name: filepath.Base(path),
			Type: mt.String(),
			Size: info.Size(),
			URL:  "file://" + filepath.ToSlash(path),
		}
		if err := validateUpload(up, MaxFileSize); err != nil {
			s.logger.Info("skip file", "path", path, "err", err)
			continue
		}
		uploads = append(uploads, up)
	}
	if len(uploads) == 0 {
		return []models.FileItem{}, nil
	}
	return s.Add(uploads)
}

func (s *fileService) Delete(id string) error {
	ctx := contextOrBackground(s.ctx)
	removed, err := s.items.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	events.Emit(ctx, events.Notify, events.NewSuccess("File deleted successfully!"))
	return nil
}

func (s *fileService) Get(id string) (*models.FileItem, error) {
	item, ok := s.items.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	return &item, nil
}

// List filters by folder ("" or "all" for every folder) and a
// case-insensitive substring of the file name.
func (s *fileService) List(folder, query string) []models.FileItem {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.items.Filter(func(f models.FileItem) bool {
		if folder != "" && folder != "all" && folderOf(f) != folder {
			return false
		}
		return q == "" || strings.Contains(strings.ToLower(f.Name), q)
	})
}

// FolderCounts returns "all" first, then each folder in order of first
// appearance.
func (s *fileService) FolderCounts() []FolderCount {
	all := s.items.All()
	out := []FolderCount{{Key: "all", Label: "All Files", Count: len(all)}}
	index := map[string]int{}
	for _, f := range all {
		folder := folderOf(f)
		if i, ok := index[folder]; ok {
			out[i].Count++
			continue
		}
		index[folder] = len(out)
		out = append(out, FolderCount{Key: folder, Label: strings.ToUpper(folder[:1]) + folder[1:], Count: 1})
	}
	return out
}

func (s *fileService) Reset() {
	s.items.Reset()
}

func folderOf(f models.FileItem) string {
	if f.Folder == "" {
		return "others"
	}
	return f.Folder
}
