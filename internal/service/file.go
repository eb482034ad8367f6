package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/templui/footprint/internal/model"
	"github.com/templui/footprint/internal/repository"
	"github.com/templui/footprint/internal/storage"
)

type FileService struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
	}
}

// Upload describes content to store. Validation is the caller's job.
type Upload struct {
	UserID       string
	OwnerType    string
	OwnerID      string
	FileType     string
	OriginalName string
	ContentType  string
	Size         int64
	Public       bool
	Content      io.Reader
}

// Upload writes the content to storage and records it. The object is removed
// again when the record can't be written.
func (s *FileService) Upload(u Upload) (*model.File, error) {
	ext := strings.ToLower(filepath.Ext(u.OriginalName))
	filename := uuid.New().String() + ext

	prefix := "private"
	if u.Public {
		prefix = "public"
	}
	// avatar -> public/avatars/<uuid>.png
	storagePath := path.Join(prefix, u.FileType+"s", filename)

	err := s.storage.Save(storagePath, u.ContentType, u.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	file := &model.File{
		UserID:       u.UserID,
		OwnerType:    u.OwnerType,
		OwnerID:      u.OwnerID,
		Type:         u.FileType,
		Filename:     filename,
		OriginalName: u.OriginalName,
		MimeType:     u.ContentType,
		Size:         u.Size,
		StoragePath:  storagePath,
		Public:       u.Public,
	}

	err = s.fileRepo.Create(file)
	if err != nil {
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return file, nil
}

func (s *FileService) Avatar(userID string) (*model.File, error) {
	return s.fileRepo.FileByType(model.OwnerTypeUser, userID, model.FileTypeAvatar)
}

// ReplaceAvatar uploads a new avatar and drops the previous one.
func (s *FileService) ReplaceAvatar(u Upload) (*model.File, error) {
	old, err := s.Avatar(u.UserID)
	if err != nil && !errors.Is(err, repository.ErrFileNotFound) {
		return nil, err
	}

	u.OwnerType = model.OwnerTypeUser
	u.OwnerID = u.UserID
	u.FileType = model.FileTypeAvatar
	u.Public = true

	file, err := s.Upload(u)
	if err != nil {
		return nil, err
	}

	if old != nil {
		err = s.Delete(old.ID)
		if err != nil {
			slog.Warn("failed to delete previous avatar", "error", err, "file_id", old.ID)
		}
	}
	return file, nil
}

// URL returns a link for the file, empty when none can be produced.
func (s *FileService) URL(file *model.File) string {
	if file == nil {
		return ""
	}

	url, err := s.storage.URL(file.StoragePath, file.Public)
	if err != nil {
		slog.Warn("failed to build file url", "error", err, "file_id", file.ID)
		return ""
	}
	return url
}

// Delete removes a file from storage and database
func (s *FileService) Delete(fileID string) error {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	// best effort, the record goes either way
	delErr := s.storage.Delete(file.StoragePath)
	if delErr != nil {
		slog.Error("failed to delete file from storage", "error", delErr, "path", file.StoragePath)
	}

	err = s.fileRepo.Delete(fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

func (s *FileService) DeleteUserAvatar(userID string) error {
	file, err := s.Avatar(userID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil
		}
		return err
	}

	return s.Delete(file.ID)
}

func (s *FileService) UserFiles(userID, fileType string) ([]*model.File, error) {
	return s.fileRepo.UserFilesByType(userID, fileType)
}

func (s *FileService) DeleteAllUserFilesFromStorage(userID string) error {
	files, err := s.fileRepo.AllUserFiles(userID)
	if err != nil {
		return fmt.Errorf("failed to get user files: %w", err)
	}

	for _, file := range files {
		err = s.storage.Delete(file.StoragePath)
		if err != nil {
			// the object may already be gone
			slog.Warn("failed to delete file from storage", "storage_path", file.StoragePath, "error", err)
		}
	}

	return nil
}
