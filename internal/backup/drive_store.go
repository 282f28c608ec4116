package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

const collectedAtProperty = "collected_at"

type StoredFile struct {
	ID          string
	Name        string
	CreatedTime time.Time
	// CollectedAt is when the file's data was read, zero for files uploaded without it.
	CollectedAt time.Time
}

// DriveStore keeps backup files in a Google Drive folder.
type DriveStore struct {
	service   *drive.Service
	shareWith string
}

// NewDriveStore authenticates with a service account credentials json. When shareWith is set,
// every created file and folder gets a reader permission for that email.
func NewDriveStore(ctx context.Context, credentialsJSON []byte, shareWith string) (*DriveStore, error) {
	service, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}
	return &DriveStore{
		service:   service,
		shareWith: shareWith,
	}, nil
}

// FindFolder returns the id of the named folder, or "" when there is none.
func (s *DriveStore) FindFolder(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", folderMimeType, name)
	res, err := s.service.Files.List().Q(q).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list folders: %w", err)
	}

	switch len(res.Files) {
	case 0:
		return "", nil
	case 1:
		return res.Files[0].Id, nil
	default:
		log.Warnf("found %d backup folders named %s, taking the first one: %s", len(res.Files), name, res.Files[0].Id)
		return res.Files[0].Id, nil
	}
}

func (s *DriveStore) CreateFolder(ctx context.Context, name string) (string, error) {
	folder, err := s.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	if err := s.share(ctx, folder.Id); err != nil {
		return folder.Id, err
	}
	return folder.Id, nil
}

func (s *DriveStore) DeleteFolder(ctx context.Context, folderID string) error {
	return s.service.Files.Delete(folderID).Context(ctx).Do()
}

func (s *DriveStore) ListFiles(ctx context.Context, folderID string) ([]StoredFile, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType != '%s' and trashed = false", folderID, folderMimeType)
	res, err := s.service.Files.List().Q(q).Fields("files(id, name, createdTime, appProperties)").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list backup files: %w", err)
	}

	files := make([]StoredFile, 0, len(res.Files))
	for _, f := range res.Files {
		createdAt, err := time.Parse(time.RFC3339, f.CreatedTime)
		if err != nil {
			log.Errorf("parse created time of %s: %s", f.Name, err)
			continue
		}
		stored := StoredFile{ID: f.Id, Name: f.Name, CreatedTime: createdAt}
		if raw, ok := f.AppProperties[collectedAtProperty]; ok {
			if stored.CollectedAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
				log.Errorf("parse collected time of %s: %s", f.Name, err)
			}
		}
		files = append(files, stored)
	}
	return files, nil
}

func (s *DriveStore) Upload(ctx context.Context, folderID, name string, collectedAt time.Time, content []byte) (string, error) {
	file, err := s.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: "application/json",
		Parents:  []string{folderID},
		AppProperties: map[string]string{
			collectedAtProperty: collectedAt.UTC().Format(time.RFC3339Nano),
		},
	}).Fields("id, parents").Media(bytes.NewReader(content)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%s: create file: %w", name, err)
	}
	if err := s.share(ctx, file.Id); err != nil {
		return file.Id, err
	}
	return file.Id, nil
}

func (s *DriveStore) share(ctx context.Context, fileID string) error {
	if s.shareWith == "" {
		return nil
	}
	permission, err := s.service.Permissions.Create(fileID, &drive.Permission{
		EmailAddress: s.shareWith,
		Type:         "user",
		Role:         "reader",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("share %s: %w", fileID, err)
	}
	log.Debugf("permission %s created for %s", permission.Id, fileID)
	return nil
}
