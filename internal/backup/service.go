package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/nutrition"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/sessions"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=backup_test

const RootFolderName = "gym-app-backup"

// WatermarkOverlap is re-read on every incremental backup so rows committed by
// transactions still open at the previous collect are not lost.
const WatermarkOverlap = time.Minute

type fileStore interface {
	FindFolder(ctx context.Context, name string) (string, error)
	CreateFolder(ctx context.Context, name string) (string, error)
	DeleteFolder(ctx context.Context, folderID string) error
	ListFiles(ctx context.Context, folderID string) ([]StoredFile, error)
	Upload(ctx context.Context, folderID string, name string, collectedAt time.Time, content []byte) (string, error)
}

type sessionsSource interface {
	ListSince(ctx context.Context, since time.Time) ([]sessions.Session, error)
}

type mealsSource interface {
	ListAllSince(ctx context.Context, from time.Time) ([]nutrition.Meal, error)
}

// Document is the content of one backup file. CreatedAt is when its data was collected.
type Document struct {
	CreatedAt time.Time          `json:"createdAt"`
	Since     time.Time          `json:"since"`
	Sessions  []sessions.Session `json:"sessions"`
	Meals     []nutrition.Meal   `json:"meals"`
}

type Service struct {
	store          fileStore
	sessions       sessionsSource
	meals          mealsSource
	metricsManager *metrics.Manager
	folderID       string
	now            func() time.Time
}

func NewService(store fileStore, sessionsSrc sessionsSource, mealsSrc mealsSource, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		sessions:       sessionsSrc,
		meals:          mealsSrc,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// WithClock replaces the clock stamping collect times.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Init finds the root backups folder, creating it when missing.
func (s *Service) Init(ctx context.Context) error {
	folderID, err := s.store.FindFolder(ctx, RootFolderName)
	if err != nil {
		return err
	}
	if folderID == "" {
		log.Infof("root backups folder %s not found, creating ...", RootFolderName)
		if folderID, err = s.store.CreateFolder(ctx, RootFolderName); err != nil {
			return fmt.Errorf("create root backups folder: %w", err)
		}
	}
	log.Infof("using backups folder %s", folderID)
	s.folderID = folderID
	return nil
}

// Reinit drops every backup file and writes a fresh initial backup.
func (s *Service) Reinit(ctx context.Context, baseTime time.Time) error {
	log.Warnln("backup reinit, deleting the backups folder ...")
	if err := s.store.DeleteFolder(ctx, s.folderID); err != nil {
		return fmt.Errorf("delete backups folder: %w", err)
	}
	folderID, err := s.store.CreateFolder(ctx, RootFolderName)
	if err != nil {
		return fmt.Errorf("create root backups folder: %w", err)
	}
	s.folderID = folderID
	return s.DoBackup(ctx, baseTime)
}

// DoBackup uploads everything with activity since the newest backup's collect time.
// The first backup in an empty folder covers all data.
func (s *Service) DoBackup(ctx context.Context, baseTime time.Time) (err error) {
	start := time.Now()
	defer func() {
		if s.metricsManager != nil && err == nil {
			s.metricsManager.HistBackupDuration.Observe(time.Since(start).Seconds())
		}
	}()

	if s.folderID == "" {
		return fmt.Errorf("backup service not initialized")
	}

	files, err := s.store.ListFiles(ctx, s.folderID)
	if err != nil {
		return err
	}

	prefix := "gym-backup"
	if len(files) == 0 {
		log.Infoln("backups empty, creating initial backup file ...")
		prefix = "initial"
	}
	since := watermark(files)

	collectedAt := s.now().UTC()
	doc, err := s.collect(ctx, since)
	if err != nil {
		return err
	}
	doc.CreatedAt = collectedAt

	if len(doc.Sessions) == 0 && len(doc.Meals) == 0 {
		log.Infof("nothing new to back up since %v", since)
		return nil
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal backup document: %w", err)
	}

	name := nextFileName(prefix, baseTime, files)
	fileID, err := s.store.Upload(ctx, s.folderID, name, collectedAt, content)
	if err != nil {
		return err
	}

	log.Infof("backup %s (%s) saved: %d sessions, %d meals since %v", name, fileID, len(doc.Sessions), len(doc.Meals), since)
	return nil
}

// watermark is the newest collect time minus WatermarkOverlap, or zero for an empty folder.
// Files without a stored collect time fall back to their upload time.
func watermark(files []StoredFile) time.Time {
	var newest time.Time
	for _, f := range files {
		mark := f.CollectedAt
		if mark.IsZero() {
			mark = f.CreatedTime
		}
		if mark.After(newest) {
			newest = mark
		}
	}
	if newest.IsZero() {
		return newest
	}
	return newest.Add(-WatermarkOverlap)
}

func (s *Service) collect(ctx context.Context, since time.Time) (*Document, error) {
	list, sessionsErr := s.sessions.ListSince(ctx, since)
	meals, mealsErr := s.meals.ListAllSince(ctx, since)
	if err := multierr.Combine(sessionsErr, mealsErr); err != nil {
		return nil, fmt.Errorf("collect backup data: %w", err)
	}

	if list == nil {
		list = []sessions.Session{}
	}
	if meals == nil {
		meals = []nutrition.Meal{}
	}
	return &Document{
		Since:    since,
		Sessions: list,
		Meals:    meals,
	}, nil
}

// nextFileName picks <prefix>-<d>-<m>-<yyyy>.json, adding a counter when that name is taken.
func nextFileName(prefix string, baseTime time.Time, existing []StoredFile) string {
	taken := make(map[string]bool, len(existing))
	for _, f := range existing {
		taken[f.Name] = true
	}

	base := fmt.Sprintf("%s-%d-%d-%d", prefix, baseTime.Day(), baseTime.Month(), baseTime.Year())
	name := base + ".json"
	for counter := 2; taken[name]; counter++ {
		name = fmt.Sprintf("%s_%d.json", base, counter)
	}
	return name
}
