package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/user"
	"career-portal/internal/infrastructure/storage"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/resume"

	"github.com/google/uuid"
)

type ResumeUpload struct {
	FileName string
	Data     []byte
}

type ResumeUploadResult struct {
	Resume          user.Resume
	ExtractedSkills []string
	SkillsAdded     int
}

type ResumeUsecase interface {
	Upload(ctx context.Context, userID uuid.UUID, in ResumeUpload) (ResumeUploadResult, error)
	Download(ctx context.Context, userID uuid.UUID) (io.ReadCloser, user.Resume, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	Analysis(ctx context.Context, userID uuid.UUID) (resume.Analysis, error)
}

type Resume struct {
	store    UserStore
	blobs    storage.Store
	activity *ActivityLog
	logger   *logger.Logger
	now      func() time.Time
}

func NewResumeUsecase(store UserStore, blobs storage.Store, activityLog *ActivityLog, log *logger.Logger) *Resume {
	if log == nil {
		log = logger.Nop()
	}
	return &Resume{store: store, blobs: blobs, activity: activityLog, logger: log, now: time.Now}
}

func (r *Resume) Upload(ctx context.Context, userID uuid.UUID, in ResumeUpload) (ResumeUploadResult, error) {
	original := filepath.Base(strings.TrimSpace(in.FileName))
	contentType, err := resume.ContentType(original)
	if err != nil {
		return ResumeUploadResult{}, ErrUnsupportedFile
	}
	if len(in.Data) == 0 {
		return ResumeUploadResult{}, ErrInvalidInput
	}
	if len(in.Data) > resume.MaxFileSize {
		return ResumeUploadResult{}, ErrFileTooLarge
	}

	u, err := r.store.Load(ctx, userID)
	if err != nil {
		return ResumeUploadResult{}, err
	}

	parsed := user.ParsedResume{Skills: []string{}}
	text, err := resume.ExtractText(original, in.Data)
	if err != nil {
		r.logger.Warn("[Resume] text extraction failed", "user_id", userID, "file", original, "error", err)
	} else {
		parsed = resume.Parse(text)
	}

	now := r.now().UTC()
	ext := strings.ToLower(filepath.Ext(original))
	fileName := fmt.Sprintf("resume-%d-%s%s", now.UnixMilli(), uuid.NewString()[:8], ext)
	key := userID.String() + "/" + fileName

	if err := r.blobs.Put(ctx, key, bytes.NewReader(in.Data), int64(len(in.Data)), contentType); err != nil {
		r.logger.Error("[Resume] store failed", "user_id", userID, "key", key, "error", err)
		return ResumeUploadResult{}, ErrInternal
	}

	rec := user.Resume{
		FileName:     fileName,
		OriginalName: original,
		StorageKey:   key,
		ContentType:  contentType,
		Size:         int64(len(in.Data)),
		UploadedAt:   now,
		Parsed:       parsed,
	}
	if err := r.store.Resumes.Save(ctx, userID, rec); err != nil {
		r.logger.Error("[Resume] save record failed", "user_id", userID, "error", err)
		_ = r.blobs.Delete(ctx, key)
		return ResumeUploadResult{}, ErrInternal
	}

	if u.Resume != nil && u.Resume.StorageKey != "" && u.Resume.StorageKey != key {
		if err := r.blobs.Delete(ctx, u.Resume.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("[Resume] old file delete failed", "user_id", userID, "key", u.Resume.StorageKey, "error", err)
		}
	}

	added, err := r.store.Skills.AddMissing(ctx, userID, resume.Skills(parsed))
	if err != nil {
		r.logger.Error("[Resume] merge skills failed", "user_id", userID, "error", err)
		return ResumeUploadResult{}, ErrInternal
	}

	if strings.TrimSpace(u.Profile.Phone) == "" && parsed.Phone != "" {
		u.Profile.Phone = parsed.Phone
		u.UpdatedAt = now
		if err := r.store.Users.UpdateProfile(ctx, u); err != nil {
			r.logger.Warn("[Resume] phone backfill failed", "user_id", userID, "error", err)
		}
	}

	r.activity.Record(ctx, userID, activity.ActionResumeUploaded, "Resume uploaded and processed", map[string]any{
		"file_name":        original,
		"skills_extracted": len(parsed.Skills),
	})

	return ResumeUploadResult{Resume: rec, ExtractedSkills: parsed.Skills, SkillsAdded: added}, nil
}

func (r *Resume) current(ctx context.Context, userID uuid.UUID) (user.Resume, error) {
	rec, err := r.store.Resumes.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNoResume) {
			return user.Resume{}, ErrResumeNotFound
		}
		return user.Resume{}, ErrInternal
	}
	return rec, nil
}

func (r *Resume) Download(ctx context.Context, userID uuid.UUID) (io.ReadCloser, user.Resume, error) {
	rec, err := r.current(ctx, userID)
	if err != nil {
		return nil, user.Resume{}, err
	}
	body, err := r.blobs.Get(ctx, rec.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, user.Resume{}, ErrResumeNotFound
		}
		r.logger.Error("[Resume] read failed", "user_id", userID, "key", rec.StorageKey, "error", err)
		return nil, user.Resume{}, ErrInternal
	}
	return body, rec, nil
}

func (r *Resume) Delete(ctx context.Context, userID uuid.UUID) error {
	rec, err := r.current(ctx, userID)
	if err != nil {
		return err
	}
	if err := r.blobs.Delete(ctx, rec.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		r.logger.Error("[Resume] delete file failed", "user_id", userID, "key", rec.StorageKey, "error", err)
		return ErrInternal
	}
	if err := r.store.Resumes.Delete(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNoResume) {
			return ErrResumeNotFound
		}
		return ErrInternal
	}

	r.activity.Record(ctx, userID, activity.ActionResumeDeleted, "Resume deleted", nil)
	return nil
}

func (r *Resume) Analysis(ctx context.Context, userID uuid.UUID) (resume.Analysis, error) {
	u, err := r.store.Load(ctx, userID)
	if err != nil {
		return resume.Analysis{}, err
	}
	if !u.HasResume() {
		return resume.Analysis{}, ErrResumeNotFound
	}
	return resume.Analyze(u), nil
}
