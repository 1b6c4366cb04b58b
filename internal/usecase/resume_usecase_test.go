package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/skill"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/resume"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyDoc(text string) []byte {
	data := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0x00}, []byte(text)...)
	return append(data, 0x00, 0x01)
}

func TestResume_UploadRejectsBadFiles(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana")
	uc := NewResumeUsecase(h.store, h.blobs, h.activity, logger.Nop())

	_, err := uc.Upload(context.Background(), u.ID, ResumeUpload{FileName: "cv.txt", Data: []byte("hi")})
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = uc.Upload(context.Background(), u.ID, ResumeUpload{FileName: "cv.pdf", Data: make([]byte, resume.MaxFileSize+1)})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = uc.Upload(context.Background(), u.ID, ResumeUpload{FileName: "cv.pdf"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, h.blobs.data)
}

func TestResume_UploadMergesSkillsAndPhone(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana", has("linux", skill.LevelExpert))
	uc := NewResumeUsecase(h.store, h.blobs, h.activity, logger.Nop())

	res, err := uc.Upload(context.Background(), u.ID, ResumeUpload{
		FileName: "My CV.doc",
		Data:     legacyDoc("Skilled in Kubernetes and Linux. Phone +1 555-123-4567"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubernetes", "Linux"}, res.ExtractedSkills)
	assert.Equal(t, 1, res.SkillsAdded)
	assert.Equal(t, "My CV.doc", res.Resume.OriginalName)
	assert.Equal(t, "application/msword", res.Resume.ContentType)
	assert.True(t, strings.HasPrefix(res.Resume.StorageKey, u.ID.String()+"/resume-"))
	assert.True(t, strings.HasSuffix(res.Resume.StorageKey, ".doc"))
	assert.Contains(t, h.blobs.data, res.Resume.StorageKey)

	skills := h.skills.byUser[u.ID]
	require.Len(t, skills, 2)
	assert.Equal(t, skill.LevelExpert, skills[0].Level, "existing skill untouched")
	assert.Equal(t, skill.LevelIntermediate, skills[1].Level)
	assert.Equal(t, "+1 555-123-4567", h.users.byID[u.ID].Profile.Phone)
	assert.Contains(t, h.activities.actions(u.ID), activity.ActionResumeUploaded)
}

func TestResume_ReplaceRemovesOldFile(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana")
	uc := NewResumeUsecase(h.store, h.blobs, h.activity, logger.Nop())

	first, err := uc.Upload(context.Background(), u.ID, ResumeUpload{FileName: "a.doc", Data: legacyDoc("first version")})
	require.NoError(t, err)
	second, err := uc.Upload(context.Background(), u.ID, ResumeUpload{FileName: "b.doc", Data: legacyDoc("second version")})
	require.NoError(t, err)

	assert.NotContains(t, h.blobs.data, first.Resume.StorageKey)
	assert.Contains(t, h.blobs.data, second.Resume.StorageKey)

	body, rec, err := uc.Download(context.Background(), u.ID)
	require.NoError(t, err)
	defer body.Close()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "second version")
	assert.Equal(t, "b.doc", rec.OriginalName)
}

func TestResume_DeleteAndAnalysis(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana")
	uc := NewResumeUsecase(h.store, h.blobs, h.activity, logger.Nop())

	assert.ErrorIs(t, uc.Delete(context.Background(), u.ID), ErrResumeNotFound)
	_, err := uc.Analysis(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrResumeNotFound)
	_, _, err = uc.Download(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrResumeNotFound)

	_, err = uc.Upload(context.Background(), u.ID, ResumeUpload{FileName: "cv.doc", Data: legacyDoc("Docker and Python")})
	require.NoError(t, err)

	a, err := uc.Analysis(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, a.SkillsCount)
	assert.NotEmpty(t, a.Suggestions)

	require.NoError(t, uc.Delete(context.Background(), u.ID))
	assert.Empty(t, h.blobs.data)
	assert.Contains(t, h.activities.actions(u.ID), activity.ActionResumeDeleted)
	assert.ErrorIs(t, uc.Delete(context.Background(), u.ID), ErrResumeNotFound)
}
