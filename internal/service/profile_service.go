package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"signlearn_backend/internal/config"
	"signlearn_backend/internal/model"
	"signlearn_backend/internal/repository"
	"signlearn_backend/internal/util"
	"signlearn_backend/pkg/logger"
	"signlearn_backend/pkg/monitoring"
	"signlearn_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ObjectStore stores bytes and hands back a URL that resolves to them.
type ObjectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, opts PutOptions) (string, error)
}

// ProfileService applies validated name and avatar changes to learner records.
// Concurrent changes to one learner are not serialized; the last write wins.
type ProfileService struct {
	Learners     LearnerStore
	Storage      ObjectStore
	CacheControl string

	settings atomic.Pointer[config.ProgressConfig]
	now      func() time.Time
}

func NewProfileService(learners LearnerStore, storage ObjectStore, cfg *config.Config) *ProfileService {
	s := &ProfileService{
		Learners:     learners,
		Storage:      storage,
		CacheControl: cfg.Storage.CacheControl,
		now:          time.Now,
	}
	s.ApplyConfig(cfg.Progress)
	return s
}

func (s *ProfileService) ApplyConfig(cfg config.ProgressConfig) {
	s.settings.Store(&cfg)
}

// AvatarMaxBytes is the largest accepted avatar; 0 means unbounded.
func (s *ProfileService) AvatarMaxBytes() int64 {
	return s.settings.Load().AvatarMaxBytes
}

func (s *ProfileService) Profile(ctx context.Context, learnerID string) (*model.Learner, error) {
	return s.Learners.FindByUUID(ctx, learnerID)
}

// RenameLearner stores newName, trimmed of surrounding space, as the display name.
func (s *ProfileService) RenameLearner(ctx context.Context, learnerID, newName string) (*model.Learner, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ProfileService.RenameLearner")
	defer span.End()

	learner, err := s.rename(ctx, learnerID, newName)
	monitoring.ObserveMutation("rename", err)
	if err != nil {
		span.RecordError(err)
	}
	return learner, err
}

func (s *ProfileService) rename(ctx context.Context, learnerID, newName string) (*model.Learner, error) {
	name := strings.TrimSpace(newName)
	if name == "" {
		return nil, util.NewError("profile.Rename", util.ErrValidation, "name must not be empty")
	}
	maxLen := s.settings.Load().NameMaxLength
	if utf8.RuneCountInString(name) > maxLen {
		return nil, util.NewError("profile.Rename", util.ErrValidation,
			fmt.Sprintf("name must be at most %d characters", maxLen))
	}

	if err := s.Learners.Update(ctx, learnerID, map[string]interface{}{
		repository.LearnerColumnName: name,
	}); err != nil {
		return nil, err
	}
	return s.Learners.FindByUUID(ctx, learnerID)
}

// AvatarKey names an avatar object after its owner and the upload time.
func AvatarKey(learnerID string, at time.Time, ext string) string {
	return fmt.Sprintf("%s_%d%s", learnerID, at.UnixMilli(), ext)
}

// SetAvatar validates and stores an avatar image and returns its public URL.
// The learner record is not touched; see AttachAvatar.
func (s *ProfileService) SetAvatar(ctx context.Context, learnerID string, data []byte, contentType string) (string, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ProfileService.SetAvatar")
	defer span.End()
	span.SetAttributes(attribute.Int("avatar.bytes", len(data)))

	avatarURL, err := s.setAvatar(ctx, learnerID, data, contentType)
	monitoring.ObserveMutation("avatar_upload", err)
	if err != nil {
		span.RecordError(err)
	}
	return avatarURL, err
}

func (s *ProfileService) setAvatar(ctx context.Context, learnerID string, data []byte, contentType string) (string, error) {
	if learnerID == "" {
		return "", util.NewError("profile.SetAvatar", util.ErrNotAuthenticated, "no learner")
	}
	if maxBytes := s.settings.Load().AvatarMaxBytes; maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", util.NewError("profile.SetAvatar", util.ErrValidation,
			fmt.Sprintf("image must be at most %d bytes", maxBytes))
	}
	mimeType, err := util.ValidateImage(data, contentType)
	if err != nil {
		return "", util.WrapError("profile.SetAvatar", util.ErrValidation, "file must be a JPEG, PNG, GIF or WebP image", err)
	}

	key := AvatarKey(learnerID, s.now(), util.ImageExtension(mimeType))
	avatarURL, err := s.Storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mimeType, PutOptions{
		CacheControl: s.CacheControl,
		Overwrite:    true,
	})
	if err != nil {
		logger.Log.Error("avatar upload failed", zap.String("learner", learnerID), zap.String("key", key), zap.Error(err))
		return "", util.WrapError("profile.SetAvatar", util.ErrStorage, "could not store image", err)
	}
	return avatarURL, nil
}

// AttachAvatar points the learner record at an already stored avatar. It is
// the retryable half of an avatar change.
func (s *ProfileService) AttachAvatar(ctx context.Context, learnerID, avatarURL string) (*model.Learner, error) {
	learner, err := s.attachAvatar(ctx, learnerID, avatarURL)
	monitoring.ObserveMutation("avatar_attach", err)
	return learner, err
}

func (s *ProfileService) attachAvatar(ctx context.Context, learnerID, avatarURL string) (*model.Learner, error) {
	if !resolvableURL(avatarURL) {
		return nil, util.NewError("profile.AttachAvatar", util.ErrValidation, "avatar must be an http(s) URL or a rooted path")
	}

	if err := s.Learners.Update(ctx, learnerID, map[string]interface{}{
		repository.LearnerColumnProfilePicture: avatarURL,
	}); err != nil {
		return nil, err
	}
	return s.Learners.FindByUUID(ctx, learnerID)
}

// resolvableURL accepts absolute http(s) URLs and server-rooted paths.
func resolvableURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || raw == "" {
		return false
	}
	if u.Scheme == "" && u.Host == "" {
		return strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(raw, "//")
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// UpdateAvatar stores the image, then records its URL on the learner. If the
// record update fails the stored object is kept and its URL is still returned
// with the error, so the caller can retry AttachAvatar alone.
func (s *ProfileService) UpdateAvatar(ctx context.Context, learnerID string, data []byte, contentType string) (string, *model.Learner, error) {
	if _, err := s.Learners.FindByUUID(ctx, learnerID); err != nil {
		return "", nil, err
	}

	avatarURL, err := s.SetAvatar(ctx, learnerID, data, contentType)
	if err != nil {
		return "", nil, err
	}

	learner, err := s.AttachAvatar(ctx, learnerID, avatarURL)
	if err != nil {
		monitoring.OrphanedAvatars.Inc()
		logger.Log.Warn("avatar stored but learner record not updated",
			zap.String("learner", learnerID), zap.String("url", avatarURL), zap.Error(err))
		return avatarURL, nil, err
	}
	return avatarURL, learner, nil
}
