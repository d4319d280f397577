package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/domain/repository"
	"careerconnect/internal/domain/service"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo    repository.UserRepository
	fileStorage service.FileStorage
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	FileStorage service.FileStorage
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo:    params.UserRepo,
		fileStorage: params.FileStorage,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateProfile modifies the caller's own profile fields.
func (srv *profileService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.loadUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.AutoSendStatusEmail = input.AutoSendStatusEmail
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return user, nil
}

// UploadAvatar stores an avatar image and records its URL on the user.
func (srv *profileService) UploadAvatar(ctx context.Context, input usecase.UploadInput) (string, error) {
	user, err := srv.loadUser(ctx, input.ActorID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s%s", user.ID, path.Ext(input.Filename))
	url, err := srv.fileStorage.Save(ctx, key, input.ContentType, input.Content)
	if err != nil {
		return "", errors.Wrap(err, "failed to store avatar")
	}

	user.AvatarURL = url
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return "", errors.Wrap(err, "failed to record avatar url")
	}

	srv.log(ctx).Info("Avatar uploaded", slog.Any("userID", user.ID))

	return url, nil
}

// UploadResume stores a resume document and records its URL on the user.
func (srv *profileService) UploadResume(ctx context.Context, input usecase.UploadInput) (string, error) {
	user, err := srv.loadUser(ctx, input.ActorID)
	if err != nil {
		return "", err
	}
	if user.Role != entity.RoleCandidate {
		return "", domainerrors.ErrForbidden.WrapMessage("only candidates carry resumes")
	}

	key := fmt.Sprintf("resumes/%s%s", user.ID, path.Ext(input.Filename))
	url, err := srv.fileStorage.Save(ctx, key, input.ContentType, input.Content)
	if err != nil {
		return "", errors.Wrap(err, "failed to store resume")
	}

	user.ResumeURL = url
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return "", errors.Wrap(err, "failed to record resume url")
	}

	srv.log(ctx).Info("Resume uploaded", slog.Any("userID", user.ID))

	return url, nil
}

func (srv *profileService) loadUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}
