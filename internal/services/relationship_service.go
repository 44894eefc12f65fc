package services

import (
	"errors"
	"fmt"

	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"gorm.io/gorm"
)

// RelationshipKind identifies one of the toggleable relationships. The set is
// closed; all four share the same create-or-remove semantics.
type RelationshipKind string

const (
	KindLike        RelationshipKind = "like"
	KindSavePost    RelationshipKind = "save_post"
	KindSaveProject RelationshipKind = "save_project"
	KindFollow      RelationshipKind = "follow"
)

var (
	ErrSelfFollow              = errors.New("cannot follow yourself")
	ErrUnknownRelationshipKind = errors.New("unknown relationship kind")
)

// RelationshipService toggles and queries the marker relationships: likes,
// saved posts, saved projects and follow edges.
type RelationshipService struct {
	relationshipRepo    repository.RelationshipRepository
	userRepo            repository.UserRepository
	postRepo            repository.PostRepository
	projectRepo         repository.ProjectRepository
	notificationService *NotificationService
}

// NewRelationshipService creates a new RelationshipService
func NewRelationshipService(
	relationshipRepo repository.RelationshipRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	projectRepo repository.ProjectRepository,
	notificationService *NotificationService,
) *RelationshipService {
	return &RelationshipService{
		relationshipRepo:    relationshipRepo,
		userRepo:            userRepo,
		postRepo:            postRepo,
		projectRepo:         projectRepo,
		notificationService: notificationService,
	}
}

// Toggle creates the (actor, target) join record if absent or removes it if
// present, reporting which branch occurred. Creation is a single atomic
// insert guarded by the store's uniqueness constraint, never a
// read-then-write. On creation of a like or follow edge the target's owner is
// notified, unless the actor is that owner; saved markers are private
// bookmarks and never notify.
func (s *RelationshipService) Toggle(kind RelationshipKind, actorID, targetID uint64) (bool, error) {
	switch kind {
	case KindLike:
		return s.toggleLike(actorID, targetID)
	case KindSavePost:
		return s.toggleSavedPost(actorID, targetID)
	case KindSaveProject:
		return s.toggleSavedProject(actorID, targetID)
	case KindFollow:
		return s.toggleFollow(actorID, targetID)
	default:
		return false, ErrUnknownRelationshipKind
	}
}

// IsFollowing reports whether the follower currently follows the target
func (s *RelationshipService) IsFollowing(followerID, targetID uint64) (bool, error) {
	return s.relationshipRepo.IsFollowing(followerID, targetID)
}

// HasMarker reports whether the observer currently holds the marker for the
// target. Follow edges go through IsFollowing instead; they carry their own
// direction semantics.
func (s *RelationshipService) HasMarker(kind RelationshipKind, observerID, targetID uint64) (bool, error) {
	switch kind {
	case KindLike:
		return s.relationshipRepo.HasLike(targetID, observerID)
	case KindSavePost:
		return s.relationshipRepo.HasSavedPost(observerID, targetID)
	case KindSaveProject:
		return s.relationshipRepo.HasSavedProject(observerID, targetID)
	default:
		return false, ErrUnknownRelationshipKind
	}
}

func (s *RelationshipService) toggleLike(actorID, postID uint64) (bool, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPostNotFound
		}
		return false, fmt.Errorf("failed to find post: %w", err)
	}

	created, err := s.relationshipRepo.ToggleLike(postID, actorID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}

	if created && post.UserID != actorID {
		actor, err := s.userRepo.FindByID(actorID)
		if err == nil {
			s.notificationService.RecordQuietly(
				actorID, post.UserID,
				fmt.Sprintf("%s liked your post", actor.Username),
				&postID, nil,
			)
		}
	}

	return created, nil
}

func (s *RelationshipService) toggleSavedPost(actorID, postID uint64) (bool, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPostNotFound
		}
		return false, fmt.Errorf("failed to find post: %w", err)
	}

	created, err := s.relationshipRepo.ToggleSavedPost(actorID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle saved post: %w", err)
	}
	return created, nil
}

func (s *RelationshipService) toggleSavedProject(actorID, projectID uint64) (bool, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProjectNotFound
		}
		return false, fmt.Errorf("failed to find project: %w", err)
	}

	created, err := s.relationshipRepo.ToggleSavedProject(actorID, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle saved project: %w", err)
	}
	return created, nil
}

func (s *RelationshipService) toggleFollow(actorID, targetUserID uint64) (bool, error) {
	if actorID == targetUserID {
		return false, ErrSelfFollow
	}

	target, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to find user: %w", err)
	}

	created, err := s.relationshipRepo.ToggleFollower(actorID, targetUserID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle follow: %w", err)
	}

	if created {
		actor, err := s.userRepo.FindByID(actorID)
		if err == nil {
			s.notificationService.RecordQuietly(
				actorID, target.ID,
				fmt.Sprintf("%s started following you", actor.Username),
				nil, nil,
			)
		}
	}

	return created, nil
}

// SavedPosts lists the posts a user has bookmarked.
func (s *RelationshipService) SavedPosts(userID uint64) ([]models.SavedPost, error) {
	saved, err := s.relationshipRepo.ListSavedPosts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved posts: %w", err)
	}
	return saved, nil
}

// SavedProjects lists the projects a user has bookmarked.
func (s *RelationshipService) SavedProjects(userID uint64) ([]models.SavedProject, error) {
	saved, err := s.relationshipRepo.ListSavedProjects(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved projects: %w", err)
	}
	return saved, nil
}
