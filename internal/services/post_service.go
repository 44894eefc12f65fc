package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrEmptyContent  = errors.New("content cannot be empty")
	ErrEmptyComment  = errors.New("comment text is required")
	ErrNotPostAuthor = errors.New("only the author can delete this post")
)

// PostService provides business logic for posts and their comments.
type PostService struct {
	postRepo            repository.PostRepository
	projectRepo         repository.ProjectRepository
	userRepo            repository.UserRepository
	notificationService *NotificationService
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	notificationService *NotificationService,
) *PostService {
	return &PostService{
		postRepo:            postRepo,
		projectRepo:         projectRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// CreatePostInput represents parameters to create a new post.
type CreatePostInput struct {
	UserID    uint64
	ProjectID *uint64
	Content   string
	ImageURL  string
}

// CreatePost creates a post, optionally attached to a project.
func (s *PostService) CreatePost(input CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrEmptyContent
	}

	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}

	post := &models.Post{
		UserID:    input.UserID,
		ProjectID: input.ProjectID,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// visibleTo reports whether the viewer may see the post: no project, public
// project, or the viewer's own post.
func visibleTo(post *models.Post, viewerID uint64) bool {
	if post.ProjectID == nil || post.UserID == viewerID {
		return true
	}
	return post.Project != nil && !post.Project.IsPrivate
}

// GetPost returns a post, applying the derived visibility rule. Invisible
// posts read as absent rather than forbidden.
func (s *PostService) GetPost(postID, viewerID uint64) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	if !visibleTo(post, viewerID) {
		return nil, ErrPostNotFound
	}

	return post, nil
}

// ProjectPosts lists the posts attached to a project, newest first. On a
// private project only the viewer's own posts remain visible.
func (s *PostService) ProjectPosts(projectID, viewerID uint64) ([]models.Post, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	posts, err := s.postRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project posts: %w", err)
	}

	if !project.IsPrivate {
		return posts, nil
	}
	visible := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post.UserID == viewerID {
			visible = append(visible, post)
		}
	}
	return visible, nil
}

// ListPosts lists the posts visible to the viewer, newest first.
func (s *PostService) ListPosts(viewerID uint64, offset, limit int) ([]models.Post, int64, error) {
	posts, total, err := s.postRepo.ListVisible(viewerID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// DeletePost removes a post; only its author may do so.
func (s *PostService) DeletePost(postID, actorID uint64) error {
	post, err := s.GetPost(postID, actorID)
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return ErrNotPostAuthor
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// Comment appends a comment to a post the actor can see and notifies the
// post's author, unless the author is commenting on their own post.
func (s *PostService) Comment(postID, actorID uint64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	post, err := s.GetPost(postID, actorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: actorID,
		Text:   text,
	}
	if err := s.postRepo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if post.UserID != actorID {
		actor, err := s.userRepo.FindByID(actorID)
		if err == nil {
			s.notificationService.RecordQuietly(
				actorID, post.UserID,
				fmt.Sprintf("%s commented on your post", actor.Username),
				&postID, nil,
			)
		}
	}

	return comment, nil
}

// Comments lists a post's comments, newest first.
func (s *PostService) Comments(postID, viewerID uint64) ([]models.Comment, error) {
	if _, err := s.GetPost(postID, viewerID); err != nil {
		return nil, err
	}

	comments, err := s.postRepo.ListComments(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Engagement returns the like and comment counts for a post.
func (s *PostService) Engagement(postID uint64) (likes, comments int64, err error) {
	likes, err = s.postRepo.CountLikes(postID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count likes: %w", err)
	}
	comments, err = s.postRepo.CountComments(postID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return likes, comments, nil
}
