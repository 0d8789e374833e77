package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/query"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

// List pages through a video's comments. Comments on a draft are visible
// only to the video's owner.
func (s *CommentService) List(ctx context.Context, viewer *uint, videoID uint, params ListParams) (*query.Result[*models.Comment], error) {
	plan, err := params.plan("comments", createdAtOnly)
	if err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.videoRepo, videoID, viewer); err != nil {
		return nil, err
	}

	plan.Where(query.Eq{Column: "video_id", Value: videoID}).
		JoinOn(query.OwnerJoin("owner_id", "Owner"))
	comments, total, err := s.commentRepo.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	return query.NewResult(comments, total, plan.Page), nil
}

func (s *CommentService) Add(ctx context.Context, actorID, videoID uint, content string) (*models.Comment, error) {
	content, err := commentContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.videoRepo, videoID, &actorID); err != nil {
		return nil, err
	}

	comment := &models.Comment{Content: content, VideoID: videoID, OwnerID: actorID}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) Update(ctx context.Context, actorID, commentID uint, content string) (*models.Comment, error) {
	content, err := commentContent(content)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actorID, comment.OwnerID, "comments"); err != nil {
		return nil, err
	}
	if err := s.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}

func (s *CommentService) Delete(ctx context.Context, actorID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actorID, comment.OwnerID, "comments"); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return comment, nil
}

func commentContent(raw string) (string, error) {
	content, err := validation.Required("content", raw)
	if err != nil {
		return "", validationErr(err)
	}
	if err := validation.MaxLength("content", content, validation.MaxContentLength); err != nil {
		return "", validationErr(err)
	}
	return content, nil
}
