package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/query"
	"vidtube/internal/repository"
)

type DashboardService struct {
	dashRepo  repository.DashboardRepository
	videoRepo repository.VideoRepository
}

func NewDashboardService(dashRepo repository.DashboardRepository, videoRepo repository.VideoRepository) *DashboardService {
	return &DashboardService{dashRepo: dashRepo, videoRepo: videoRepo}
}

func (s *DashboardService) Stats(ctx context.Context, channelID uint) (*models.ChannelStats, error) {
	return s.dashRepo.ChannelStats(ctx, channelID)
}

// Videos lists all of the channel's videos, published or not.
func (s *DashboardService) Videos(ctx context.Context, channelID uint, params ListParams) (*query.Result[*models.Video], error) {
	plan, err := params.plan("videos", repository.VideoSortKeys)
	if err != nil {
		return nil, err
	}
	plan.Where(query.Eq{Column: "owner_id", Value: channelID}).
		JoinOn(query.OwnerJoin("owner_id", "Owner"))

	videos, total, err := s.videoRepo.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	return query.NewResult(videos, total, plan.Page), nil
}
