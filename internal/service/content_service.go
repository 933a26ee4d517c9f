package service

import (
	"context"
	"encoding/json"

	"poker_school_backend/internal/repository"
	"poker_school_backend/internal/util"
)

type ContentService struct {
	ContentRepo *repository.ContentRepository
	Catalog     *CatalogService
	Media       *MediaService
}

func NewContentService(contentRepo *repository.ContentRepository, catalog *CatalogService, media *MediaService) *ContentService {
	return &ContentService{
		ContentRepo: contentRepo,
		Catalog:     catalog,
		Media:       media,
	}
}

type BannerItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	TargetURL string `json:"targetUrl,omitempty"`
}

func (s *ContentService) Banners(ctx context.Context, language string) ([]BannerItem, error) {
	banners, err := s.ContentRepo.FindBanners(language)
	if err != nil {
		return nil, err
	}
	out := make([]BannerItem, 0, len(banners))
	for i := range banners {
		b := &banners[i]
		out = append(out, BannerItem{
			ID:        b.ID,
			Title:     b.Title,
			Image:     s.Media.ResolveFileURL(ctx, b.ImageID),
			TargetURL: b.TargetURL,
		})
	}
	return out, nil
}

type FeedItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Image    string `json:"image,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

func (s *ContentService) Feeds(ctx context.Context, language string) ([]FeedItem, error) {
	feeds, err := s.ContentRepo.FindFeeds(language)
	if err != nil {
		return nil, err
	}
	out := make([]FeedItem, 0, len(feeds))
	for i := range feeds {
		f := &feeds[i]
		out = append(out, FeedItem{
			ID:       f.ID,
			Title:    f.Title,
			Body:     f.Body,
			Image:    s.Media.ResolveFileURL(ctx, f.ImageID),
			VideoURL: util.NormalizeYouTubeURL(f.VideoURL),
		})
	}
	return out, nil
}

type LiveStreamItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	StartsAt    string   `json:"startsAt,omitempty"`
	IsActive    bool     `json:"isActive"`
}

// LiveStreams lists published streams by scheduled time. streamID narrows to
// one stream, tag keeps only streams carrying that tag.
func (s *ContentService) LiveStreams(ctx context.Context, streamID, tag, language string) ([]LiveStreamItem, error) {
	streams, err := s.ContentRepo.FindLiveStreams(streamID, language)
	if err != nil {
		return nil, err
	}
	out := make([]LiveStreamItem, 0, len(streams))
	for i := range streams {
		ls := &streams[i]
		tags := decodeTags(ls.Tags)
		if tag != "" && !containsTag(tags, tag) {
			continue
		}
		item := LiveStreamItem{
			ID:          ls.ID,
			Title:       ls.Title,
			Description: ls.Description,
			Tags:        tags,
			URL:         util.NormalizeYouTubeURL(ls.URL),
			Thumbnail:   s.Media.ResolveFileURL(ctx, ls.ThumbnailID),
			IsActive:    ls.IsActive,
		}
		if ls.StartsAt != nil {
			item.StartsAt = ls.StartsAt.Format("2006-01-02T15:04:05Z07:00")
		}
		out = append(out, item)
	}
	return out, nil
}

func decodeTags(raw []byte) []string {
	tags := []string{}
	if len(raw) == 0 {
		return tags
	}
	_ = json.Unmarshal(raw, &tags)
	return tags
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

type PopupItem struct {
	ID               string `json:"popId"`
	Title            string `json:"title"`
	VideoURL         string `json:"videoUrl"`
	Duration         string `json:"duration"`
	Thumbnail        string `json:"thumbnail,omitempty"`
	BackgroundImage  string `json:"backgroundImage,omitempty"`
	BackgroundColour string `json:"backgroundColour"`
	Day              string `json:"day"`
}

// Popups lists the published popups for a day; an empty day returns them all.
func (s *ContentService) Popups(ctx context.Context, day string) ([]PopupItem, error) {
	popups, err := s.ContentRepo.FindPopups(day)
	if err != nil {
		return nil, err
	}
	out := make([]PopupItem, 0, len(popups))
	for i := range popups {
		p := &popups[i]
		out = append(out, PopupItem{
			ID:               p.ID,
			Title:            p.Title,
			VideoURL:         p.VideoURL,
			Duration:         p.Duration,
			Thumbnail:        s.Media.ResolveFileURL(ctx, p.ThumbnailID),
			BackgroundImage:  s.Media.ResolveFileURL(ctx, p.BackgroundID),
			BackgroundColour: p.BackgroundColour,
			Day:              p.Day,
		})
	}
	return out, nil
}

type HomeSectionPayload struct {
	Key   string      `json:"key"`
	Title string      `json:"title"`
	Data  interface{} `json:"data"`
}

// Home composes the home screen from the configured section layout. Live
// streams fall back to feeds when none are live, matching the app contract.
func (s *ContentService) Home(ctx context.Context, language string) ([]HomeSectionPayload, error) {
	sections, err := s.ContentRepo.HomeSections()
	if err != nil {
		return nil, err
	}

	out := make([]HomeSectionPayload, 0, len(sections))
	for _, section := range sections {
		payload := HomeSectionPayload{Key: section.Key, Title: section.Title}
		switch section.Key {
		case "banners":
			payload.Data, err = s.Banners(ctx, language)
		case "courses":
			payload.Data, err = s.Catalog.Courses(ctx, language)
		case "free_videos":
			payload.Data, err = s.Catalog.FreeVideos(ctx, repository.FreeVideoFilter{Language: language})
		case "free_quizzes":
			payload.Data, err = s.Catalog.FreeQuizzes(language)
		case "live_streams":
			var streams []LiveStreamItem
			streams, err = s.LiveStreams(ctx, "", "", language)
			if err == nil && len(streams) == 0 {
				payload.Key = "feeds"
				payload.Data, err = s.Feeds(ctx, language)
			} else {
				payload.Data = streams
			}
		case "feeds":
			payload.Data, err = s.Feeds(ctx, language)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, payload)
	}
	return out, nil
}
