package models

import "time"

// Episode 单集，Number 在同一季内唯一
type Episode struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	SeasonID  uint      `json:"season" gorm:"not null;uniqueIndex:uniq_season_number"`
	Season    *Season   `json:"-"`
	Number    int       `json:"number" gorm:"not null;uniqueIndex:uniq_season_number"`
	Title     string    `json:"title" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Episode) TableName() string {
	return "episodes"
}

// EpisodeCreateRequest 创建和整体更新(PUT)用请求结构体
type EpisodeCreateRequest struct {
	Season uint   `json:"season" binding:"required" example:"1"`
	Number int    `json:"number" binding:"required,min=1" example:"1"`
	Title  string `json:"title" binding:"max=255"`
}

// EpisodeUpdateRequest 部分更新(PATCH)用请求结构体
type EpisodeUpdateRequest struct {
	Season *uint   `json:"season" binding:"omitempty,min=1"`
	Number *int    `json:"number" binding:"omitempty,min=1"`
	Title  *string `json:"title" binding:"omitempty,max=255"`
}

func (r EpisodeCreateRequest) Apply(e *Episode) {
	e.SeasonID = r.Season
	e.Number = r.Number
	e.Title = r.Title
}

func (r EpisodeUpdateRequest) Apply(e *Episode) {
	if r.Season != nil {
		e.SeasonID = *r.Season
	}
	if r.Number != nil {
		e.Number = *r.Number
	}
	if r.Title != nil {
		e.Title = *r.Title
	}
}

// EpisodeResponse 响应结构体
type EpisodeResponse struct {
	ID        uint      `json:"id"`
	Season    uint      `json:"season"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewEpisodeResponse(e Episode) EpisodeResponse {
	return EpisodeResponse{
		ID:        e.ID,
		Season:    e.SeasonID,
		Number:    e.Number,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func NewEpisodeResponses(episodes []Episode) []EpisodeResponse {
	out := make([]EpisodeResponse, 0, len(episodes))
	for _, e := range episodes {
		out = append(out, NewEpisodeResponse(e))
	}
	return out
}
