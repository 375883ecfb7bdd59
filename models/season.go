package models

import "time"

// Season 季，Number 在同一剧集内唯一
type Season struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	SerieID   uint      `json:"serie" gorm:"not null;uniqueIndex:uniq_serie_number"`
	Serie     *Serie    `json:"-"`
	Number    int       `json:"number" gorm:"not null;uniqueIndex:uniq_serie_number"`
	Title     string    `json:"title" gorm:"type:varchar(255)"`
	Episodes  []Episode `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Season) TableName() string {
	return "seasons"
}

// SeasonCreateRequest 创建和整体更新(PUT)用请求结构体
type SeasonCreateRequest struct {
	Serie  uint   `json:"serie" binding:"required" example:"1"`
	Number int    `json:"number" binding:"required,min=1" example:"1"`
	Title  string `json:"title" binding:"max=255"`
}

// SeasonUpdateRequest 部分更新(PATCH)用请求结构体
type SeasonUpdateRequest struct {
	Serie  *uint   `json:"serie" binding:"omitempty,min=1"`
	Number *int    `json:"number" binding:"omitempty,min=1"`
	Title  *string `json:"title" binding:"omitempty,max=255"`
}

func (r SeasonCreateRequest) Apply(s *Season) {
	s.SerieID = r.Serie
	s.Number = r.Number
	s.Title = r.Title
}

func (r SeasonUpdateRequest) Apply(s *Season) {
	if r.Serie != nil {
		s.SerieID = *r.Serie
	}
	if r.Number != nil {
		s.Number = *r.Number
	}
	if r.Title != nil {
		s.Title = *r.Title
	}
}

// SeasonResponse 响应结构体
type SeasonResponse struct {
	ID        uint      `json:"id"`
	Serie     uint      `json:"serie"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSeasonResponse(s Season) SeasonResponse {
	return SeasonResponse{
		ID:        s.ID,
		Serie:     s.SerieID,
		Number:    s.Number,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func NewSeasonResponses(seasons []Season) []SeasonResponse {
	out := make([]SeasonResponse, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, NewSeasonResponse(s))
	}
	return out
}
