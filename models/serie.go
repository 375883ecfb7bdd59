package models

import "time"

// Serie 剧集
// Title 不设唯一索引，按标题搜索时由调用方处理重名
type Serie struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	PlatformID  uint      `json:"platform" gorm:"not null;index"`
	Platform    *Platform `json:"-"`
	Genders     []Gender  `json:"-" gorm:"many2many:serie_genders;"`
	Seasons     []Season  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Serie) TableName() string {
	return "series"
}

// SerieCreateRequest 创建和整体更新(PUT)用请求结构体
type SerieCreateRequest struct {
	Title       string `json:"title" binding:"required,max=255" example:"Show A"`
	Description string `json:"description"`
	Platform    uint   `json:"platform" binding:"required" example:"1"`
	Genders     []uint `json:"genders"`
}

// SerieUpdateRequest 部分更新(PATCH)用请求结构体，Genders 为 nil 时保持原有关联
type SerieUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Platform    *uint   `json:"platform" binding:"omitempty,min=1"`
	Genders     *[]uint `json:"genders"`
}

func (r SerieCreateRequest) Apply(s *Serie) {
	s.Title = r.Title
	s.Description = r.Description
	s.PlatformID = r.Platform
}

func (r SerieUpdateRequest) Apply(s *Serie) {
	if r.Title != nil {
		s.Title = *r.Title
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.Platform != nil {
		s.PlatformID = *r.Platform
	}
}

// SerieResponse 响应结构体，平台与类型均以ID表示
type SerieResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Platform    uint      `json:"platform"`
	Genders     []uint    `json:"genders"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewSerieResponse(s Serie) SerieResponse {
	genders := make([]uint, 0, len(s.Genders))
	for _, g := range s.Genders {
		genders = append(genders, g.ID)
	}
	return SerieResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Platform:    s.PlatformID,
		Genders:     genders,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewSerieResponses(series []Serie) []SerieResponse {
	out := make([]SerieResponse, 0, len(series))
	for _, s := range series {
		out = append(out, NewSerieResponse(s))
	}
	return out
}
