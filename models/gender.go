package models

import "time"

// Gender 剧集类型(题材)，与剧集为多对多关系
type Gender struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Series    []Serie   `json:"-" gorm:"many2many:serie_genders;"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Gender) TableName() string {
	return "genders"
}

// GenderCreateRequest 创建和整体更新(PUT)用请求结构体
type GenderCreateRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Drama"`
}

// GenderUpdateRequest 部分更新(PATCH)用请求结构体
type GenderUpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

func (r GenderCreateRequest) Apply(g *Gender) {
	g.Name = r.Name
}

func (r GenderUpdateRequest) Apply(g *Gender) {
	if r.Name != nil {
		g.Name = *r.Name
	}
}

// GenderResponse 响应结构体
type GenderResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewGenderResponse(g Gender) GenderResponse {
	return GenderResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func NewGenderResponses(genders []Gender) []GenderResponse {
	out := make([]GenderResponse, 0, len(genders))
	for _, g := range genders {
		out = append(out, NewGenderResponse(g))
	}
	return out
}
