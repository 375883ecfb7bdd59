package models

import "time"

// Platform 播出平台
type Platform struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Series    []Serie   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Platform) TableName() string {
	return "platforms"
}

// PlatformCreateRequest 创建和整体更新(PUT)用请求结构体
type PlatformCreateRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Netflix"`
}

// PlatformUpdateRequest 部分更新(PATCH)用请求结构体
type PlatformUpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

func (r PlatformCreateRequest) Apply(p *Platform) {
	p.Name = r.Name
}

func (r PlatformUpdateRequest) Apply(p *Platform) {
	if r.Name != nil {
		p.Name = *r.Name
	}
}

// PlatformResponse 响应结构体
type PlatformResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPlatformResponse(p Platform) PlatformResponse {
	return PlatformResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewPlatformResponses(platforms []Platform) []PlatformResponse {
	out := make([]PlatformResponse, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, NewPlatformResponse(p))
	}
	return out
}
