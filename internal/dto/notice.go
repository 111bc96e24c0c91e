package dto

import (
	"time"

	"github.com/zolt46/work-time-back/internal/model"
)

// CreateNoticeRequest 创建公告请求
type CreateNoticeRequest struct {
	Title         string     `json:"title" binding:"required"`
	Body          string     `json:"body" binding:"required"`
	Type          string     `json:"type" binding:"required"`
	Channel       string     `json:"channel"`
	Scope         string     `json:"scope"`
	TargetRoles   []string   `json:"target_roles"`
	TargetUserIDs []string   `json:"target_user_ids"`
	Priority      int        `json:"priority"`
	IsActive      *bool      `json:"is_active"`
	StartAt       *time.Time `json:"start_at"`
	EndAt         *time.Time `json:"end_at"`
}

// UpdateNoticeRequest 更新公告请求
type UpdateNoticeRequest struct {
	Title         *string    `json:"title"`
	Body          *string    `json:"body"`
	Type          *string    `json:"type"`
	Channel       *string    `json:"channel"`
	Scope         *string    `json:"scope"`
	TargetRoles   []string   `json:"target_roles"`
	TargetUserIDs []string   `json:"target_user_ids"`
	Priority      *int       `json:"priority"`
	IsActive      *bool      `json:"is_active"`
	StartAt       *time.Time `json:"start_at"`
	EndAt         *time.Time `json:"end_at"`
}

// NoticeListQuery 公告列表查询参数
type NoticeListQuery struct {
	Channel         string `form:"channel"`
	UnreadOnly      *bool  `form:"unread_only"`
	IncludeInactive bool   `form:"include_inactive"`
	IncludeAll      bool   `form:"include_all"`
}

// NoticeReadAction 阅读/关闭公告动作
type NoticeReadAction struct {
	Channel string `json:"channel" binding:"required"`
}

// NoticeResponse 公告响应
type NoticeResponse struct {
	NoticeID      string     `json:"notice_id"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	Type          string     `json:"type"`
	Channel       string     `json:"channel"`
	Scope         string     `json:"scope"`
	TargetRoles   []string   `json:"target_roles,omitempty"`
	TargetUserIDs []string   `json:"target_user_ids,omitempty"`
	Priority      int        `json:"priority"`
	IsActive      bool       `json:"is_active"`
	StartAt       *time.Time `json:"start_at,omitempty"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	CreatedBy     *string    `json:"created_by,omitempty"`
	CreatorRole   *string    `json:"creator_role,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	DismissedAt   *time.Time `json:"dismissed_at,omitempty"`
}

// ToNoticeResponse 模型转响应；read 为当前用户在对应渠道的阅读记录，可为 nil
func ToNoticeResponse(n *model.Notice, read *model.NoticeRead) NoticeResponse {
	resp := NoticeResponse{
		NoticeID:    n.NoticeID,
		Title:       n.Title,
		Body:        n.Body,
		Type:        n.Type,
		Channel:     n.Channel,
		Scope:       n.Scope,
		TargetRoles: n.TargetRoles,
		Priority:    n.Priority,
		IsActive:    n.IsActive,
		StartAt:     n.StartAt,
		EndAt:       n.EndAt,
		CreatedBy:   n.CreatedBy,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	for _, t := range n.Targets {
		resp.TargetUserIDs = append(resp.TargetUserIDs, t.UserID)
	}
	if n.Creator != nil {
		role := n.Creator.Role
		resp.CreatorRole = &role
	}
	if read != nil {
		resp.ReadAt = read.ReadAt
		resp.DismissedAt = read.DismissedAt
	}
	return resp
}
