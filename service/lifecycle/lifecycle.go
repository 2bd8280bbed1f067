// Package lifecycle 实现服务请求的状态机：哪个角色可以把请求
// 从哪个状态迁到哪个状态，以及迁移附带的字段变更。
// 没有定时器：pending 的请求不会自动过期或升级
package lifecycle

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/model"

	"gorm.io/gorm"
)

type Actor string

const (
	ActorGuest Actor = "guest"
	ActorStaff Actor = "staff"
)

var (
	ErrNotFound = errors.New("service request not found")

	// ErrInvalidTransition 状态冲突类错误，与 not found 区分开，
	// 员工端 UI 据此解释操作为何失败
	ErrInvalidTransition = errors.New("invalid state transition")

	ErrResponseRequired = errors.New("staff response text required")
)

type rule struct {
	from  model.RequestStatus
	actor Actor
	to    model.RequestStatus
}

// 合法迁移表。guest 对 modified 的接受/拒绝分别落到 in_progress / rejected
var allowed = map[rule]bool{
	{model.StatusPending, ActorStaff, model.StatusInProgress}:   true,
	{model.StatusPending, ActorStaff, model.StatusCompleted}:    true,
	{model.StatusPending, ActorStaff, model.StatusDeclined}:     true,
	{model.StatusPending, ActorStaff, model.StatusModified}:     true,
	{model.StatusInProgress, ActorStaff, model.StatusCompleted}: true,
	{model.StatusInProgress, ActorStaff, model.StatusDeclined}:  true,
	{model.StatusInProgress, ActorStaff, model.StatusModified}:  true,
	{model.StatusPending, ActorGuest, model.StatusCancelled}:    true,
	{model.StatusModified, ActorGuest, model.StatusInProgress}:  true,
	{model.StatusModified, ActorGuest, model.StatusRejected}:    true,
}

// responseRequired 这些目标状态必须附带员工答复文本
var responseRequired = map[model.RequestStatus]bool{
	model.StatusDeclined: true,
	model.StatusModified: true,
}

// Transition 校验 (当前状态, 角色, 目标状态) 合法后，以 CAS 方式应用迁移。
// 存储中的状态已被并发操作改掉时返回 ErrInvalidTransition
func Transition(ctx context.Context, hotelID, requestID uint, actor Actor, target model.RequestStatus, responseText string) (*model.ServiceRequest, error) {
	req, err := dao.GetServiceRequest(ctx, requestID, hotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !allowed[rule{req.Status, actor, target}] {
		return nil, ErrInvalidTransition
	}

	responseText = strings.TrimSpace(responseText)
	if actor == ActorStaff && responseRequired[target] && responseText == "" {
		return nil, ErrResponseRequired
	}

	now := time.Now()
	updates := map[string]any{"status": target}

	switch target {
	case model.StatusCompleted:
		updates["completed_at"] = now
		updates["resolution"] = model.ResolutionFulfilled
	case model.StatusDeclined:
		updates["resolution"] = model.ResolutionDeclinedByStaff
	case model.StatusCancelled:
		updates["resolution"] = model.ResolutionCancelledByGuest
	case model.StatusInProgress:
		if actor == ActorGuest {
			updates["resolution"] = model.ResolutionAcceptedModified
			updates["guest_accepted"] = true
		}
	case model.StatusRejected:
		updates["resolution"] = model.ResolutionRejectedModified
		updates["guest_accepted"] = false
	}

	if actor == ActorStaff && responseText != "" {
		updates["staff_response"] = responseText
		updates["responded_at"] = now
	}

	affected, err := dao.TransitionServiceRequest(ctx, requestID, hotelID, req.Status, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 行还在但状态变了：另一名员工抢先完成了迁移
		if _, err := dao.GetServiceRequest(ctx, requestID, hotelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	return dao.GetServiceRequest(ctx, requestID, hotelID)
}
