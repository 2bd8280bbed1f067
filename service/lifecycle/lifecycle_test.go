package lifecycle

import (
	"context"
	"errors"
	"testing"

	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	prev := dao.DB
	dao.DB = db
	t.Cleanup(func() { dao.DB = prev })

	if err := dao.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
}

func seedRequest(t *testing.T, status model.RequestStatus) *model.ServiceRequest {
	t.Helper()

	roomID := uint(7)
	req := model.ServiceRequest{
		HotelID:     1,
		RoomID:      &roomID,
		RequestType: "extra towels",
		Status:      status,
	}
	if err := dao.DB.Create(&req).Error; err != nil {
		t.Fatal(err)
	}
	return &req
}

func TestTransitionGrid(t *testing.T) {
	statuses := []model.RequestStatus{
		model.StatusPending, model.StatusInProgress, model.StatusCompleted,
		model.StatusDeclined, model.StatusModified, model.StatusRejected,
		model.StatusCancelled,
	}

	legal := map[rule]bool{
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

	for _, from := range statuses {
		for _, actor := range []Actor{ActorGuest, ActorStaff} {
			for _, to := range statuses {
				setupTestDB(t)
				req := seedRequest(t, from)

				_, err := Transition(context.Background(), 1, req.ID, actor, to, "response text")
				if legal[rule{from, actor, to}] {
					if err != nil {
						t.Errorf("%s/%s -> %s: unexpected error %v", from, actor, to, err)
					}
				} else if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("%s/%s -> %s: error = %v, want ErrInvalidTransition", from, actor, to, err)
				}
			}
		}
	}
}

func TestDeclineRequiresResponseText(t *testing.T) {
	setupTestDB(t)
	req := seedRequest(t, model.StatusPending)

	for _, text := range []string{"", "   "} {
		_, err := Transition(context.Background(), 1, req.ID, ActorStaff, model.StatusDeclined, text)
		if !errors.Is(err, ErrResponseRequired) {
			t.Fatalf("decline with text %q: error = %v, want ErrResponseRequired", text, err)
		}
	}

	_, err := Transition(context.Background(), 1, req.ID, ActorStaff, model.StatusModified, "")
	if !errors.Is(err, ErrResponseRequired) {
		t.Fatalf("modify without text: error = %v, want ErrResponseRequired", err)
	}
}

func TestGuestCannotCancelInProgress(t *testing.T) {
	setupTestDB(t)
	req := seedRequest(t, model.StatusInProgress)

	_, err := Transition(context.Background(), 1, req.ID, ActorGuest, model.StatusCancelled, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition", err)
	}
}

func TestTransitionNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := Transition(context.Background(), 1, 999, ActorStaff, model.StatusCompleted, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	// 酒店不匹配也按不存在处理
	req := seedRequest(t, model.StatusPending)
	_, err = Transition(context.Background(), 2, req.ID, ActorStaff, model.StatusCompleted, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong hotel: error = %v, want ErrNotFound", err)
	}
}

func TestCompletedStampsResolution(t *testing.T) {
	setupTestDB(t)
	req := seedRequest(t, model.StatusPending)

	updated, err := Transition(context.Background(), 1, req.ID, ActorStaff, model.StatusCompleted, "")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != model.StatusCompleted || updated.Resolution != model.ResolutionFulfilled {
		t.Fatalf("unexpected state: %+v", updated)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completed_at not stamped")
	}
}

func TestDeclineStampsResponse(t *testing.T) {
	setupTestDB(t)
	req := seedRequest(t, model.StatusPending)

	updated, err := Transition(context.Background(), 1, req.ID, ActorStaff, model.StatusDeclined, "Laundry closed today, sorry.")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Resolution != model.ResolutionDeclinedByStaff {
		t.Fatalf("resolution = %q", updated.Resolution)
	}
	if updated.StaffResponse != "Laundry closed today, sorry." || updated.RespondedAt == nil {
		t.Fatalf("staff response not stamped: %+v", updated)
	}
}

func TestGuestRespondsToModification(t *testing.T) {
	setupTestDB(t)

	accept := seedRequest(t, model.StatusModified)
	updated, err := Transition(context.Background(), 1, accept.ID, ActorGuest, model.StatusInProgress, "")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != model.StatusInProgress || updated.Resolution != model.ResolutionAcceptedModified {
		t.Fatalf("accept: unexpected state %+v", updated)
	}
	if updated.GuestAccepted == nil || !*updated.GuestAccepted {
		t.Fatal("guest_accepted not set on accept")
	}

	reject := seedRequest(t, model.StatusModified)
	updated, err = Transition(context.Background(), 1, reject.ID, ActorGuest, model.StatusRejected, "")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != model.StatusRejected || updated.Resolution != model.ResolutionRejectedModified {
		t.Fatalf("reject: unexpected state %+v", updated)
	}
	if updated.GuestAccepted == nil || *updated.GuestAccepted {
		t.Fatal("guest_accepted not cleared on reject")
	}
}

// 乐观锁：期望状态已被并发操作改掉时更新必须落空
func TestConditionalUpdateMissesStaleStatus(t *testing.T) {
	setupTestDB(t)
	req := seedRequest(t, model.StatusCompleted)

	affected, err := dao.TransitionServiceRequest(context.Background(), req.ID, 1,
		model.StatusPending, map[string]any{"status": model.StatusInProgress})
	if err != nil {
		t.Fatal(err)
	}
	if affected != 0 {
		t.Fatalf("stale CAS affected %d rows, want 0", affected)
	}

	var fresh model.ServiceRequest
	if err := dao.DB.First(&fresh, req.ID).Error; err != nil {
		t.Fatal(err)
	}
	if fresh.Status != model.StatusCompleted {
		t.Fatalf("status must be untouched, got %q", fresh.Status)
	}
}
