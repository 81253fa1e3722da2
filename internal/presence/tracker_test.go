package presence

import (
	"testing"
	"time"
)

func TestUnknownUserOmittedFromSnapshot(t *testing.T) {
	tr := NewTracker(nil)

	if _, ok := tr.Get(99); ok {
		t.Error("user with no events should be absent")
	}
	if len(tr.Snapshot()) != 0 {
		t.Error("snapshot of a fresh tracker should be empty")
	}
}

func TestMarkLogin(t *testing.T) {
	tr := NewTracker(nil)

	rec := tr.MarkLogin(1)
	if !rec.Online {
		t.Error("MarkLogin should set online=true")
	}
	if rec.LastLoginAt == nil {
		t.Error("MarkLogin should set LastLoginAt")
	}
	if rec.LastSeenAt == nil {
		t.Error("MarkLogin should set LastSeenAt")
	}
}

func TestMarkLogout(t *testing.T) {
	tr := NewTracker(nil)

	tr.MarkLogin(1)
	rec := tr.MarkLogout(1)

	if rec.Online {
		t.Error("MarkLogout should set online=false")
	}
	if rec.LastLogoutAt == nil {
		t.Error("MarkLogout should set LastLogoutAt")
	}
	if rec.LastLoginAt == nil {
		t.Error("MarkLogout must not wipe LastLoginAt")
	}
}

func TestMarkLogout_UnknownUserIsNoop(t *testing.T) {
	tr := NewTracker(nil)

	rec := tr.MarkLogout(42)
	if rec.Online || rec.LastLogoutAt != nil {
		t.Errorf("logout for unknown user should return zero record, got %+v", rec)
	}
	if _, ok := tr.Get(42); ok {
		t.Error("logout for unknown user must not create a record")
	}
}

func TestLoginAfterLogoutFlipsBack(t *testing.T) {
	tr := NewTracker(nil)

	first := tr.MarkLogin(1)
	time.Sleep(2 * time.Millisecond)
	tr.MarkLogout(1)
	time.Sleep(2 * time.Millisecond)
	second := tr.MarkLogin(1)

	if !second.Online {
		t.Error("re-login should set online=true")
	}
	if !second.LastLoginAt.After(*first.LastLoginAt) {
		t.Errorf("re-login LastLoginAt %v should be after first %v", second.LastLoginAt, first.LastLoginAt)
	}
	if second.LastLogoutAt == nil {
		t.Error("re-login must keep the previous LastLogoutAt")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tr := NewTracker(nil)
	tr.MarkLogin(1)

	snap := tr.Snapshot()
	snap[1] = Record{}
	delete(snap, 1)

	if rec, ok := tr.Get(1); !ok || !rec.Online {
		t.Error("mutating a snapshot must not affect the tracker")
	}
}
