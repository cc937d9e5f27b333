package permission

import (
	"testing"

	"github.com/pkg/errors"
)

type fakeAdmins struct {
	admins map[int64]bool
	err    error
	calls  int
}

func (f *fakeAdmins) IsChatAdmin(chatID, userID int64) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.admins[userID], nil
}

func TestOwnerBypassesLookup(t *testing.T) {
	admins := &fakeAdmins{err: errors.New("api down")}
	c := NewChecker(42, admins)

	if got := c.RoleIn(100, 42, false); got != Owner {
		t.Errorf("owner role = %v", got)
	}
	if admins.calls != 0 {
		t.Errorf("owner check hit the API %d times", admins.calls)
	}
	if !c.CanManageGroup(100, 42, false) {
		t.Error("owner denied")
	}
}

func TestPrivateChatCountsAsAdmin(t *testing.T) {
	admins := &fakeAdmins{err: errors.New("api down")}
	c := NewChecker(42, admins)

	if got := c.RoleIn(100, 7, true); got != Admin {
		t.Errorf("private chat role = %v", got)
	}
	if admins.calls != 0 {
		t.Error("private chat should not need a lookup")
	}
}

func TestGroupAdminAndMember(t *testing.T) {
	admins := &fakeAdmins{admins: map[int64]bool{7: true}}
	c := NewChecker(42, admins)

	if got := c.RoleIn(100, 7, false); got != Admin {
		t.Errorf("admin role = %v", got)
	}
	if got := c.RoleIn(100, 8, false); got != Member {
		t.Errorf("member role = %v", got)
	}
	if c.CanManageGroup(100, 8, false) {
		t.Error("member allowed to manage group")
	}
}

func TestLookupErrorFailsClosed(t *testing.T) {
	admins := &fakeAdmins{err: errors.New("flood wait")}
	c := NewChecker(42, admins)

	if c.CanManageGroup(100, 7, false) {
		t.Error("lookup error granted access")
	}
}

func TestZeroOwnerIDMatchesNobody(t *testing.T) {
	c := NewChecker(0, &fakeAdmins{})
	if c.IsOwner(0) {
		t.Error("unset owner id matched user 0")
	}
}
