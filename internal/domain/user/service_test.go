package user

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// TestRegister_Success 正常注册流程
func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), "alice@test.com", "Pass1234", "Alice")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if u.ID == 0 {
		t.Error("注册成功后应分配ID")
	}
	// 注册入口只创建普通用户
	if u.Role != RoleStandard {
		t.Errorf("角色期望standard，实际%s", u.Role)
	}
	// 密码必须是bcrypt哈希,绝不存明文
	if u.Password == "Pass1234" {
		t.Fatal("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Pass1234")); err != nil {
		t.Errorf("存储的哈希应能校验原密码: %v", err)
	}
}

// TestRegister_Validation 注册入参校验
func TestRegister_Validation(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	cases := []struct {
		name     string
		email    string
		password string
		nickname string
	}{
		{"邮箱无@", "not-an-email", "Pass1234", "Alice"},
		{"邮箱无域名", "alice@", "Pass1234", "Alice"},
		{"密码过短", "alice@test.com", "Ab1", "Alice"},
		{"密码过长", "alice@test.com", "Abcdefg1234567890123456", "Alice"},
		{"密码纯字母", "alice@test.com", "OnlyLetters", "Alice"},
		{"密码纯数字", "alice@test.com", "12345678", "Alice"},
		{"昵称过短", "alice@test.com", "Pass1234", "A"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.email, tc.password, tc.nickname); err == nil {
				t.Error("应返回校验错误")
			}
		})
	}
}

// TestRegister_DuplicateEmail 重复邮箱由仓储层拒绝
func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), "alice@test.com", "Pass1234", "Alice"); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice@test.com", "Pass5678", "Alice2")
	if err == nil {
		t.Fatal("重复邮箱应注册失败")
	}
	if apperrors.GetAppError(err).Code != apperrors.ErrCodeDuplicateEntry {
		t.Errorf("期望重复记录错误码，实际%v", err)
	}
}

// TestLogin 登录校验
// 邮箱不存在与密码错误必须返回同样的提示,避免账号枚举
func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), "bob@test.com", "Secret99", "Bob"); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 正常登录
	u, err := svc.Login(context.Background(), "bob@test.com", "Secret99")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if u.Email != "bob@test.com" {
		t.Errorf("登录返回的用户邮箱不符: %s", u.Email)
	}

	// 密码错误
	_, errWrongPass := svc.Login(context.Background(), "bob@test.com", "WrongPass1")
	if errWrongPass == nil {
		t.Fatal("密码错误应登录失败")
	}

	// 邮箱不存在
	_, errNoUser := svc.Login(context.Background(), "nobody@test.com", "Secret99")
	if errNoUser == nil {
		t.Fatal("邮箱不存在应登录失败")
	}

	// 两种失败的对外文案一致
	if apperrors.GetAppError(errWrongPass).Message != apperrors.GetAppError(errNoUser).Message {
		t.Error("密码错误与邮箱不存在应返回相同提示")
	}
}

// TestParseRole 角色解析:未知值按最小权限处理
func TestParseRole(t *testing.T) {
	if ParseRole("admin") != RoleAdmin {
		t.Error("admin应解析为管理员")
	}
	for _, s := range []string{"standard", "", "Admin", "root", "superuser"} {
		if ParseRole(s) != RoleStandard {
			t.Errorf("%q应解析为普通用户", s)
		}
	}
}
