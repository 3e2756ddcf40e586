package jwt

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)
}

// TestGenerateAndParse 生成Token对并解析回Claims
func TestGenerateAndParse(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "alice@test.com", "admin")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token对不应为空")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("有效期期望%d秒，实际%d秒", int64((2*time.Hour).Seconds()), pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "alice@test.com" || claims.Role != "admin" {
		t.Errorf("Claims不符: %+v", claims)
	}
}

// TestParseToken_Expired 过期Token必须返回TokenExpired而不是笼统的InvalidToken
// jwt/v5的ParseWithClaims返回的是包装过的错误,判断依赖errors.Is
func TestParseToken_Expired(t *testing.T) {
	// 有效期为负,签发即过期
	m := NewManager("test-secret", -time.Minute, -time.Minute)

	pair, err := m.GenerateToken(1, "bob@test.com", "standard")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	_, err = m.ParseToken(pair.AccessToken)
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("过期Token期望ErrTokenExpired，实际%v", err)
	}
}

// TestParseToken_Invalid 非法Token一律返回InvalidToken
func TestParseToken_Invalid(t *testing.T) {
	m := newTestManager()

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.ParseToken(bad); !errors.Is(err, apperrors.ErrInvalidToken) {
			t.Errorf("Token=%q期望ErrInvalidToken，实际%v", bad, err)
		}
	}

	// 密钥不匹配(签名伪造)
	other := NewManager("other-secret", 2*time.Hour, 7*24*time.Hour)
	pair, err := other.GenerateToken(1, "eve@test.com", "standard")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if _, err := m.ParseToken(pair.AccessToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("异密钥Token期望ErrInvalidToken，实际%v", err)
	}
}
