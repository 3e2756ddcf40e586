package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 测试对运行中的服务发真实HTTP请求,服务未启动时跳过而不是失败。
// 管理员相关用例依赖环境变量提供的管理员账号(角色由运维在存储层授予,
// 注册接口只能创建普通用户):
//
//	BOOKCATALOG_TEST_ADMIN_EMAIL
//	BOOKCATALOG_TEST_ADMIN_PASSWORD

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Result HTTP调用结果:状态码 + 原始响应体
// 成功响应是业务payload本身(无envelope),失败响应是errors数组,
// 两种形状由调用方按状态码分别解码
type Result struct {
	Status int
	Body   json.RawMessage
}

// ErrorItem 单条错误信息
type ErrorItem struct {
	Message string `json:"message"`
}

// ErrorBody 失败响应体 { "errors": [ { "message": "..." } ] }
type ErrorBody struct {
	Errors []ErrorItem `json:"errors"`
}

// BookData 图书响应
type BookData struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	PriceYuan   string  `json:"price_yuan"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Author      string  `json:"author"`
	Rating      float64 `json:"rating"`
}

// BookListData 图书列表响应
type BookListData struct {
	Books       []BookData `json:"books"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

// RegisterData 注册响应
type RegisterData struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

// LoginData 登录响应
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RequireServer 服务未启动时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务未启动,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// DoJSON 发送JSON请求并返回状态码与原始响应体
func DoJSON(t *testing.T, method, url string, data interface{}, token string) *Result {
	t.Helper()

	var reqBody io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return &Result{Status: resp.StatusCode, Body: body}
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Result {
	return DoJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Result {
	return DoJSON(t, http.MethodGet, url, nil, token)
}

// PatchJSON 发送PATCH请求
func PatchJSON(t *testing.T, url string, data interface{}, token string) *Result {
	return DoJSON(t, http.MethodPatch, url, data, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Result {
	return DoJSON(t, http.MethodDelete, url, nil, token)
}

// Decode 把成功响应解码到业务结构
func Decode(t *testing.T, res *Result, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(res.Body, v), "解析响应失败: %s", string(res.Body))
}

// FirstError 提取失败响应的第一条错误信息
func FirstError(t *testing.T, res *Result) string {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(res.Body, &body), "解析错误响应失败: %s", string(res.Body))
	require.NotEmpty(t, body.Errors, "错误响应的errors数组不应为空")
	return body.Errors[0].Message
}

// GenerateTestEmail 生成唯一的测试邮箱(时间戳避免重复运行冲突)
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestTitle 生成唯一的测试书名(标题全局唯一)
func GenerateTestTitle(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// RegisterTestUser 注册普通用户并登录,返回邮箱与访问Token
func RegisterTestUser(t *testing.T, nickname string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(nickname)
	registerResp := PostJSON(t, BaseURL+"/users/register", map[string]string{
		"email":    email,
		"password": "Test1234",
		"nickname": nickname,
	}, "")
	require.Equal(t, http.StatusCreated, registerResp.Status,
		"注册失败: %s", string(registerResp.Body))

	return email, LoginAs(t, email, "Test1234")
}

// LoginAs 登录并返回访问Token
func LoginAs(t *testing.T, email, password string) string {
	t.Helper()

	loginResp := PostJSON(t, BaseURL+"/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, loginResp.Status,
		"登录失败: %s", string(loginResp.Body))

	var loginData LoginData
	Decode(t, loginResp, &loginData)
	require.NotEmpty(t, loginData.AccessToken, "登录响应应包含access_token")
	return loginData.AccessToken
}

// AdminToken 用环境变量里的管理员账号登录,未配置时跳过测试
func AdminToken(t *testing.T) string {
	t.Helper()

	email := os.Getenv("BOOKCATALOG_TEST_ADMIN_EMAIL")
	password := os.Getenv("BOOKCATALOG_TEST_ADMIN_PASSWORD")
	if email == "" || password == "" {
		t.Skip("未配置测试管理员账号,跳过管理员用例")
	}
	return LoginAs(t, email, password)
}

// PublishTestBook 以管理员身份上架测试图书,返回图书ID
func PublishTestBook(t *testing.T, adminToken, title string, stock int) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":       title,
		"description": "集成测试用图书",
		"price":       8900,
		"stock":       stock,
		"category":    "测试分类",
		"author":      "测试作者",
		"rating":      4.5,
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.Status,
		"图书上架失败: %s", string(resp.Body))

	var book BookData
	Decode(t, resp, &book)
	require.NotZero(t, book.ID, "创建响应应包含存储分配的ID")
	return book.ID
}
