package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
// 只做协议层的事情:解析请求、调用应用层用例、拼装响应。
// 过滤/排序/分页规则与写入前置检查全部在领域层。
type BookHandler struct {
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	createBookUseCase *appbook.CreateBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		createBookUseCase: createBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// ListBooks 图书列表查询
// @Summary      图书列表
// @Description  分页查询在售图书,支持过滤与排序;缺货图书不出现在结果中
// @Tags         图书
// @Produce      json
// @Param        category query string false "分类(精确匹配)"
// @Param        author   query string false "作者(精确匹配)"
// @Param        rating   query number false "最低评分(>=)"
// @Param        title    query string false "标题子串(不区分大小写)"
// @Param        page     query int    false "页码(默认1)"
// @Param        limit    query int    false "每页数量(默认10,最大100)"
// @Param        sortBy   query string false "排序字段(title/price/rating/stock)"
// @Param        order    query string false "排序方向(asc/desc,默认asc)"
// @Success      200 {object} dto.ListBooksResponse
// @Failure      400 {object} response.ErrorBody "查询参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	// 原始字符串原样交给ParseListQuery,由它统一校验与解释
	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Category: c.Query("category"),
		Author:   c.Query("author"),
		Rating:   c.Query("rating"),
		Title:    c.Query("title"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
		SortBy:   c.Query("sortBy"),
		Order:    c.Query("order"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	books := make([]dto.BookResponse, len(result.Books))
	for i, b := range result.Books {
		books[i] = toBookResponse(b)
	}

	response.Success(c, &dto.ListBooksResponse{
		Books:       books,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  根据ID查询图书(经Redis缓存)
// @Tags         图书
// @Produce      json
// @Param        bookId path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/v1/books/{bookId} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toBookResponse(*item)
	response.Success(c, &resp)
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  管理员创建新图书;标题全局唯一
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody "字段非法"
// @Failure      401 {object} response.ErrorBody "未登录"
// @Failure      403 {object} response.ErrorBody "非管理员"
// @Failure      409 {object} response.ErrorBody "标题已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数格式错误: "+err.Error()))
		return
	}

	callerID := middleware.GetUserID(c)

	item, err := h.createBookUseCase.Execute(c.Request.Context(), callerID, appbook.CreateBookRequest{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Author:      req.Author,
		Rating:      req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toBookResponse(*item)
	response.Created(c, &resp)
}

// UpdateBook 部分更新图书
// @Summary      更新图书
// @Description  管理员按字段部分更新;未提供的字段保持原值,未知字段拒绝
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookId  path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "待更新字段"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody "补丁非法"
// @Failure      401 {object} response.ErrorBody "未登录"
// @Failure      403 {object} response.ErrorBody "非管理员"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/v1/books/{bookId} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 未知字段直接拒绝,防止拼写错误的字段被悄悄丢弃
	var req dto.UpdateBookRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, "参数格式错误: "+err.Error()))
		return
	}

	callerID := middleware.GetUserID(c)

	item, err := h.updateBookUseCase.Execute(c.Request.Context(), callerID, id, appbook.UpdateBookRequest{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Author:      req.Author,
		Rating:      req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toBookResponse(*item)
	response.Success(c, &resp)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  管理员删除图书;ID不存在时直接返回404
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Success      200 {object} dto.DeleteBookResponse
// @Failure      401 {object} response.ErrorBody "未登录"
// @Failure      403 {object} response.ErrorBody "非管理员"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/v1/books/{bookId} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	callerID := middleware.GetUserID(c)

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), callerID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.DeleteBookResponse{Message: "图书删除成功"})
}

// parseBookID 解析路径参数:bookId
// 非数字ID等同于"找不到该记录",按NotFound处理
func parseBookID(c *gin.Context) (uint, error) {
	raw := c.Param("bookId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, book.ErrBookNotFound
	}
	return uint(id), nil
}

func toBookResponse(item appbook.BookListItem) dto.BookResponse {
	return dto.BookResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		PriceYuan:   dto.FormatPriceYuan(item.Price),
		Stock:       item.Stock,
		Category:    item.Category,
		Author:      item.Author,
		Rating:      item.Rating,
	}
}
