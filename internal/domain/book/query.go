package book

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 分页默认值与上限
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100 // 限制单页数量,防止无界结果集
)

// SortField 可排序字段(封闭集合,兼做SQL白名单)
type SortField string

const (
	SortByTitle  SortField = "title"
	SortByPrice  SortField = "price"
	SortByRating SortField = "rating"
	SortByStock  SortField = "stock"
)

// SortOrder 排序方向
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListQueryRaw 未经校验的原始查询参数
// 每个字段要么缺省(空串)要么是客户端原样提交的字符串
type ListQueryRaw struct {
	Category string
	Author   string
	Rating   string
	Title    string
	Page     string
	Limit    string
	SortBy   string
	Order    string
}

// Query 校验完成的查询计划
// 不变式:Query一旦构造完成,其中不再包含任何未解释的客户端原始串,
// 数值/区间谓词的值均已解析;Repository可以直接按它下发查询。
type Query struct {
	Category  string   // 精确匹配,空串表示不过滤
	Author    string   // 精确匹配,空串表示不过滤
	MinRating *float64 // rating >= MinRating,nil表示不过滤
	TitleLike string   // 大小写不敏感子串匹配,空串表示不过滤
	Page      int      // >=1
	PageSize  int      // 1..MaxPageSize
	SortBy    SortField // 空串表示不排序(按存储默认顺序)
	Order     SortOrder
}

// Offset 计算分页偏移量
func (q *Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// 查询参数错误(文案给出具体字段,方便客户端定位)
var (
	errInvalidRatingParam = apperrors.New(apperrors.ErrCodeInvalidQuery, "rating必须是数字")
	errInvalidPageParam   = apperrors.New(apperrors.ErrCodeInvalidQuery, "page必须是正整数")
	errInvalidLimitParam  = apperrors.New(apperrors.ErrCodeInvalidQuery, "limit必须是正整数")
)

// ParseListQuery 把原始查询参数翻译为查询计划
// 规则:
// - 隐含谓词:stock > 0永远生效,缺货图书不出现在列表中(由Repository实现)
// - category/author非空时精确匹配
// - rating解析为数字,谓词为"评分>=该值";非数字返回查询参数错误
// - title为大小写不敏感的子串匹配
// - page默认1,limit默认10,必须为正整数;limit超过上限时收敛到MaxPageSize
// - sortBy只接受封闭集合中的字段,未知字段直接报错而不是静默忽略
// - order为desc时降序,其余一律升序
func ParseListQuery(raw ListQueryRaw) (*Query, error) {
	q := &Query{
		Category:  raw.Category,
		Author:    raw.Author,
		TitleLike: raw.Title,
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		Order:     OrderAsc,
	}

	if raw.Rating != "" {
		v, err := strconv.ParseFloat(raw.Rating, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errInvalidRatingParam
		}
		q.MinRating = &v
	}

	if raw.Page != "" {
		n, err := strconv.Atoi(raw.Page)
		if err != nil || n < 1 {
			return nil, errInvalidPageParam
		}
		q.Page = n
	}

	if raw.Limit != "" {
		n, err := strconv.Atoi(raw.Limit)
		if err != nil || n < 1 {
			return nil, errInvalidLimitParam
		}
		if n > MaxPageSize {
			n = MaxPageSize
		}
		q.PageSize = n
	}

	if raw.SortBy != "" {
		switch SortField(raw.SortBy) {
		case SortByTitle, SortByPrice, SortByRating, SortByStock:
			q.SortBy = SortField(raw.SortBy)
		default:
			return nil, apperrors.New(apperrors.ErrCodeInvalidQuery,
				fmt.Sprintf("不支持的排序字段: %s", raw.SortBy))
		}
	}

	if raw.Order == string(OrderDesc) {
		q.Order = OrderDesc
	}

	return q, nil
}

// Matches 判断图书是否满足查询的全部过滤谓词(含隐含的stock>0)
// 说明:真实查询由存储层执行,此方法用于校验与测试,保证两边谓词语义一致
func (q *Query) Matches(b *Book) bool {
	if !b.InStock() {
		return false
	}
	if q.Category != "" && b.Category != q.Category {
		return false
	}
	if q.Author != "" && b.Author != q.Author {
		return false
	}
	if q.MinRating != nil && b.Rating < *q.MinRating {
		return false
	}
	if q.TitleLike != "" && !containsFold(b.Title, q.TitleLike) {
		return false
	}
	return true
}

// containsFold 大小写不敏感的子串判断
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
