package public

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/repository"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// GetProducts 获取商品列表（支持分类/品牌/价格/评分筛选与排序）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Brand:    strings.TrimSpace(c.Query("brand")),
		Search:   strings.TrimSpace(c.Query("q")),
		MinPrice: strings.TrimSpace(c.Query("min_price")),
		MaxPrice: strings.TrimSpace(c.Query("max_price")),
		Rating:   strings.TrimSpace(c.Query("rating")),
		Sort:     strings.TrimSpace(c.Query("sort")),
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch products", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetLatestProducts 获取最新上架商品
func (h *Handler) GetLatestProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit <= 0 {
		limit = h.Config.Store.LatestProductsLimit
	}

	products, err := h.ProductService.ListLatest(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch products", err)
		return
	}
	response.Success(c, products)
}

// GetFeaturedProducts 获取精选商品（走缓存）
func (h *Handler) GetFeaturedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))

	products, err := h.ProductService.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch products", err)
		return
	}
	response.Success(c, products)
}

// GetProductCategories 获取分类汇总
func (h *Handler) GetProductCategories(c *gin.Context) {
	categories, err := h.ProductService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch categories", err)
		return
	}
	response.Success(c, categories)
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "Product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch product", err)
		return
	}
	response.Success(c, product)
}
