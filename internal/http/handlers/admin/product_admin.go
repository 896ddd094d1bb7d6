package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Slug        string             `json:"slug" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	Brand       string             `json:"brand"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Images      models.StringArray `json:"images"`
	Price       models.Money       `json:"price"`
	Stock       int                `json:"stock"`
	Rating      models.Money       `json:"rating"`
	NumReviews  int                `json:"num_reviews"`
	IsFeatured  bool               `json:"is_featured"`
	Banner      string             `json:"banner"`
}

func (r *ProductRequest) apply(product *models.Product) {
	product.Slug = strings.TrimSpace(r.Slug)
	product.Name = strings.TrimSpace(r.Name)
	product.Brand = strings.TrimSpace(r.Brand)
	product.Category = strings.TrimSpace(r.Category)
	product.Description = r.Description
	product.Images = r.Images
	product.Price = r.Price
	product.Stock = r.Stock
	product.Rating = r.Rating
	product.NumReviews = r.NumReviews
	product.IsFeatured = r.IsFeatured
	product.Banner = strings.TrimSpace(r.Banner)
}

// AdminListProducts 管理端商品列表
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch products", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// AdminGetProduct 管理端商品详情
func (h *Handler) AdminGetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(productID)
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

// AdminCreateProduct 创建商品
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	var product models.Product
	req.apply(&product)
	if err := h.ProductService.Create(&product); err != nil {
		switch {
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeConflict, "Slug already in use", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "Invalid request", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to create product", err)
		}
		return
	}

	requestLog(c).Infow("admin_product_created", "product_id", product.ID, "slug", product.Slug)
	response.Success(c, product)
}

// AdminUpdateProduct 更新商品
func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	product, err := h.ProductService.GetByID(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "Product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch product", err)
		return
	}

	req.apply(product)
	if err := h.ProductService.Update(product); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "Product not found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeConflict, "Slug already in use", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update product", err)
		}
		return
	}
	response.Success(c, product)
}

// AdminDeleteProduct 删除商品
func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ProductService.Delete(productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "Product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to delete product", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
