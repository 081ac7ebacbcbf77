package product

import (
	"encoding/json"
	"time"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

// CategoryResponse is a category in a product body.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductResponse is the JSON body of a product.
type ProductResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       json.Number        `json:"price"`
	ImgURL      string             `json:"imgUrl"`
	Date        time.Time          `json:"date"`
	Categories  []CategoryResponse `json:"categories"`
}

// PageResponse is the JSON body of a search result page.
type PageResponse struct {
	Content          []ProductResponse `json:"content"`
	Number           int               `json:"number"`
	Size             int               `json:"size"`
	TotalElements    int64             `json:"totalElements"`
	TotalPages       int               `json:"totalPages"`
	NumberOfElements int               `json:"numberOfElements"`
	First            bool              `json:"first"`
	Last             bool              `json:"last"`
	Empty            bool              `json:"empty"`
}

func dtoToResponse(dto *contracts.ProductDTO) ProductResponse {
	categories := make([]CategoryResponse, 0, len(dto.Categories))
	for _, c := range dto.Categories {
		categories = append(categories, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return ProductResponse{
		ID:          dto.ProductID,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       json.Number(dto.Price.String()),
		ImgURL:      dto.ImgURL,
		Date:        dto.Date.UTC(),
		Categories:  categories,
	}
}

func pageToResponse(page *pagination.Page[*contracts.ProductDTO]) PageResponse {
	content := make([]ProductResponse, 0, len(page.Content))
	for _, dto := range page.Content {
		content = append(content, dtoToResponse(dto))
	}
	return PageResponse{
		Content:          content,
		Number:           page.Number,
		Size:             page.Size,
		TotalElements:    page.TotalElements,
		TotalPages:       page.TotalPages(),
		NumberOfElements: page.NumberOfElements(),
		First:            page.IsFirst(),
		Last:             page.IsLast(),
		Empty:            page.IsEmpty(),
	}
}
