package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/repository"
)

// ReportService builds operational exports. For now a single XLSX with
// every shop's drink menu, average rating, and review count.
type ReportService interface {
	RatingsReport() ([]byte, error)
}

type reportService struct {
	shopRepo      repository.ShopRepository
	shopDrinkRepo repository.ShopDrinkRepository
	reviewRepo    repository.ReviewRepository
}

func NewReportService(
	shopRepo repository.ShopRepository,
	shopDrinkRepo repository.ShopDrinkRepository,
	reviewRepo repository.ReviewRepository,
) ReportService {
	return &reportService{
		shopRepo:      shopRepo,
		shopDrinkRepo: shopDrinkRepo,
		reviewRepo:    reviewRepo,
	}
}

const ratingsSheet = "Ratings"

func (s *reportService) RatingsReport() ([]byte, error) {
	shops, err := s.shopRepo.FindAll(repository.ShopFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ratingsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Shop", "Address", "Drink", "Avg Rating", "Reviews", "Cover Photo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ratingsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	for _, shop := range shops {
		shopDrinks, err := s.shopDrinkRepo.ListByShop(shop.ID)
		if err != nil {
			return nil, err
		}
		for _, sd := range shopDrinks {
			_, count, err := s.reviewRepo.RatingStats(sd.ID)
			if err != nil {
				return nil, err
			}
			values := []interface{}{shop.Name, shop.Address, sd.Drink.Name, sd.AvgRating, count, sd.CoverPhotoURL}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(ratingsSheet, cell, v); err != nil {
					return nil, fmt.Errorf("failed to write row: %w", err)
				}
			}
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
