package domain

import "time"

type Product struct {
	ID           int
	CategoryID   int
	Name         string
	Description  *string
	Price        float64
	Stock        int
	Available    bool
	CategoryType *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Category struct {
	ID          int
	Name        string
	Description *string
	Type        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
