package handler

import (
	"testing"

	"storefront/internal/delivery/api/validator"

	"github.com/stretchr/testify/assert"
)

func TestCreateProductRequest_Validation(t *testing.T) {
	t.Parallel()

	v := validator.New()

	tests := []struct {
		name    string
		request CreateProductRequest
		wantErr bool
	}{
		{
			name: "priced product",
			request: CreateProductRequest{
				Name:        "Phone",
				Description: "A phone",
				Price:       499.99,
				Category:    "Electronics",
				Stock:       10,
			},
		},
		{
			// Free items are a valid catalog entry.
			name: "zero-priced product",
			request: CreateProductRequest{
				Name:        "Sticker",
				Description: "A free sticker",
				Price:       0,
				Category:    "Accessories",
				Stock:       100,
			},
		},
		{
			name: "negative price",
			request: CreateProductRequest{
				Name:        "Phone",
				Description: "A phone",
				Price:       -1,
				Category:    "Electronics",
			},
			wantErr: true,
		},
		{
			name: "negative stock",
			request: CreateProductRequest{
				Name:        "Phone",
				Description: "A phone",
				Price:       499.99,
				Category:    "Electronics",
				Stock:       -1,
			},
			wantErr: true,
		},
		{
			name: "missing name",
			request: CreateProductRequest{
				Description: "A phone",
				Price:       499.99,
				Category:    "Electronics",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(&tt.request)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
