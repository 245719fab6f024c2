package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestProductInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   ProductInput
		wantErr error
	}{
		{
			name: "valid input",
			input: ProductInput{
				Name:        "Cheese",
				Price:       5000,
				Description: "Local cheese",
			},
			wantErr: nil,
		},
		{
			name: "valid input - zero price",
			input: ProductInput{
				Name:        "Free Sample",
				Price:       0,
				Description: "Giveaway item",
			},
			wantErr: nil,
		},
		{
			name: "valid input - max name length",
			input: ProductInput{
				Name:        strings.Repeat("a", MaxNameLength),
				Price:       10,
				Description: "Long name",
			},
			wantErr: nil,
		},
		{
			name: "empty name",
			input: ProductInput{
				Name:        "",
				Price:       10,
				Description: "No name",
			},
			wantErr: ErrEmptyName,
		},
		{
			name: "name too long",
			input: ProductInput{
				Name:        strings.Repeat("a", MaxNameLength+1),
				Price:       10,
				Description: "Oversized name",
			},
			wantErr: ErrNameTooLong,
		},
		{
			name: "unset price",
			input: ProductInput{
				Name:        "Cheese",
				Price:       PriceUnset,
				Description: "Local cheese",
			},
			wantErr: ErrPriceUnset,
		},
		{
			name: "negative price",
			input: ProductInput{
				Name:        "Cheese",
				Price:       -50,
				Description: "Local cheese",
			},
			wantErr: ErrNegativePrice,
		},
		{
			name: "empty description",
			input: ProductInput{
				Name:        "Cheese",
				Price:       5000,
				Description: "",
			},
			wantErr: ErrEmptyDescription,
		},
		{
			name: "description too long",
			input: ProductInput{
				Name:        "Cheese",
				Price:       5000,
				Description: strings.Repeat("d", MaxDescriptionLength+1),
			},
			wantErr: ErrDescriptionLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := tt.input.Validate()

			// Assert
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProductInput(t *testing.T) {
	// Act
	input := NewProductInput()

	// Assert
	if input.Price != PriceUnset {
		t.Errorf("Price = %d, want PriceUnset (%d)", input.Price, PriceUnset)
	}
	if input.Name != "" || input.Description != "" {
		t.Error("new input should have empty name and description")
	}
}

func TestProduct_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		product Product
	}{
		{
			name: "with image",
			product: Product{
				ID:          1700000000000,
				Name:        "Cheese",
				Price:       5000,
				Description: "Local cheese",
				ImageURL:    "data:image/png;base64,aGVsbG8=",
			},
		},
		{
			name: "without image",
			product: Product{
				ID:          1700000000001,
				Name:        "Honey",
				Price:       1200,
				Description: "Wildflower honey",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			data, err := json.Marshal(tt.product)
			if err != nil {
				t.Fatalf("Marshal() unexpected error: %v", err)
			}

			var got Product
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}

			// Assert
			if got != tt.product {
				t.Errorf("round trip = %+v, want %+v", got, tt.product)
			}
		})
	}
}

func TestProduct_JSONOmitsEmptyImage(t *testing.T) {
	// Arrange
	product := Product{
		ID:          1,
		Name:        "Honey",
		Price:       1200,
		Description: "Wildflower honey",
	}

	// Act
	data, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	// Assert
	if strings.Contains(string(data), "imageUrl") {
		t.Errorf("serialized product should omit empty imageUrl, got %s", data)
	}
}
